package analysis

import (
	"math"
	"testing"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"
)

func fptr(v float64) *float64 { return &v }

func seg(speaker string, start, end float64) model.Segment {
	return model.Segment{Speaker: speaker, Start: start, End: end}
}

func TestInterruptionsAndTalkTime(t *testing.T) {
	conv := &model.Conversation{
		Duration: 20,
		Speakers: []model.Speaker{{Index: 0, Label: "A"}, {Index: 1, Label: "B"}},
		Segments: []model.Segment{
			seg("A", 0, 5),
			seg("B", 4, 10),
			seg("A", 10, 15),
			seg("B", 15, 20),
		},
	}

	res := Compute(conv, DefaultConfig())

	if got := res.Interruptions.CountBySpeaker["B"]; got != 1 {
		t.Errorf("interruptions for B = %d, want 1", got)
	}
	if got := res.Interruptions.CountBySpeaker["A"]; got != 0 {
		t.Errorf("interruptions for A = %d, want 0", got)
	}
	if got := res.TalkTime.BySpeaker["A"]; got != 10 {
		t.Errorf("talk time A = %v, want 10", got)
	}
	if got := res.TalkTime.BySpeaker["B"]; got != 11 {
		t.Errorf("talk time B = %v, want 11", got)
	}
	if res.TalkTime.NonTalk != 0 {
		t.Errorf("non-talk = %v, want 0", res.TalkTime.NonTalk)
	}
	if res.TalkTime.TotalTalk != 20 {
		t.Errorf("total talk = %v, want 20", res.TalkTime.TotalTalk)
	}
}

func TestInterruptionMinOverlap(t *testing.T) {
	conv := &model.Conversation{
		Duration: 12,
		Segments: []model.Segment{
			seg("A", 0, 5),
			seg("B", 4.5, 10),
		},
	}

	cfg := DefaultConfig()
	cfg.InterruptionMinOverlap = 1.0
	res := Compute(conv, cfg)
	if res.Interruptions.Total() != 0 {
		t.Fatalf("overlap 0.5 with min 1.0 counted as interruption")
	}

	cfg.InterruptionMinOverlap = 0.25
	res = Compute(conv, cfg)
	if res.Interruptions.Total() != 1 {
		t.Fatalf("overlap 0.5 with min 0.25 not counted")
	}
}

func TestInterruptionsPreferNative(t *testing.T) {
	conv := &model.Conversation{
		Duration: 10,
		Segments: []model.Segment{seg("A", 0, 6), seg("B", 5, 10)},
		NativeInterruptions: model.Of([]model.Interruption{
			{Interrupter: "A", Start: 2, End: 3},
			{Interrupter: "A", Start: 7, End: 8},
		}),
	}

	res := Compute(conv, DefaultConfig())
	if got := res.Interruptions.CountBySpeaker["A"]; got != 2 {
		t.Errorf("native interruptions for A = %d, want 2", got)
	}
	if got := res.Interruptions.CountBySpeaker["B"]; got != 0 {
		t.Errorf("derived interruption counted despite native data")
	}
}

func TestNonTalkCountsOverlapOnce(t *testing.T) {
	conv := &model.Conversation{
		Duration: 10,
		Segments: []model.Segment{
			seg("A", 0, 4),
			seg("B", 2, 6),
			seg("A", 8, 9),
		},
	}

	res := Compute(conv, DefaultConfig())
	if res.TalkTime.TotalTalk != 7 {
		t.Errorf("total talk = %v, want 7", res.TalkTime.TotalTalk)
	}
	if res.TalkTime.NonTalk != 3 {
		t.Errorf("non-talk = %v, want 3", res.TalkTime.NonTalk)
	}
}

func TestGuardrailLimitInclusive(t *testing.T) {
	conv := &model.Conversation{
		Duration: 10,
		Guardrails: model.Of([]model.GuardrailFlag{
			{Category: "Insults", Confidence: 0.20, Start: 1},
			{Category: "Profanity", Confidence: 0.19, Start: 2},
			{Category: "Violence", Confidence: 0.25, Start: 3},
		}),
	}

	res := Compute(conv, DefaultConfig())
	if res.Guardrails.Total != 3 {
		t.Errorf("total flags = %d, want 3", res.Guardrails.Total)
	}
	if len(res.Guardrails.Breaches) != 2 {
		t.Fatalf("breaches = %d, want 2", len(res.Guardrails.Breaches))
	}
	if res.Guardrails.Breaches[0].Category != "Insults" {
		t.Errorf("breach[0] = %q, want Insults at the limit", res.Guardrails.Breaches[0].Category)
	}
	if res.Guardrails.Breaches[1].Category != "Violence" {
		t.Errorf("breach[1] = %q, want Violence", res.Guardrails.Breaches[1].Category)
	}
}

func TestConfidenceBucketsSumToCount(t *testing.T) {
	segs := []model.Segment{{
		Speaker: "A", Start: 0, End: 5,
		Words: []model.Word{
			{Text: "a", Start: 0, Confidence: fptr(0.0)},
			{Text: "b", Start: 1, Confidence: fptr(0.42)},
			{Text: "c", Start: 2, Confidence: fptr(0.91)},
			{Text: "d", Start: 3, Confidence: fptr(1.0)},
			{Text: "e", Start: 4, Confidence: nil},
		},
	}}
	conv := &model.Conversation{Duration: 5, Segments: segs}

	res := Compute(conv, DefaultConfig())
	d := res.Confidence
	if d.Count != 4 {
		t.Fatalf("count = %d, want 4 (nil confidence excluded)", d.Count)
	}
	var sum int
	for _, b := range d.Buckets {
		sum += b
	}
	if sum != d.Count {
		t.Errorf("bucket sum = %d, count = %d", sum, d.Count)
	}
	if d.Buckets[9] != 2 {
		t.Errorf("top bucket = %d, want 2 (0.91 and 1.0)", d.Buckets[9])
	}
	wantMean := (0.0 + 0.42 + 0.91 + 1.0) / 4
	if math.Abs(d.Mean-wantMean) > 1e-9 {
		t.Errorf("mean = %v, want %v", d.Mean, wantMean)
	}
	if len(d.Scatter) != 4 {
		t.Errorf("scatter points = %d, want 4", len(d.Scatter))
	}
}

func TestQuarterSentimentDerived(t *testing.T) {
	pos := model.Sentiment{Label: model.SentimentPositive}
	neg := model.Sentiment{Label: model.SentimentNegative}
	conv := &model.Conversation{
		Duration: 40,
		Speakers: []model.Speaker{{Index: 0, Label: "A"}},
		Segments: []model.Segment{
			{Speaker: "A", Start: 0, End: 4, Sentiment: model.Of(pos)},
			{Speaker: "A", Start: 12, End: 16, Sentiment: model.Of(neg)},
			{Speaker: "A", Start: 36, End: 40, Sentiment: model.Of(pos)},
		},
	}

	res := Compute(conv, DefaultConfig())
	scores := res.Quarters.Scores
	if len(scores) != 4 {
		t.Fatalf("scores = %d, want 4 (one speaker, four quarters)", len(scores))
	}
	if !scores[0].HasData || scores[0].Score <= 0 {
		t.Errorf("q1 = %+v, want positive with data", scores[0])
	}
	if !scores[1].HasData || scores[1].Score >= 0 {
		t.Errorf("q2 = %+v, want negative with data", scores[1])
	}
	if scores[2].HasData {
		t.Errorf("q3 has data, want empty window")
	}
	if !scores[3].HasData {
		t.Errorf("q4 missing data, segment midpoint 38 is in the final window")
	}
}

func TestQuarterSentimentPrefersNative(t *testing.T) {
	conv := &model.Conversation{
		Duration: 100,
		Speakers: []model.Speaker{{Index: 0, Label: "AGENT"}},
		NativeSentiment: model.Of(model.SentimentSummary{
			Quarters: []model.QuarterScore{
				{Speaker: "AGENT", Quarter: 1, Score: 2.5, HasData: true},
			},
		}),
	}

	res := Compute(conv, DefaultConfig())
	if len(res.Quarters.Scores) != 1 || res.Quarters.Scores[0].Score != 2.5 {
		t.Fatalf("native quarter scores not used: %+v", res.Quarters.Scores)
	}
}

func TestEntityGroups(t *testing.T) {
	conv := &model.Conversation{
		Duration: 10,
		Entities: model.Of([]model.EntityMention{
			{Text: "Seattle", Tags: []string{"location"}},
			{Text: "seattle", Tags: []string{"location"}},
			{Text: "Acme Corp", Tags: []string{"brand_name"}},
			{Text: "Zelda", Tags: []string{"person"}},
			{Text: "Alice", Tags: nil},
		}),
	}

	res := Compute(conv, DefaultConfig())
	g := res.Entities
	if len(g.Locations) != 1 || g.Locations[0] != "Seattle" {
		t.Errorf("locations = %v, want first-seen Seattle only", g.Locations)
	}
	if len(g.Brands) != 1 || g.Brands[0] != "Acme Corp" {
		t.Errorf("brands = %v", g.Brands)
	}
	if len(g.Other) != 2 || g.Other[0] != "Alice" || g.Other[1] != "Zelda" {
		t.Errorf("other = %v, want lexical order", g.Other)
	}
}

func TestVolumeSeries(t *testing.T) {
	conv := &model.Conversation{
		Duration: 10,
		Segments: []model.Segment{
			{Speaker: "AGENT", Start: 2, End: 5, Loudness: model.Of([]float64{60, 62, 58})},
			{Speaker: "CUSTOMER", Start: 5, End: 6},
		},
	}

	res := Compute(conv, DefaultConfig())
	pts := res.Volume.BySpeaker["AGENT"]
	if len(pts) != 3 {
		t.Fatalf("points = %d, want 3", len(pts))
	}
	if pts[1].Time != 3 || pts[1].Value != 62 {
		t.Errorf("point[1] = %+v, want time 3 value 62", pts[1])
	}
	if _, ok := res.Volume.BySpeaker["CUSTOMER"]; ok {
		t.Errorf("speaker without loudness should have no series")
	}
}

func TestEmptyConversation(t *testing.T) {
	conv := &model.Conversation{Duration: 30}

	res := Compute(conv, DefaultConfig())
	if res.Confidence.Applicable() {
		t.Errorf("confidence applicable with no words")
	}
	if res.TalkTime.NonTalk != 30 {
		t.Errorf("non-talk = %v, want full duration", res.TalkTime.NonTalk)
	}
	if res.Guardrails.Applicable() || res.Entities.Applicable() || res.Volume.Applicable() {
		t.Errorf("optional metrics applicable on empty conversation")
	}
}
