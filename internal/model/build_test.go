package model

import (
	"errors"
	"testing"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/schema"
)

func iptr(v int64) *int64 { return &v }

func standardItem(start, end, conf, content string) schema.StandardItem {
	return schema.StandardItem{
		StartTime: start,
		EndTime:   end,
		Type:      "pronunciation",
		Alternatives: []schema.StandardAlternative{
			{Confidence: conf, Content: content},
		},
	}
}

func punctuation(content string) schema.StandardItem {
	return schema.StandardItem{
		Type:         "punctuation",
		Alternatives: []schema.StandardAlternative{{Confidence: "0.0", Content: content}},
	}
}

func TestBuildStandardDiarized(t *testing.T) {
	doc := &schema.StandardDoc{
		JobName: "call-1",
		Status:  "COMPLETED",
		Results: schema.StandardResults{
			Items: []schema.StandardItem{
				standardItem("0.0", "0.4", "0.95", "hello"),
				standardItem("0.5", "0.9", "0.80", "there"),
				punctuation("."),
				standardItem("5.0", "5.5", "0.99", "hi"),
			},
			SpeakerLabels: &schema.StandardSpeakers{
				Speakers: 2,
				Segments: []schema.StandardSegment{
					{StartTime: "0.0", EndTime: "1.0", SpeakerLabel: "spk_0"},
					{StartTime: "5.0", EndTime: "5.5", SpeakerLabel: "spk_1"},
				},
			},
		},
	}

	conv, err := buildStandard(doc)
	if err != nil {
		t.Fatalf("buildStandard() error = %v", err)
	}

	if len(conv.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(conv.Segments))
	}
	if conv.Segments[0].Speaker != "spk_0" || conv.Segments[1].Speaker != "spk_1" {
		t.Errorf("speakers = %q, %q", conv.Segments[0].Speaker, conv.Segments[1].Speaker)
	}
	if got := conv.Segments[0].Text; got != "hello there." {
		t.Errorf("segment text = %q, want %q", got, "hello there.")
	}
	if len(conv.Speakers) != 2 {
		t.Errorf("speaker list = %d, want 2", len(conv.Speakers))
	}
	if conv.Duration != 5.5 {
		t.Errorf("duration = %f, want 5.5", conv.Duration)
	}

	// Punctuation attaches to the previous word, keeping its confidence.
	words := conv.Segments[0].Words
	if len(words) != 2 {
		t.Fatalf("words = %d, want 2", len(words))
	}
	if words[1].Text != "there." {
		t.Errorf("word text = %q, want %q", words[1].Text, "there.")
	}
	if words[1].Confidence == nil || *words[1].Confidence != 0.80 {
		t.Errorf("word confidence = %v, want 0.80", words[1].Confidence)
	}

	// Standard mode never carries these.
	if conv.Segments[0].Sentiment.Applicable() {
		t.Error("standard segment sentiment should be not-applicable")
	}
	if conv.Categories.Applicable() || conv.Topics.Applicable() || conv.Guardrails.Applicable() {
		t.Error("standard call annotations should be not-applicable")
	}

	meta, ok := conv.Metadata.Get()
	if !ok {
		t.Fatal("metadata should be present")
	}
	if meta.JobName != "call-1" || meta.Status != "COMPLETED" {
		t.Errorf("metadata = %+v", meta)
	}
}

func TestBuildStandardChannels(t *testing.T) {
	doc := &schema.StandardDoc{
		Results: schema.StandardResults{
			Items: []schema.StandardItem{standardItem("0.0", "0.4", "0.9", "x")},
			ChannelLabels: &schema.StandardChannelsWrap{
				NumberOfChannels: 2,
				Channels: []schema.StandardChannel{
					{ChannelLabel: "ch_0", Items: []schema.StandardItem{
						standardItem("0.0", "0.4", "0.9", "hello"),
						standardItem("4.0", "4.4", "0.9", "again"),
					}},
					{ChannelLabel: "ch_1", Items: []schema.StandardItem{
						standardItem("1.0", "1.5", "0.7", "hi"),
					}},
				},
			},
		},
	}

	conv, err := buildStandard(doc)
	if err != nil {
		t.Fatalf("buildStandard() error = %v", err)
	}

	// ch_0 splits on the 3.6s gap; ch_1 contributes one segment between.
	if len(conv.Segments) != 3 {
		t.Fatalf("segments = %d, want 3", len(conv.Segments))
	}
	wantSpeakers := []string{"ch_0", "ch_1", "ch_0"}
	for i, want := range wantSpeakers {
		if conv.Segments[i].Speaker != want {
			t.Errorf("segment %d speaker = %q, want %q", i, conv.Segments[i].Speaker, want)
		}
	}
}

func TestBuildStandardNoItems(t *testing.T) {
	_, err := buildStandard(&schema.StandardDoc{})
	var missing *MissingDataError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingDataError", err)
	}
	if missing.Field != "results.items" {
		t.Errorf("missing field = %q, want results.items", missing.Field)
	}
}

func TestBuildAnalytics(t *testing.T) {
	doc := &schema.AnalyticsDoc{
		JobName:      "ca-1",
		JobStatus:    "COMPLETED",
		LanguageCode: "en-US",
		Transcript: []schema.AnalyticsTurn{
			{
				ParticipantRole:   "AGENT",
				Content:           "hello there",
				BeginOffsetMillis: 0, EndOffsetMillis: 2000,
				Sentiment:      "NEUTRAL",
				LoudnessScores: []float64{70.1, 65.3},
				Items: []schema.AnalyticsItem{
					{Type: "pronunciation", Content: "hello", Confidence: 0.99, BeginOffsetMillis: 0, EndOffsetMillis: 500},
					{Type: "pronunciation", Content: "there", Confidence: 0.95, BeginOffsetMillis: 600, EndOffsetMillis: 1000},
					{Type: "punctuation", Content: "."},
				},
			},
			{
				ParticipantRole:   "CUSTOMER",
				Content:           "I am upset",
				BeginOffsetMillis: 2500, EndOffsetMillis: 5000,
				Sentiment: "NEGATIVE",
				IssuesDetected: []schema.AnalyticsIssue{
					{CharacterOffsets: schema.AnalyticsCharRange{Begin: 5, End: 10}},
				},
			},
		},
		Categories: &schema.AnalyticsCategories{
			MatchedCategories: []string{"cancellation"},
			MatchedDetails: map[string]schema.AnalyticsCategoryDetail{
				"cancellation": {PointsOfInterest: []schema.AnalyticsTimeRange{
					{BeginOffsetMillis: 2500, EndOffsetMillis: 5000},
				}},
			},
		},
		ConversationCharacteristics: &schema.AnalyticsCharacter{
			TotalConversationDurationMillis: 6000,
			NonTalkTime: &schema.AnalyticsNonTalk{
				Instances: []schema.AnalyticsTimeRange{{BeginOffsetMillis: 2000, EndOffsetMillis: 2500}},
			},
			Interruptions: &schema.AnalyticsInterruptions{
				TotalCount: 1,
				InterruptionsByInterrupter: map[string][]schema.AnalyticsTimeRange{
					"CUSTOMER": {{BeginOffsetMillis: 1800, EndOffsetMillis: 2000}},
				},
			},
			Sentiment: &schema.AnalyticsSentiment{
				OverallSentiment: map[string]float64{"AGENT": 1.5, "CUSTOMER": -2.0},
				SentimentByPeriod: map[string]map[string][]schema.QuarterSpan{
					"QUARTER": {
						"AGENT": {
							{Score: 1.0}, {Score: 2.0}, {Score: 1.0}, {Score: 2.0},
						},
					},
				},
			},
		},
	}

	conv, err := buildAnalytics(doc)
	if err != nil {
		t.Fatalf("buildAnalytics() error = %v", err)
	}

	if conv.Duration != 6.0 {
		t.Errorf("duration = %f, want 6.0 (from characteristics)", conv.Duration)
	}

	seg := conv.Segments[0]
	sent, ok := seg.Sentiment.Get()
	if !ok || sent.Label != SentimentNeutral {
		t.Errorf("turn sentiment = %+v, want native NEUTRAL", sent)
	}
	if sent.Score != nil {
		t.Error("analytics sentiment should carry no numeric score")
	}
	if len(seg.Words) != 2 || seg.Words[1].Text != "there." {
		t.Errorf("words = %+v", seg.Words)
	}
	if seg.Words[0].Confidence == nil {
		t.Error("analytics words should carry confidence")
	}

	issues, ok := conv.Segments[1].Issues.Get()
	if !ok || len(issues) != 1 || issues[0].Begin != 5 {
		t.Errorf("issues = %+v", issues)
	}

	cats, ok := conv.Categories.Get()
	if !ok || cats[0].Name != "cancellation" || len(cats[0].Anchors) != 1 {
		t.Errorf("categories = %+v", cats)
	}

	nonTalk, ok := conv.NativeNonTalk.Get()
	if !ok || nonTalk[0].Start != 2.0 {
		t.Errorf("non-talk = %+v", nonTalk)
	}

	ints, ok := conv.NativeInterruptions.Get()
	if !ok || ints[0].Interrupter != "CUSTOMER" {
		t.Errorf("interruptions = %+v", ints)
	}

	native, ok := conv.NativeSentiment.Get()
	if !ok {
		t.Fatal("native sentiment should be present")
	}
	if len(native.Quarters) != 4 || native.Quarters[3].Quarter != 4 {
		t.Errorf("quarters = %+v", native.Quarters)
	}
	if native.Overall["CUSTOMER"] != -2.0 {
		t.Errorf("overall = %+v", native.Overall)
	}

	// Analytics never supplies these.
	if conv.Topics.Applicable() || conv.Guardrails.Applicable() || conv.Blueprint.Applicable() {
		t.Error("analytics should mark topics/guardrails/blueprint not-applicable")
	}
}

func TestBuildAnalyticsNoTranscript(t *testing.T) {
	_, err := buildAnalytics(&schema.AnalyticsDoc{})
	var missing *MissingDataError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingDataError", err)
	}
}

func TestBuildBDA(t *testing.T) {
	doc := &schema.BDADoc{
		Metadata: schema.BDAMetadata{
			S3Key:                 "calls/a.wav",
			DurationMillis:        20000,
			SampleRate:            8,
			Format:                "wav",
			DominantAssetLanguage: "en",
		},
		Audio: &schema.BDAAudio{
			Summary: "A caller asks about their bill.",
			ContentModeration: []schema.BDAModeration{
				{StartTimestampMillis: 0, EndTimestampMillis: 5000, Categories: []schema.BDAModerationCategory{
					{Category: "PROFANITY", Confidence: 0.15},
				}},
			},
		},
		AudioSegments: []schema.BDASegment{
			{
				StartTimestampMillis: 0, EndTimestampMillis: 5000,
				Speaker: schema.BDASpeaker{SpeakerLabel: "spk_0"},
				Text:    "hello there", Language: "EN", Sentiment: "POSITIVE",
				AudioItemIndices: []int{0, 1, 2},
			},
		},
		AudioItems: []schema.BDAItem{
			{Content: "hello", StartTimestampMillis: iptr(0), EndTimestampMillis: iptr(400)},
			{Content: "there", StartTimestampMillis: iptr(500), EndTimestampMillis: iptr(900)},
			{Content: "."},
		},
		Topics: []schema.BDATopic{
			{TopicIndex: 0, StartTimestampMillis: 0, EndTimestampMillis: 5000, Summary: "billing"},
		},
	}

	conv, err := buildBDA(doc, nil)
	if err != nil {
		t.Fatalf("buildBDA() error = %v", err)
	}

	if conv.Duration != 20.0 {
		t.Errorf("duration = %f, want 20.0", conv.Duration)
	}

	seg := conv.Segments[0]
	if len(seg.Words) != 2 {
		t.Fatalf("words = %d, want 2", len(seg.Words))
	}
	if seg.Words[1].Text != "there." {
		t.Errorf("punctuation should attach: %q", seg.Words[1].Text)
	}
	if seg.Words[0].Confidence != nil {
		t.Error("BDA words must never carry confidence")
	}

	sent, ok := seg.Sentiment.Get()
	if !ok || sent.Label != SentimentPositive {
		t.Errorf("sentiment = %+v", sent)
	}

	// Sub-threshold flags are retained in the model.
	flags, ok := conv.Guardrails.Get()
	if !ok || len(flags) != 1 || flags[0].Confidence != 0.15 {
		t.Errorf("guardrails = %+v", flags)
	}

	topics, ok := conv.Topics.Get()
	if !ok || topics[0].Summary != "billing" {
		t.Errorf("topics = %+v", topics)
	}

	summary, ok := conv.Summary.Get()
	if !ok || summary == "" {
		t.Error("summary should be present")
	}

	if conv.Blueprint.Applicable() {
		t.Error("blueprint should be not-applicable without a custom result")
	}
	if conv.Entities.Applicable() {
		t.Error("entities should be not-applicable without a custom result")
	}
}

func TestBuildBDAWithBlueprint(t *testing.T) {
	doc := &schema.BDADoc{
		Metadata: schema.BDAMetadata{DurationMillis: 10000},
	}
	bp := &schema.BlueprintDoc{
		InferenceResult: &schema.BlueprintResult{
			CallSummary:             "short",
			CallCategories:          []string{"billing"},
			CallerSatisfactionLevel: 4,
			CallerEmotionRating:     9, // out of range, clamps to 5
			AgentEmotionRating:      0, // out of range, clamps to 1
			IssueResolution:         true,
			DetectedEntities: []schema.BlueprintEntity{
				{Text: "Seattle", Tags: []string{"location"}},
			},
		},
	}

	conv, err := buildBDA(doc, bp)
	if err != nil {
		t.Fatalf("buildBDA() error = %v", err)
	}

	if conv.Variant != schema.VariantBDABlueprint {
		t.Errorf("variant = %v, want blueprint", conv.Variant)
	}

	insights, ok := conv.Blueprint.Get()
	if !ok {
		t.Fatal("blueprint should be present")
	}
	if insights.CallerSatisfaction != 4 || insights.CallerEmotion != 5 || insights.AgentEmotion != 1 {
		t.Errorf("dials = %d/%d/%d", insights.CallerSatisfaction, insights.CallerEmotion, insights.AgentEmotion)
	}
	if !insights.IssueResolved {
		t.Error("IssueResolved should be true")
	}

	entities, ok := conv.Entities.Get()
	if !ok || entities[0].Text != "Seattle" {
		t.Errorf("entities = %+v", entities)
	}
}

func TestBuildBDANoDuration(t *testing.T) {
	_, err := buildBDA(&schema.BDADoc{}, nil)
	var missing *MissingDataError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingDataError", err)
	}
}

func TestBuildBDAEmptySegmentsIsLegal(t *testing.T) {
	conv, err := buildBDA(&schema.BDADoc{
		Metadata: schema.BDAMetadata{DurationMillis: 5000},
	}, nil)
	if err != nil {
		t.Fatalf("buildBDA() error = %v", err)
	}
	if len(conv.Segments) != 0 {
		t.Errorf("segments = %d, want 0", len(conv.Segments))
	}
}

func TestMergeSegments(t *testing.T) {
	seg := func(speaker string, start, end float64, lang string) Segment {
		return Segment{Speaker: speaker, Start: start, End: end, Language: lang,
			Words: []Word{{Text: "w", Start: start, End: end}}}
	}

	tests := []struct {
		name string
		in   []Segment
		want int
	}{
		{"same speaker short gap merges", []Segment{
			seg("a", 0, 1, "en"), seg("a", 1.5, 3, "en"),
		}, 1},
		{"speaker change splits", []Segment{
			seg("a", 0, 1, "en"), seg("b", 1.5, 3, "en"),
		}, 2},
		{"long gap splits", []Segment{
			seg("a", 0, 1, "en"), seg("a", 3.5, 4, "en"),
		}, 2},
		{"language change splits", []Segment{
			seg("a", 0, 1, "en"), seg("a", 1.5, 3, "es"),
		}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeSegments(tt.in)
			if len(got) != tt.want {
				t.Errorf("merged to %d segments, want %d", len(got), tt.want)
			}
		})
	}
}

func TestMergeSegmentsGuardrailsBlockMerge(t *testing.T) {
	first := Segment{Speaker: "a", Start: 0, End: 1, Language: "en"}
	second := Segment{Speaker: "a", Start: 1.2, End: 2, Language: "en",
		Guardrails: Of([]GuardrailFlag{{Category: "PROFANITY", Confidence: 0.9}})}

	got := mergeSegments([]Segment{first, second})
	if len(got) != 2 {
		t.Errorf("merged to %d segments, want 2 (guardrail blocks merge)", len(got))
	}
}
