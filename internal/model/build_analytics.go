package model

import (
	"sort"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/schema"
)

// buildAnalytics maps Transcribe Call Analytics output into the canonical
// model. Turns arrive pre-segmented with native sentiment, so no merging or
// gap-splitting is applied.
func buildAnalytics(d *schema.AnalyticsDoc) (*Conversation, error) {
	if len(d.Transcript) == 0 {
		return nil, &MissingDataError{Variant: "call-analytics", Field: "Transcript"}
	}

	segments := make([]Segment, 0, len(d.Transcript))
	for _, turn := range d.Transcript {
		seg := Segment{
			Speaker:  turn.ParticipantRole,
			Start:    millis(turn.BeginOffsetMillis),
			End:      millis(turn.EndOffsetMillis),
			Text:     turn.Content,
			Language: d.LanguageCode,
			Words:    analyticsWords(turn.Items),

			Sentiment:  Of(Sentiment{Label: ParseSentimentLabel(turn.Sentiment)}),
			Loudness:   OfSlice(turn.LoudnessScores),
			Guardrails: NA[[]GuardrailFlag](),
		}

		issues := make([]IssueMatch, 0, len(turn.IssuesDetected))
		for _, issue := range turn.IssuesDetected {
			issues = append(issues, IssueMatch{
				Begin: issue.CharacterOffsets.Begin,
				End:   issue.CharacterOffsets.End,
			})
		}
		seg.Issues = OfSlice(issues)

		segments = append(segments, seg)
	}
	sort.SliceStable(segments, func(i, j int) bool { return segments[i].Start < segments[j].Start })

	conv := &Conversation{
		Variant:  schema.VariantCallAnalytics,
		Language: d.LanguageCode,
		Speakers: collectSpeakers(segments),
		Segments: segments,

		Summary:    NA[string](),
		Topics:     NA[[]TopicMention](),
		Entities:   NA[[]EntityMention](),
		Guardrails: NA[[]GuardrailFlag](),
		Blueprint:  NA[BlueprintInsights](),
	}

	for _, seg := range segments {
		if seg.End > conv.Duration {
			conv.Duration = seg.End
		}
	}

	conv.Categories = analyticsCategories(d.Categories)

	if ch := d.ConversationCharacteristics; ch != nil {
		if ch.TotalConversationDurationMillis > 0 {
			conv.Duration = millis(ch.TotalConversationDurationMillis)
		}
		conv.NativeNonTalk = analyticsNonTalk(ch.NonTalkTime)
		conv.NativeInterruptions = analyticsInterruptions(ch.Interruptions)
		conv.NativeSentiment = analyticsSentiment(ch.Sentiment)
	} else {
		conv.NativeNonTalk = EmptyOf[[]TimeRange]()
		conv.NativeInterruptions = EmptyOf[[]Interruption]()
		conv.NativeSentiment = EmptyOf[SentimentSummary]()
	}

	if d.JobName == "" && d.JobStatus == "" {
		conv.Metadata = EmptyOf[CallMetadata]()
	} else {
		conv.Metadata = Of(CallMetadata{
			JobName:      d.JobName,
			AccountID:    d.AccountID,
			Status:       d.JobStatus,
			LanguageCode: d.LanguageCode,
		})
	}

	return conv, nil
}

func analyticsWords(items []schema.AnalyticsItem) []Word {
	var words []Word
	for _, item := range items {
		if item.Type == "punctuation" {
			if n := len(words); n > 0 {
				words[n-1].Text += item.Content
			}
			continue
		}
		conf := item.Confidence
		words = append(words, Word{
			Text:       item.Content,
			Start:      millis(item.BeginOffsetMillis),
			End:        millis(item.EndOffsetMillis),
			Confidence: &conf,
		})
	}
	return words
}

func analyticsCategories(cats *schema.AnalyticsCategories) Opt[[]CategoryMatch] {
	if cats == nil {
		return EmptyOf[[]CategoryMatch]()
	}

	matches := make([]CategoryMatch, 0, len(cats.MatchedCategories))
	for _, name := range cats.MatchedCategories {
		match := CategoryMatch{Name: name}
		if detail, ok := cats.MatchedDetails[name]; ok {
			for _, poi := range detail.PointsOfInterest {
				match.Anchors = append(match.Anchors, millis(poi.BeginOffsetMillis))
			}
		}
		matches = append(matches, match)
	}
	return OfSlice(matches)
}

func analyticsNonTalk(nt *schema.AnalyticsNonTalk) Opt[[]TimeRange] {
	if nt == nil {
		return EmptyOf[[]TimeRange]()
	}
	ranges := make([]TimeRange, 0, len(nt.Instances))
	for _, inst := range nt.Instances {
		ranges = append(ranges, TimeRange{
			Start: millis(inst.BeginOffsetMillis),
			End:   millis(inst.EndOffsetMillis),
		})
	}
	return OfSlice(ranges)
}

func analyticsInterruptions(in *schema.AnalyticsInterruptions) Opt[[]Interruption] {
	if in == nil {
		return EmptyOf[[]Interruption]()
	}

	var interruptions []Interruption
	// Sort interrupter labels for deterministic ordering.
	labels := make([]string, 0, len(in.InterruptionsByInterrupter))
	for label := range in.InterruptionsByInterrupter {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		for _, span := range in.InterruptionsByInterrupter[label] {
			interruptions = append(interruptions, Interruption{
				Interrupter: label,
				Start:       millis(span.BeginOffsetMillis),
				End:         millis(span.EndOffsetMillis),
			})
		}
	}
	return OfSlice(interruptions)
}

func analyticsSentiment(s *schema.AnalyticsSentiment) Opt[SentimentSummary] {
	if s == nil {
		return EmptyOf[SentimentSummary]()
	}

	summary := SentimentSummary{Overall: s.OverallSentiment}

	quarters, ok := s.SentimentByPeriod["QUARTER"]
	if ok {
		labels := make([]string, 0, len(quarters))
		for label := range quarters {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		for _, label := range labels {
			for i, span := range quarters[label] {
				summary.Quarters = append(summary.Quarters, QuarterScore{
					Speaker: label,
					Quarter: i + 1,
					Score:   span.Score,
					HasData: true,
				})
			}
		}
	}

	if len(summary.Overall) == 0 && len(summary.Quarters) == 0 {
		return EmptyOf[SentimentSummary]()
	}
	return Of(summary)
}

func millis(ms int64) float64 {
	return float64(ms) / 1000.0
}
