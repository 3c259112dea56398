package model

import (
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/schema"
)

// buildBDA maps Bedrock Data Automation audio output into the canonical
// model, optionally layering in a custom-blueprint result. BDA words never
// carry confidence. A document with zero audio segments is legal; it renders
// as a call with no audible speech.
func buildBDA(d *schema.BDADoc, bp *schema.BlueprintDoc) (*Conversation, error) {
	if d.Metadata.DurationMillis <= 0 {
		return nil, &MissingDataError{Variant: "bda-audio", Field: "metadata.duration_millis"}
	}

	segments := make([]Segment, 0, len(d.AudioSegments))
	for i, turn := range d.AudioSegments {
		seg := Segment{
			Speaker:  turn.Speaker.SpeakerLabel,
			Start:    millis(turn.StartTimestampMillis),
			End:      millis(turn.EndTimestampMillis),
			Text:     turn.Text,
			Language: turn.Language,
			Words:    bdaWords(turn.AudioItemIndices, d.AudioItems),

			Sentiment: bdaTurnSentiment(turn.Sentiment),
			Loudness:  NA[[]float64](),
			Issues:    NA[[]IssueMatch](),
		}
		seg.Guardrails = bdaSegmentGuardrails(d.Audio, i, seg)
		segments = append(segments, seg)
	}

	segments = mergeSegments(segments)

	conv := &Conversation{
		Variant:  schema.VariantBDAAudio,
		Duration: millis(d.Metadata.DurationMillis),
		Language: d.Metadata.DominantAssetLanguage,
		Speakers: collectSpeakers(segments),
		Segments: segments,

		NativeSentiment:     NA[SentimentSummary](),
		NativeNonTalk:       NA[[]TimeRange](),
		NativeInterruptions: NA[[]Interruption](),
		Categories:          NA[[]CategoryMatch](),
	}

	conv.Metadata = Of(CallMetadata{
		JobName:       d.Metadata.S3Key,
		MediaFile:     d.Metadata.S3Key,
		MediaFormat:   d.Metadata.Format,
		SampleRateKHz: d.Metadata.SampleRate,
		LanguageCode:  d.Metadata.DominantAssetLanguage,
	})

	if d.Audio != nil && d.Audio.Summary != "" {
		conv.Summary = Of(d.Audio.Summary)
	} else {
		conv.Summary = EmptyOf[string]()
	}

	topics := make([]TopicMention, 0, len(d.Topics))
	for _, t := range d.Topics {
		topics = append(topics, TopicMention{
			Index:   t.TopicIndex,
			Start:   millis(t.StartTimestampMillis),
			End:     millis(t.EndTimestampMillis),
			Summary: t.Summary,
		})
	}
	conv.Topics = OfSlice(topics)

	conv.Guardrails = bdaAllGuardrails(d.Audio)

	if bp != nil && bp.InferenceResult != nil {
		conv.Variant = schema.VariantBDABlueprint
		conv.Blueprint = Of(blueprintInsights(bp.InferenceResult))
		conv.Entities = blueprintEntities(bp.InferenceResult)
	} else {
		conv.Blueprint = NA[BlueprintInsights]()
		conv.Entities = NA[[]EntityMention]()
	}

	return conv, nil
}

// bdaWords resolves a segment's word list through its item indices.
// Punctuation items carry no timestamps and attach to the preceding word.
func bdaWords(indices []int, items []schema.BDAItem) []Word {
	var words []Word
	for _, idx := range indices {
		if idx < 0 || idx >= len(items) {
			continue
		}
		item := items[idx]

		if item.StartTimestampMillis == nil {
			if n := len(words); n > 0 {
				words[n-1].Text += item.Content
			}
			continue
		}

		var end float64
		if item.EndTimestampMillis != nil {
			end = millis(*item.EndTimestampMillis)
		}
		words = append(words, Word{
			Text:  item.Content,
			Start: millis(*item.StartTimestampMillis),
			End:   end,
		})
	}
	return words
}

// bdaTurnSentiment maps the native per-turn sentiment label. Older BDA
// outputs omit it; those turns report present-but-empty rather than
// not-applicable, since the mode does supply sentiment.
func bdaTurnSentiment(label string) Opt[Sentiment] {
	if label == "" {
		return EmptyOf[Sentiment]()
	}
	return Of(Sentiment{Label: ParseSentimentLabel(label)})
}

// bdaSegmentGuardrails attaches the moderation categories recorded for the
// segment at the same position. All flags are retained here; threshold
// filtering is an analysis concern.
func bdaSegmentGuardrails(audio *schema.BDAAudio, index int, seg Segment) Opt[[]GuardrailFlag] {
	if audio == nil || index >= len(audio.ContentModeration) {
		return EmptyOf[[]GuardrailFlag]()
	}

	mod := audio.ContentModeration[index]
	flags := make([]GuardrailFlag, 0, len(mod.Categories))
	for _, cat := range mod.Categories {
		flags = append(flags, GuardrailFlag{
			Category:   cat.Category,
			Confidence: cat.Confidence,
			Start:      seg.Start,
			End:        seg.End,
		})
	}
	return OfSlice(flags)
}

// bdaAllGuardrails flattens every moderation result into call-level flags.
func bdaAllGuardrails(audio *schema.BDAAudio) Opt[[]GuardrailFlag] {
	if audio == nil {
		return EmptyOf[[]GuardrailFlag]()
	}

	var flags []GuardrailFlag
	for _, mod := range audio.ContentModeration {
		for _, cat := range mod.Categories {
			flags = append(flags, GuardrailFlag{
				Category:   cat.Category,
				Confidence: cat.Confidence,
				Start:      millis(mod.StartTimestampMillis),
				End:        millis(mod.EndTimestampMillis),
			})
		}
	}
	return OfSlice(flags)
}

func blueprintInsights(r *schema.BlueprintResult) BlueprintInsights {
	return BlueprintInsights{
		Summary: r.CallSummary,

		Categories:     r.CallCategories,
		Topics:         r.CallTopics,
		Issues:         r.CallIssues,
		Intents:        r.CallIntents,
		AgentActions:   r.AgentActions,
		PendingActions: r.AgentPendingActionItems,

		CallerSatisfaction: clampDial(r.CallerSatisfactionLevel),
		CallerEmotion:      clampDial(r.CallerEmotionRating),
		AgentEmotion:       clampDial(r.AgentEmotionRating),

		IssueResolved:         r.IssueResolution,
		CallOpening:           r.CallOpening,
		CallWrapup:            r.CallWrapup,
		CallerNegativeEmotion: r.CallerNegativeEmotion,

		CallerSentiment: SentimentNarrative{
			Summary:      r.CallerSentimentSummary,
			EmotionLabel: r.CallerEmotionLabel,
			EndSentiment: r.CallerEndSentiment,
			Improvement:  r.CallerEmotionImprovement,
		},
		AgentSentiment: SentimentNarrative{
			Summary:      r.AgentSentimentSummary,
			EmotionLabel: r.AgentEmotionLabel,
			EndSentiment: r.AgentEndSentiment,
		},
	}
}

func blueprintEntities(r *schema.BlueprintResult) Opt[[]EntityMention] {
	entities := make([]EntityMention, 0, len(r.DetectedEntities))
	for _, e := range r.DetectedEntities {
		entities = append(entities, EntityMention{Text: e.Text, Tags: e.Tags})
	}
	return OfSlice(entities)
}

// clampDial forces a blueprint rating into the 1..5 dial range.
func clampDial(v float64) int {
	n := int(v)
	if n < 1 {
		n = 1
	}
	if n > 5 {
		n = 5
	}
	return n
}
