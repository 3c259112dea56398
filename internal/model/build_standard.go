package model

import (
	"sort"
	"strconv"
	"strings"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/schema"
)

// buildStandard maps plain Transcribe output into the canonical model.
// Standard documents carry word confidence but no sentiment, categories,
// topics or guardrails; those fields are marked not-applicable so the
// renderer can tell them apart from "nothing detected".
func buildStandard(d *schema.StandardDoc) (*Conversation, error) {
	if len(d.Results.Items) == 0 {
		return nil, &MissingDataError{Variant: "standard", Field: "results.items"}
	}

	var segments []Segment
	switch {
	case d.Results.SpeakerLabels != nil && len(d.Results.SpeakerLabels.Segments) > 0:
		segments = standardDiarizedSegments(d.Results.SpeakerLabels, d.Results.Items)
	case d.Results.ChannelLabels != nil && len(d.Results.ChannelLabels.Channels) > 0:
		segments = standardChannelSegments(d.Results.ChannelLabels)
	default:
		segments = splitOnGaps(standardWords(d.Results.Items), "spk_0")
	}

	segments = mergeSegments(segments)
	for i := range segments {
		segments[i].Text = joinWords(segments[i].Words)
		segments[i].Sentiment = NA[Sentiment]()
		segments[i].Loudness = NA[[]float64]()
		segments[i].Issues = NA[[]IssueMatch]()
		segments[i].Guardrails = NA[[]GuardrailFlag]()
	}

	var duration float64
	for _, seg := range segments {
		if seg.End > duration {
			duration = seg.End
		}
	}

	conv := &Conversation{
		Variant:  schema.VariantStandard,
		Duration: duration,
		Speakers: collectSpeakers(segments),
		Segments: segments,

		Summary:             NA[string](),
		NativeSentiment:     NA[SentimentSummary](),
		NativeNonTalk:       NA[[]TimeRange](),
		NativeInterruptions: NA[[]Interruption](),
		Categories:          NA[[]CategoryMatch](),
		Topics:              NA[[]TopicMention](),
		Entities:            NA[[]EntityMention](),
		Guardrails:          NA[[]GuardrailFlag](),
		Blueprint:           NA[BlueprintInsights](),
	}

	if d.JobName == "" && d.Status == "" {
		conv.Metadata = EmptyOf[CallMetadata]()
	} else {
		conv.Metadata = Of(CallMetadata{
			JobName:   d.JobName,
			AccountID: d.AccountID,
			Status:    d.Status,
		})
	}

	return conv, nil
}

// standardWords converts the flat item list into timed words, attaching
// punctuation to the preceding word.
func standardWords(items []schema.StandardItem) []Word {
	var words []Word
	for _, item := range items {
		if len(item.Alternatives) == 0 {
			continue
		}
		alt := item.Alternatives[0]

		if item.Type == "punctuation" {
			if n := len(words); n > 0 {
				words[n-1].Text += alt.Content
			}
			continue
		}

		w := Word{
			Text:  alt.Content,
			Start: parseSeconds(item.StartTime),
			End:   parseSeconds(item.EndTime),
		}
		if alt.Confidence != "" {
			if conf, err := strconv.ParseFloat(alt.Confidence, 64); err == nil {
				w.Confidence = &conf
			}
		}
		words = append(words, w)
	}
	return words
}

// standardDiarizedSegments builds one segment per diarized span and assigns
// words to spans by start time.
func standardDiarizedSegments(labels *schema.StandardSpeakers, items []schema.StandardItem) []Segment {
	words := standardWords(items)

	segments := make([]Segment, 0, len(labels.Segments))
	for _, span := range labels.Segments {
		segments = append(segments, Segment{
			Speaker: span.SpeakerLabel,
			Start:   parseSeconds(span.StartTime),
			End:     parseSeconds(span.EndTime),
		})
	}
	sort.SliceStable(segments, func(i, j int) bool { return segments[i].Start < segments[j].Start })

	// Assign each word to the last span starting at or before it.
	for _, w := range words {
		idx := -1
		for i := range segments {
			if segments[i].Start <= w.Start+1e-9 {
				idx = i
			} else {
				break
			}
		}
		if idx < 0 {
			idx = 0
		}
		segments[idx].Words = append(segments[idx].Words, w)
	}

	// Drop spans that received no words.
	out := segments[:0]
	for _, seg := range segments {
		if len(seg.Words) > 0 {
			out = append(out, seg)
		}
	}
	return out
}

// standardChannelSegments builds per-channel word streams and splits each on
// speech gaps, interleaving the results by start time.
func standardChannelSegments(wrap *schema.StandardChannelsWrap) []Segment {
	var segments []Segment
	for _, ch := range wrap.Channels {
		words := standardWords(ch.Items)
		segments = append(segments, splitOnGaps(words, ch.ChannelLabel)...)
	}
	sort.SliceStable(segments, func(i, j int) bool { return segments[i].Start < segments[j].Start })
	return segments
}

// splitOnGaps turns a time-ordered word stream into segments, starting a new
// segment whenever the pause exceeds startNewSegmentDelay.
func splitOnGaps(words []Word, speaker string) []Segment {
	var segments []Segment
	for _, w := range words {
		if n := len(segments); n > 0 && w.Start-segments[n-1].End < startNewSegmentDelay {
			seg := &segments[n-1]
			seg.End = w.End
			seg.Words = append(seg.Words, w)
			continue
		}
		segments = append(segments, Segment{
			Speaker: speaker,
			Start:   w.Start,
			End:     w.End,
			Words:   []Word{w},
		})
	}
	return segments
}

// joinWords renders a segment's text from its words.
func joinWords(words []Word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
