package model

import (
	"fmt"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/schema"
)

// startNewSegmentDelay is the pause, in seconds, after which speech by the
// same speaker starts a new turn instead of extending the previous one.
const startNewSegmentDelay = 2.0

// Build maps a variant-tagged parse tree into the canonical conversation
// model. Each variant has one total mapping function; the result shape is
// identical across variants, with mode-inapplicable fields marked as such.
func Build(doc *schema.Document) (*Conversation, error) {
	switch doc.Variant {
	case schema.VariantStandard:
		return buildStandard(doc.Standard)
	case schema.VariantCallAnalytics:
		return buildAnalytics(doc.Analytics)
	case schema.VariantBDAAudio:
		return buildBDA(doc.BDA, nil)
	case schema.VariantBDABlueprint:
		return buildBDA(doc.BDA, doc.Blueprint)
	default:
		return nil, fmt.Errorf("model: cannot build from %s document", doc.Variant)
	}
}

// collectSpeakers derives the speaker list from segments, indexed in order
// of first appearance.
func collectSpeakers(segments []Segment) []Speaker {
	var speakers []Speaker
	seen := make(map[string]bool)
	for _, seg := range segments {
		if seen[seg.Speaker] {
			continue
		}
		seen[seg.Speaker] = true
		speakers = append(speakers, Speaker{Index: len(speakers), Label: seg.Speaker})
	}
	return speakers
}

// mergeSegments joins consecutive turns by the same speaker when the gap is
// shorter than startNewSegmentDelay, the language matches, and the later
// turn carries no guardrail annotations of its own.
func mergeSegments(segments []Segment) []Segment {
	var out []Segment

	for _, seg := range segments {
		if len(out) == 0 {
			out = append(out, seg)
			continue
		}

		last := &out[len(out)-1]
		gap := seg.Start - last.End
		_, hasGuardrails := seg.Guardrails.Get()

		if seg.Speaker != last.Speaker || gap >= startNewSegmentDelay ||
			seg.Language != last.Language || hasGuardrails {
			out = append(out, seg)
			continue
		}

		last.End = seg.End
		if seg.Text != "" {
			if last.Text != "" {
				last.Text += " "
			}
			last.Text += seg.Text
		}
		last.Words = append(last.Words, seg.Words...)
	}

	return out
}
