package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/analysis"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/enrich"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"
)

// Emphasis grades transcript text by recognition confidence. The backend
// decides how each grade looks; the composer only assigns grades.
type Emphasis int

const (
	// EmphasisNormal is confident text, 0.90 and above.
	EmphasisNormal Emphasis = iota
	// EmphasisLow is uncertain text, 0.50 up to 0.90.
	EmphasisLow
	// EmphasisPoor is text below 0.50 confidence.
	EmphasisPoor
	// EmphasisRedacted is text with zero confidence, which the service
	// emits for redacted or unintelligible words.
	EmphasisRedacted
)

// Span is a run of transcript text sharing one emphasis grade. Issue spans
// additionally carry the issue flag so backends can mark them.
type Span struct {
	Text     string
	Emphasis Emphasis
	Issue    bool
}

// Turn is one rendered transcript entry.
type Turn struct {
	Speaker   string
	Timestamp string
	// Sentiment is the non-neutral label shown beside the speaker, or
	// empty.
	Sentiment model.SentimentLabel
	// Markers are inline annotations anchored at this turn: topic
	// starts, category hits and guardrail breaches.
	Markers []string
	Spans   []Span
}

// transcriptSection renders every segment in order. An empty conversation
// still yields the section, with a notice instead of turns.
func transcriptSection(conv *model.Conversation, res *analysis.Results, overlay enrich.Overlay, opts Options) *Section {
	s := &Section{Title: "Transcript"}

	if len(conv.Segments) == 0 {
		s.Blocks = append(s.Blocks, Block{
			Kind: BlockNotice,
			Text: "This call contained no audible speech.",
		})
		return s
	}

	topicStarts := topicStartIndex(conv)
	categoryHits := categoryIndex(conv)

	for i, seg := range conv.Segments {
		turn := &Turn{
			Speaker:   seg.Speaker,
			Timestamp: formatClock(seg.Start),
			Spans:     segmentSpans(seg),
		}

		if sent, ok := segmentSentiment(seg, overlay, i); ok {
			if sent.Label == model.SentimentPositive || sent.Label == model.SentimentNegative {
				turn.Sentiment = sent.Label
			}
		}

		for _, topic := range topicStarts[i] {
			turn.Markers = append(turn.Markers, "Topic: "+topic)
		}
		for _, cat := range categoryHits[i] {
			turn.Markers = append(turn.Markers, "Category: "+cat)
		}
		if opts.GuardrailCheck {
			if flags, ok := seg.Guardrails.Get(); ok {
				for _, f := range flags {
					if f.Confidence >= res.Guardrails.Limit {
						turn.Markers = append(turn.Markers, fmt.Sprintf("Guardrail: %s (%.2f)", f.Category, f.Confidence))
					}
				}
			}
		}

		s.Blocks = append(s.Blocks, Block{Kind: BlockTranscript, Turn: turn})
	}
	return s
}

// segmentSpans grades the turn text. Word-level confidence produces one
// span per emphasis run; analytics issue ranges split the plain text; text
// without either is a single normal span.
func segmentSpans(seg model.Segment) []Span {
	if hasConfidence(seg.Words) {
		return confidenceSpans(seg.Words)
	}
	if issues, ok := seg.Issues.Get(); ok && len(issues) > 0 {
		return issueSpans(seg.Text, issues)
	}
	return []Span{{Text: seg.Text}}
}

func hasConfidence(words []model.Word) bool {
	for _, w := range words {
		if w.Confidence != nil {
			return true
		}
	}
	return false
}

func emphasisFor(confidence *float64) Emphasis {
	if confidence == nil {
		return EmphasisNormal
	}
	switch c := *confidence; {
	case c == 0:
		return EmphasisRedacted
	case c >= 0.90:
		return EmphasisNormal
	case c >= 0.50:
		return EmphasisLow
	default:
		return EmphasisPoor
	}
}

// confidenceSpans merges adjacent words of equal emphasis into one span.
func confidenceSpans(words []model.Word) []Span {
	var spans []Span
	for _, w := range words {
		e := emphasisFor(w.Confidence)
		if n := len(spans); n > 0 && spans[n-1].Emphasis == e {
			spans[n-1].Text += " " + w.Text
			continue
		}
		spans = append(spans, Span{Text: w.Text, Emphasis: e})
	}
	return spans
}

// runeFloor moves a byte offset left to the nearest rune boundary so a
// slice never splits a multi-byte character.
func runeFloor(text string, i int) int {
	for i > 0 && i < len(text) && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

// issueSpans splits the text around detected-issue character ranges and
// flags the covered runs. Out-of-range and mid-rune offsets are clamped.
func issueSpans(text string, issues []model.IssueMatch) []Span {
	var spans []Span
	pos := 0
	for _, is := range issues {
		begin, end := runeFloor(text, is.Begin), runeFloor(text, is.End)
		if begin < pos {
			begin = pos
		}
		if end > len(text) {
			end = len(text)
		}
		if begin >= end {
			continue
		}
		if begin > pos {
			spans = append(spans, Span{Text: text[pos:begin]})
		}
		spans = append(spans, Span{Text: text[begin:end], Issue: true})
		pos = end
	}
	if pos < len(text) {
		spans = append(spans, Span{Text: text[pos:]})
	}
	if len(spans) == 0 {
		spans = append(spans, Span{Text: text})
	}
	return spans
}

// topicStartIndex maps segment index to the topics starting there. Only
// the first segment a topic overlaps is marked, so a topic spanning many
// segments appears once.
func topicStartIndex(conv *model.Conversation) map[int][]string {
	topics, ok := conv.Topics.Get()
	if !ok {
		return nil
	}
	out := map[int][]string{}
	for _, t := range topics {
		for i, seg := range conv.Segments {
			if seg.End > t.Start {
				out[i] = append(out[i], truncateTopic(t.Summary))
				break
			}
		}
	}
	return out
}

const maxTopicMarker = 80

func truncateTopic(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxTopicMarker {
		return s
	}
	return s[:runeFloor(s, maxTopicMarker-3)] + "..."
}

// categoryIndex maps segment index to the category names anchored there.
// Categories without anchors are table-only and never marked inline.
func categoryIndex(conv *model.Conversation) map[int][]string {
	cats, ok := conv.Categories.Get()
	if !ok {
		return nil
	}
	out := map[int][]string{}
	for _, c := range cats {
		for _, anchor := range c.Anchors {
			for i, seg := range conv.Segments {
				if anchor >= seg.Start && anchor <= seg.End {
					out[i] = append(out[i], c.Name)
					break
				}
			}
		}
	}
	return out
}
