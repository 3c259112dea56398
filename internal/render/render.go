// Package render selects and composes document sections from the canonical
// model, the derived metrics, and the chart descriptors. Compose is pure:
// the same inputs always produce the same ordered section list, so a
// re-render of an unchanged conversation is byte-identical apart from the
// run stamp the caller chooses to include.
package render

import (
	"fmt"
	"time"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/analysis"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/chart"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/enrich"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/schema"
)

// BlockKind discriminates the block payload.
type BlockKind string

const (
	BlockParagraph  BlockKind = "paragraph"
	BlockNotice     BlockKind = "notice"
	BlockTable      BlockKind = "table"
	BlockChart      BlockKind = "chart"
	BlockTranscript BlockKind = "transcript"
)

// Block is one renderable unit inside a section. Only the fields matching
// Kind are set.
type Block struct {
	Kind   BlockKind
	Text   string
	Header []string
	Rows   [][]string
	Chart  *chart.Chart
	Turn   *Turn
}

// Section is a titled block sequence. The composer emits sections in the
// fixed document order.
type Section struct {
	Title  string
	Blocks []Block
}

// Charts carries the pre-built descriptors the composer may place. Nil
// entries are simply not placed.
type Charts struct {
	Timeline   *chart.Chart
	Confidence *chart.Chart
	Quarters   *chart.Chart
	TalkTime   *chart.Chart
	Guardrails *chart.Chart
	Dials      []*chart.Chart
}

// Options selects the optional sections and carries the run stamp.
type Options struct {
	// ShowConfidence enables the word confidence section for sources
	// that measure it.
	ShowConfidence bool

	// ShowSentiment enables the enriched per-speaker sentiment graph
	// for sources without native sentiment summaries.
	ShowSentiment bool

	// GuardrailCheck enables the guardrail breach section.
	GuardrailCheck bool

	// RunID and GeneratedAt stamp the summary header when set. They are
	// the only non-deterministic content in a document.
	RunID       string
	GeneratedAt time.Time
}

const placeholder = "n/a"

// BuildCharts constructs every descriptor the composer might place. The
// composer decides which actually appear.
func BuildCharts(conv *model.Conversation, res *analysis.Results) Charts {
	charts := Charts{
		Confidence: chart.ConfidenceScatter(res, conv.Duration),
		Quarters:   chart.SentimentTrend(res),
		TalkTime:   chart.TalkTimePie(res),
		Guardrails: chart.GuardrailPie(res),
	}
	if conv.Variant == schema.VariantCallAnalytics {
		charts.Timeline = chart.SpeakerTimeline(conv, res)
	}
	if bp, ok := conv.Blueprint.Get(); ok {
		charts.Dials = []*chart.Chart{
			chart.Dial("Caller satisfaction", bp.CallerSatisfaction),
			chart.Dial("Caller emotion", bp.CallerEmotion),
			chart.Dial("Agent emotion", bp.AgentEmotion),
		}
	}
	return charts
}

// Compose builds the ordered section list for the conversation. Section
// inclusion follows the source variant and the enabled options; order is
// fixed regardless.
func Compose(conv *model.Conversation, res *analysis.Results, charts Charts, overlay enrich.Overlay, opts Options) []Section {
	var sections []Section
	add := func(s *Section) {
		if s != nil {
			sections = append(sections, *s)
		}
	}

	add(summarySection(conv, opts))
	if conv.Variant == schema.VariantCallAnalytics {
		add(timelineSection(charts))
	}
	add(tablesSection(conv, res))
	add(transcriptSection(conv, res, overlay, opts))
	if opts.ShowConfidence && res.Confidence.Applicable() {
		add(confidenceSection(res, charts))
	}
	if opts.ShowSentiment && conv.Variant != schema.VariantCallAnalytics {
		add(sentimentSection(conv, overlay))
	}
	for _, s := range customSections(conv, res, charts, opts) {
		add(s)
	}
	return sections
}

// timelineSection holds the combined speaker, sentiment and non-talk graph.
func timelineSection(charts Charts) *Section {
	if charts.Timeline == nil {
		return nil
	}
	s := &Section{Title: "Call Timeline"}
	s.Blocks = append(s.Blocks, Block{Kind: BlockChart, Chart: charts.Timeline})
	if charts.TalkTime != nil {
		s.Blocks = append(s.Blocks, Block{Kind: BlockChart, Chart: charts.TalkTime})
	}
	return s
}

func confidenceSection(res *analysis.Results, charts Charts) *Section {
	s := &Section{Title: "Word Confidence"}
	s.Blocks = append(s.Blocks, Block{
		Kind: BlockParagraph,
		Text: fmt.Sprintf("Mean word confidence %.1f%% across %d scored words.", res.Confidence.Mean*100, res.Confidence.Count),
	})

	header := []string{"Range", "Words"}
	var rows [][]string
	n := len(res.Confidence.Buckets)
	for i, count := range res.Confidence.Buckets {
		lo := float64(i) / float64(n)
		hi := float64(i+1) / float64(n)
		rows = append(rows, []string{
			fmt.Sprintf("%.0f%% - %.0f%%", lo*100, hi*100),
			fmt.Sprintf("%d", count),
		})
	}
	s.Blocks = append(s.Blocks, Block{Kind: BlockTable, Header: header, Rows: rows})

	if charts.Confidence != nil {
		s.Blocks = append(s.Blocks, Block{Kind: BlockChart, Chart: charts.Confidence})
	}
	return s
}

// sentimentSection graphs enriched sentiment for non-neutral turns only.
func sentimentSection(conv *model.Conversation, overlay enrich.Overlay) *Section {
	series := map[string][]chart.Point{}
	var speakers []string
	for i, seg := range conv.Segments {
		sent, ok := segmentSentiment(seg, overlay, i)
		if !ok {
			continue
		}
		if sent.Label != model.SentimentPositive && sent.Label != model.SentimentNegative {
			continue
		}
		y := labelOnlyScore(sent.Label)
		if sent.Score != nil {
			y = *sent.Score
		}
		if _, seen := series[seg.Speaker]; !seen {
			speakers = append(speakers, seg.Speaker)
		}
		series[seg.Speaker] = append(series[seg.Speaker], chart.Point{X: seg.Midpoint(), Y: y})
	}
	if len(speakers) == 0 {
		return nil
	}

	c := &chart.Chart{
		Kind:   chart.KindLine,
		Title:  "Speaker Sentiment",
		XLabel: "Seconds",
		YLabel: "Sentiment",
		XMin:   0, XMax: conv.Duration,
		YMin: -1, YMax: 1,
	}
	for _, sp := range speakers {
		c.Series = append(c.Series, chart.Series{Name: sp, Points: series[sp]})
	}

	return &Section{
		Title:  "Speaker Sentiment",
		Blocks: []Block{{Kind: BlockChart, Chart: c}},
	}
}

// labelOnlyScore places a label without a numeric score on the graph axis.
// The magnitude mirrors the quarter-trend mapping of labels to 3 of 5,
// scaled to the -1..1 axis.
func labelOnlyScore(label model.SentimentLabel) float64 {
	switch label {
	case model.SentimentPositive:
		return 0.6
	case model.SentimentNegative:
		return -0.6
	default:
		return 0
	}
}

// segmentSentiment resolves a segment's sentiment from its native value or
// the enrichment overlay, native first.
func segmentSentiment(seg model.Segment, overlay enrich.Overlay, index int) (model.Sentiment, bool) {
	if s, ok := seg.Sentiment.Get(); ok {
		return s, true
	}
	if overlay != nil {
		if s, ok := overlay[index]; ok && s.Label != model.SentimentUnavailable {
			return s, true
		}
	}
	return model.Sentiment{}, false
}

func formatClock(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	ms := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
