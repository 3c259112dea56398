// Package chart builds renderer-independent chart descriptors from derived
// metrics. Builders are pure functions: the same inputs always produce the
// same descriptor, and inapplicable charts come back nil so the document
// composer can drop the section.
package chart

import (
	"fmt"
	"sort"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/analysis"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"
)

// Kind identifies the visual form a descriptor asks for.
type Kind string

const (
	KindPie      Kind = "pie"
	KindLine     Kind = "line"
	KindScatter  Kind = "scatter"
	KindDial     Kind = "dial"
	KindTimeline Kind = "timeline"
)

// Point is one x/y sample.
type Point struct {
	X float64
	Y float64
}

// Series is a named point sequence, one per speaker for speaker charts.
type Series struct {
	Name   string
	Points []Point
}

// Slice is one pie segment.
type Slice struct {
	Label string
	Value float64
}

// Band is a horizontal span on a timeline row.
type Band struct {
	Row   string
	Start float64
	End   float64
	Label string
}

// Chart is the full descriptor. Only the fields relevant to Kind are set.
type Chart struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string

	XMin, XMax float64
	YMin, YMax float64

	Series []Series
	Slices []Slice
	Bands  []Band

	// Dial charts use Value within [DialMin, DialMax].
	Value   float64
	DialMin float64
	DialMax float64
}

// ConfidenceScatter plots every word confidence against call time. Returns
// nil when no word carried a confidence value.
func ConfidenceScatter(res *analysis.Results, duration float64) *Chart {
	if !res.Confidence.Applicable() {
		return nil
	}
	pts := make([]Point, 0, len(res.Confidence.Scatter))
	for _, p := range res.Confidence.Scatter {
		pts = append(pts, Point{X: p.Time, Y: p.Value})
	}
	return &Chart{
		Kind:   KindScatter,
		Title:  "Word Confidence",
		XLabel: "Seconds",
		YLabel: "Confidence",
		XMin:   0, XMax: duration,
		YMin: 0, YMax: 1,
		Series: []Series{{Name: "confidence", Points: pts}},
	}
}

// SentimentTrend plots per-speaker quarter sentiment on the -5..+5 scale.
// Quarters without data are omitted from the series, so lines may have
// fewer than four points. Returns nil when no quarter has data.
func SentimentTrend(res *analysis.Results) *Chart {
	if !res.Quarters.Applicable() {
		return nil
	}

	bySpeaker := map[string][]Point{}
	var speakers []string
	for _, q := range res.Quarters.Scores {
		if !q.HasData {
			continue
		}
		if _, ok := bySpeaker[q.Speaker]; !ok {
			speakers = append(speakers, q.Speaker)
		}
		bySpeaker[q.Speaker] = append(bySpeaker[q.Speaker], Point{X: float64(q.Quarter), Y: q.Score})
	}
	sort.Strings(speakers)

	c := &Chart{
		Kind:   KindLine,
		Title:  "Call Sentiment Trend",
		XLabel: "Quarter",
		YLabel: "Sentiment",
		XMin:   1, XMax: 4,
		YMin: -5, YMax: 5,
	}
	for _, sp := range speakers {
		pts := bySpeaker[sp]
		sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
		c.Series = append(c.Series, Series{Name: sp, Points: pts})
	}
	return c
}

// TalkTimePie shows speaking time per speaker plus the non-talk share.
// Returns nil when nobody spoke.
func TalkTimePie(res *analysis.Results) *Chart {
	if len(res.TalkTime.BySpeaker) == 0 {
		return nil
	}

	speakers := make([]string, 0, len(res.TalkTime.BySpeaker))
	for sp := range res.TalkTime.BySpeaker {
		speakers = append(speakers, sp)
	}
	sort.Strings(speakers)

	c := &Chart{Kind: KindPie, Title: "Speaker Time"}
	for _, sp := range speakers {
		c.Slices = append(c.Slices, Slice{Label: sp, Value: res.TalkTime.BySpeaker[sp]})
	}
	if res.TalkTime.NonTalk > 0 {
		c.Slices = append(c.Slices, Slice{Label: "Non-talk", Value: res.TalkTime.NonTalk})
	}
	return c
}

// Dial renders a 1..5 rating gauge. Values are assumed pre-clamped by the
// model builder.
func Dial(title string, value int) *Chart {
	return &Chart{
		Kind:    KindDial,
		Title:   title,
		Value:   float64(value),
		DialMin: 1,
		DialMax: 5,
	}
}

// SpeakerTimeline lays speech segments out per speaker row, with loudness
// available as series and interruptions as labelled bands. Returns nil for
// conversations with no segments.
func SpeakerTimeline(conv *model.Conversation, res *analysis.Results) *Chart {
	if len(conv.Segments) == 0 {
		return nil
	}

	c := &Chart{
		Kind:   KindTimeline,
		Title:  "Speaker Activity",
		XLabel: "Seconds",
		XMin:   0, XMax: conv.Duration,
	}
	for _, seg := range conv.Segments {
		c.Bands = append(c.Bands, Band{Row: seg.Speaker, Start: seg.Start, End: seg.End})
	}
	for _, ev := range res.Interruptions.Events {
		c.Bands = append(c.Bands, Band{
			Row:   ev.Interrupter,
			Start: ev.Start,
			End:   ev.End,
			Label: "interruption",
		})
	}
	if spans, ok := conv.NativeNonTalk.Get(); ok {
		for _, sp := range spans {
			c.Bands = append(c.Bands, Band{Row: "non-talk", Start: sp.Start, End: sp.End})
		}
	}
	if res.Volume.Applicable() {
		speakers := make([]string, 0, len(res.Volume.BySpeaker))
		for sp := range res.Volume.BySpeaker {
			speakers = append(speakers, sp)
		}
		sort.Strings(speakers)
		for _, sp := range speakers {
			var pts []Point
			for _, p := range res.Volume.BySpeaker[sp] {
				pts = append(pts, Point{X: p.Time, Y: p.Value})
			}
			c.Series = append(c.Series, Series{Name: sp, Points: pts})
		}
	}
	return c
}

// GuardrailPie shows breach counts per moderation category. Returns nil
// when the threshold filtered everything out.
func GuardrailPie(res *analysis.Results) *Chart {
	if len(res.Guardrails.Breaches) == 0 {
		return nil
	}
	counts := map[string]int{}
	var cats []string
	for _, b := range res.Guardrails.Breaches {
		if counts[b.Category] == 0 {
			cats = append(cats, b.Category)
		}
		counts[b.Category]++
	}
	sort.Strings(cats)

	c := &Chart{Kind: KindPie, Title: fmt.Sprintf("Guardrail Breaches (>= %.2f)", res.Guardrails.Limit)}
	for _, cat := range cats {
		c.Slices = append(c.Slices, Slice{Label: cat, Value: float64(counts[cat])})
	}
	return c
}
