package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/analysis"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/schema"
)

// summarySection renders the job metadata table for transcription sources
// and the abstractive call summary for generative sources. Metadata fields
// that are empty get explicit placeholders rather than being dropped.
func summarySection(conv *model.Conversation, opts Options) *Section {
	s := &Section{Title: "Call Summary"}

	if !opts.GeneratedAt.IsZero() {
		text := "Generated " + opts.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")
		if opts.RunID != "" {
			text += " (run " + opts.RunID + ")"
		}
		s.Blocks = append(s.Blocks, Block{Kind: BlockParagraph, Text: text})
	}

	if summary, ok := conv.Summary.Get(); ok && summary != "" {
		s.Blocks = append(s.Blocks, Block{Kind: BlockParagraph, Text: summary})
	}

	if conv.Variant != schema.VariantBDAAudio && conv.Variant != schema.VariantBDABlueprint {
		if meta, ok := conv.Metadata.Get(); ok {
			s.Blocks = append(s.Blocks, metadataTable(conv, meta))
		} else {
			s.Blocks = append(s.Blocks, Block{
				Kind: BlockNotice,
				Text: "Job details were not available for this transcript.",
			})
		}
	}
	if len(s.Blocks) == 0 {
		return nil
	}
	return s
}

func metadataTable(conv *model.Conversation, meta model.CallMetadata) Block {
	orDash := func(v string) string {
		if v == "" {
			return placeholder
		}
		return v
	}
	sampleRate := placeholder
	if meta.SampleRateKHz > 0 {
		sampleRate = fmt.Sprintf("%d kHz", meta.SampleRateKHz)
	}
	redaction := "Off"
	if meta.Redaction {
		redaction = "On"
	}
	rows := [][]string{
		{"Job name", orDash(meta.JobName)},
		{"Account", orDash(meta.AccountID)},
		{"Status", orDash(meta.Status)},
		{"Language", orDash(meta.LanguageCode)},
		{"Media file", orDash(meta.MediaFile)},
		{"Format", orDash(meta.MediaFormat)},
		{"Sample rate", sampleRate},
		{"Custom vocabulary", orDash(meta.VocabularyName)},
		{"Redaction", redaction},
		{"Duration", formatClock(conv.Duration)},
	}
	return Block{Kind: BlockTable, Header: []string{"Field", "Value"}, Rows: rows}
}

// tablesSection renders the categories, issues and per-quarter sentiment
// tables for analytics sources, and the blueprint summary tables for
// generative sources with a custom blueprint.
func tablesSection(conv *model.Conversation, res *analysis.Results) *Section {
	switch conv.Variant {
	case schema.VariantCallAnalytics:
		return analyticsTables(conv, res)
	case schema.VariantBDABlueprint:
		return blueprintTables(conv)
	default:
		return nil
	}
}

func analyticsTables(conv *model.Conversation, res *analysis.Results) *Section {
	s := &Section{Title: "Call Analytics"}

	if cats, ok := conv.Categories.Get(); ok {
		header := []string{"Category", "Occurrences"}
		var rows [][]string
		for _, c := range cats {
			n := len(c.Anchors)
			if n == 0 {
				n = 1
			}
			rows = append(rows, []string{c.Name, fmt.Sprintf("%d", n)})
		}
		if len(rows) == 0 {
			rows = append(rows, []string{placeholder, "0"})
		}
		s.Blocks = append(s.Blocks, Block{Kind: BlockTable, Header: header, Rows: rows})
	}

	if issueCount := countIssues(conv); issueCount > 0 {
		s.Blocks = append(s.Blocks, Block{
			Kind: BlockParagraph,
			Text: fmt.Sprintf("%d issue mention(s) detected; each is marked inline in the transcript.", issueCount),
		})
	}

	s.Blocks = append(s.Blocks, quarterTable(res))
	s.Blocks = append(s.Blocks, talkStatsTable(res))
	return s
}

func countIssues(conv *model.Conversation) int {
	var n int
	for _, seg := range conv.Segments {
		if issues, ok := seg.Issues.Get(); ok {
			n += len(issues)
		}
	}
	return n
}

func quarterTable(res *analysis.Results) Block {
	header := []string{"Speaker", "Q1", "Q2", "Q3", "Q4"}
	cell := map[string][]string{}
	var speakers []string
	for _, q := range res.Quarters.Scores {
		if _, ok := cell[q.Speaker]; !ok {
			speakers = append(speakers, q.Speaker)
			cell[q.Speaker] = []string{placeholder, placeholder, placeholder, placeholder}
		}
		if q.HasData && q.Quarter >= 1 && q.Quarter <= 4 {
			cell[q.Speaker][q.Quarter-1] = fmt.Sprintf("%.1f", q.Score)
		}
	}

	var rows [][]string
	for _, sp := range speakers {
		rows = append(rows, append([]string{sp}, cell[sp]...))
	}
	if len(rows) == 0 {
		rows = append(rows, []string{placeholder, placeholder, placeholder, placeholder, placeholder})
	}
	return Block{Kind: BlockTable, Header: header, Rows: rows}
}

func talkStatsTable(res *analysis.Results) Block {
	header := []string{"Speaker", "Talk time", "Interruptions"}
	var rows [][]string
	speakers := make([]string, 0, len(res.TalkTime.BySpeaker))
	for sp := range res.TalkTime.BySpeaker {
		speakers = append(speakers, sp)
	}
	sort.Strings(speakers)
	for _, sp := range speakers {
		rows = append(rows, []string{
			sp,
			formatClock(res.TalkTime.BySpeaker[sp]),
			fmt.Sprintf("%d", res.Interruptions.CountBySpeaker[sp]),
		})
	}
	rows = append(rows, []string{"Non-talk", formatClock(res.TalkTime.NonTalk), ""})
	return Block{Kind: BlockTable, Header: header, Rows: rows}
}

func blueprintTables(conv *model.Conversation) *Section {
	bp, ok := conv.Blueprint.Get()
	if !ok {
		return nil
	}
	s := &Section{Title: "Call Assessment"}

	yn := func(v bool) string {
		if v {
			return "Yes"
		}
		return "No"
	}
	s.Blocks = append(s.Blocks, Block{
		Kind:   BlockTable,
		Header: []string{"Check", "Result"},
		Rows: [][]string{
			{"Issue resolved", yn(bp.IssueResolved)},
			{"Standard call opening", yn(bp.CallOpening)},
			{"Standard call wrapup", yn(bp.CallWrapup)},
			{"Caller negative emotion", yn(bp.CallerNegativeEmotion)},
		},
	})

	narrative := func(title string, n model.SentimentNarrative) {
		rows := [][]string{
			{"Summary", orPlaceholder(n.Summary)},
			{"Emotion", orPlaceholder(n.EmotionLabel)},
			{"Ending sentiment", orPlaceholder(n.EndSentiment)},
			{"Improvement", orPlaceholder(n.Improvement)},
		}
		s.Blocks = append(s.Blocks, Block{Kind: BlockParagraph, Text: title})
		s.Blocks = append(s.Blocks, Block{Kind: BlockTable, Header: []string{"Aspect", "Assessment"}, Rows: rows})
	}
	narrative("Caller sentiment", bp.CallerSentiment)
	narrative("Agent sentiment", bp.AgentSentiment)

	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		var rows [][]string
		for _, it := range items {
			rows = append(rows, []string{it})
		}
		s.Blocks = append(s.Blocks, Block{Kind: BlockTable, Header: []string{title}, Rows: rows})
	}
	list("Categories", bp.Categories)
	list("Topics", bp.Topics)
	list("Issues", bp.Issues)
	list("Intents", bp.Intents)
	list("Agent actions", bp.AgentActions)
	list("Pending actions", bp.PendingActions)
	return s
}

// customSections renders the generative-source tail: rating dials, topics,
// entities and guardrail breaches, in that order.
func customSections(conv *model.Conversation, res *analysis.Results, charts Charts, opts Options) []*Section {
	var out []*Section

	if len(charts.Dials) > 0 {
		s := &Section{Title: "Call Ratings"}
		for _, d := range charts.Dials {
			if d != nil {
				s.Blocks = append(s.Blocks, Block{Kind: BlockChart, Chart: d})
			}
		}
		if len(s.Blocks) > 0 {
			out = append(out, s)
		}
	}

	if topics, ok := conv.Topics.Get(); ok && len(topics) > 0 {
		s := &Section{Title: "Topics"}
		var rows [][]string
		for _, t := range topics {
			rows = append(rows, []string{
				formatClock(t.Start),
				formatClock(t.End),
				t.Summary,
			})
		}
		s.Blocks = append(s.Blocks, Block{Kind: BlockTable, Header: []string{"Start", "End", "Topic"}, Rows: rows})
		out = append(out, s)
	}

	if res.Entities.Applicable() {
		s := &Section{Title: "Entities"}
		group := func(title string, items []string) {
			if len(items) == 0 {
				return
			}
			s.Blocks = append(s.Blocks, Block{
				Kind: BlockParagraph,
				Text: title + ": " + strings.Join(items, ", "),
			})
		}
		group("Locations", res.Entities.Locations)
		group("Brands", res.Entities.Brands)
		group("Other", res.Entities.Other)
		out = append(out, s)
	}

	if opts.GuardrailCheck && res.Guardrails.Applicable() {
		s := &Section{Title: "Guardrail Breaches"}
		if len(res.Guardrails.Breaches) == 0 {
			s.Blocks = append(s.Blocks, Block{
				Kind: BlockNotice,
				Text: fmt.Sprintf("No moderation result met the %.2f confidence limit.", res.Guardrails.Limit),
			})
		} else {
			var rows [][]string
			for _, b := range res.Guardrails.Breaches {
				rows = append(rows, []string{
					formatClock(b.Start),
					b.Category,
					fmt.Sprintf("%.2f", b.Confidence),
				})
			}
			s.Blocks = append(s.Blocks, Block{Kind: BlockTable, Header: []string{"Time", "Category", "Confidence"}, Rows: rows})
			if charts.Guardrails != nil {
				s.Blocks = append(s.Blocks, Block{Kind: BlockChart, Chart: charts.Guardrails})
			}
		}
		out = append(out, s)
	}
	return out
}

func orPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}
