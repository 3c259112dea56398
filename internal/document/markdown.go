package document

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/chart"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/render"
)

// Markdown writes the document as GitHub-flavored markdown. Charts with a
// Mermaid form become fenced mermaid blocks; dials and timelines are
// rendered textually.
type Markdown struct {
	w *bufio.Writer
}

// NewMarkdown wraps the writer. Call Close (normally via Assemble) to
// flush.
func NewMarkdown(w io.Writer) *Markdown {
	return &Markdown{w: bufio.NewWriter(w)}
}

func (m *Markdown) BeginSection(title string) error {
	_, err := fmt.Fprintf(m.w, "## %s\n\n", title)
	return err
}

func (m *Markdown) Paragraph(text string) error {
	_, err := fmt.Fprintf(m.w, "%s\n\n", text)
	return err
}

func (m *Markdown) Notice(text string) error {
	_, err := fmt.Fprintf(m.w, "> %s\n\n", text)
	return err
}

func (m *Markdown) Table(header []string, rows [][]string) error {
	if _, err := fmt.Fprintf(m.w, "| %s |\n", strings.Join(header, " | ")); err != nil {
		return err
	}
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	if _, err := fmt.Fprintf(m.w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = escapeCell(c)
		}
		if _, err := fmt.Fprintf(m.w, "| %s |\n", strings.Join(cells, " | ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(m.w)
	return err
}

func (m *Markdown) Chart(c *chart.Chart) error {
	if def := chart.Mermaid(c); def != "" {
		_, err := fmt.Fprintf(m.w, "```mermaid\n%s```\n\n", def)
		return err
	}
	switch c.Kind {
	case chart.KindDial:
		return m.dial(c)
	case chart.KindTimeline:
		return m.timeline(c)
	default:
		return nil
	}
}

// dial renders the 1..5 gauge as filled and empty markers.
func (m *Markdown) dial(c *chart.Chart) error {
	filled := int(c.Value)
	total := int(c.DialMax)
	gauge := strings.Repeat("★", filled) + strings.Repeat("☆", total-filled)
	_, err := fmt.Fprintf(m.w, "**%s**: %s (%d/%d)\n\n", c.Title, gauge, filled, total)
	return err
}

// timeline renders the band list as a table, one row per span.
func (m *Markdown) timeline(c *chart.Chart) error {
	rows := make([][]string, 0, len(c.Bands))
	for _, b := range c.Bands {
		rows = append(rows, []string{
			b.Row,
			fmt.Sprintf("%.1fs", b.Start),
			fmt.Sprintf("%.1fs", b.End),
			b.Label,
		})
	}
	return m.Table([]string{"Speaker", "From", "To", "Note"}, rows)
}

func (m *Markdown) Transcript(turn *render.Turn) error {
	for _, marker := range turn.Markers {
		if _, err := fmt.Fprintf(m.w, "> **%s**\n>\n", marker); err != nil {
			return err
		}
	}
	head := fmt.Sprintf("**%s** `%s`", turn.Speaker, turn.Timestamp)
	if turn.Sentiment != "" {
		head += fmt.Sprintf(" _[%s]_", strings.ToLower(string(turn.Sentiment)))
	}

	var body strings.Builder
	for i, span := range turn.Spans {
		if i > 0 {
			body.WriteString(" ")
		}
		body.WriteString(formatSpan(span))
	}
	_, err := fmt.Fprintf(m.w, "%s: %s\n\n", head, body.String())
	return err
}

// formatSpan maps emphasis grades onto markdown styling. Lower confidence
// gets progressively heavier styling so it stands out in review.
func formatSpan(s render.Span) string {
	text := strings.TrimSpace(s.Text)
	if text == "" {
		return ""
	}
	if s.Issue {
		return "**" + text + "**"
	}
	switch s.Emphasis {
	case render.EmphasisLow:
		return "*" + text + "*"
	case render.EmphasisPoor:
		return "***" + text + "***"
	case render.EmphasisRedacted:
		return "**`" + text + "`**"
	default:
		return text
	}
}

func (m *Markdown) Close() error {
	return m.w.Flush()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
