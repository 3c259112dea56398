package chart

import (
	"fmt"
	"strings"
)

// Mermaid renders the descriptor as a Mermaid definition for kinds Mermaid
// can express. Timeline and dial charts return "" and are rendered
// textually by the document layer. Output is deterministic for a given
// descriptor.
func Mermaid(c *Chart) string {
	if c == nil {
		return ""
	}
	switch c.Kind {
	case KindPie:
		return mermaidPie(c)
	case KindLine, KindScatter:
		return mermaidXY(c)
	default:
		return ""
	}
}

func mermaidPie(c *Chart) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("pie title %s\n", escapeMermaid(c.Title)))
	for _, s := range c.Slices {
		sb.WriteString(fmt.Sprintf("    %q : %.2f\n", escapeMermaid(s.Label), s.Value))
	}
	return sb.String()
}

// mermaidXY uses xychart-beta. Scatter charts are down-sampled to at most
// maxXYPoints evenly spaced samples so the chart stays readable.
const maxXYPoints = 100

func mermaidXY(c *Chart) string {
	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %q\n", escapeMermaid(c.Title)))
	sb.WriteString(fmt.Sprintf("    x-axis %q %g --> %g\n", escapeMermaid(c.XLabel), c.XMin, c.XMax))
	sb.WriteString(fmt.Sprintf("    y-axis %q %g --> %g\n", escapeMermaid(c.YLabel), c.YMin, c.YMax))
	for _, s := range c.Series {
		pts := s.Points
		if c.Kind == KindScatter && len(pts) > maxXYPoints {
			pts = downsample(pts, maxXYPoints)
		}
		vals := make([]string, len(pts))
		for i, p := range pts {
			vals[i] = fmt.Sprintf("%.3f", p.Y)
		}
		sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(vals, ", ")))
	}
	return sb.String()
}

func downsample(pts []Point, n int) []Point {
	out := make([]Point, n)
	step := float64(len(pts)-1) / float64(n-1)
	for i := 0; i < n; i++ {
		out[i] = pts[int(float64(i)*step)]
	}
	return out
}

func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, `"`, `'`)
	return strings.ReplaceAll(s, "\n", " ")
}
