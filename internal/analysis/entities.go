package analysis

import (
	"sort"
	"strings"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"
)

// EntityGroups buckets detected entities by tag, deduplicated by their
// case-folded text and sorted lexically. The first-seen surface form wins.
type EntityGroups struct {
	Locations []string
	Brands    []string
	Other     []string
}

// Applicable reports whether any group has entries.
func (g EntityGroups) Applicable() bool {
	return len(g.Locations)+len(g.Brands)+len(g.Other) > 0
}

func entityGroups(conv *model.Conversation) EntityGroups {
	var g EntityGroups

	mentions, ok := conv.Entities.Get()
	if !ok {
		return g
	}

	seen := map[string]bool{}
	for _, m := range mentions {
		text := strings.TrimSpace(m.Text)
		if text == "" {
			continue
		}
		key := strings.ToLower(text)
		if seen[key] {
			continue
		}
		seen[key] = true

		switch entityBucket(m.Tags) {
		case "location":
			g.Locations = append(g.Locations, text)
		case "brand":
			g.Brands = append(g.Brands, text)
		default:
			g.Other = append(g.Other, text)
		}
	}

	sortFold(g.Locations)
	sortFold(g.Brands)
	sortFold(g.Other)
	return g
}

func entityBucket(tags []string) string {
	for _, t := range tags {
		switch {
		case strings.Contains(strings.ToLower(t), "location"):
			return "location"
		case strings.Contains(strings.ToLower(t), "brand"):
			return "brand"
		}
	}
	return "other"
}

func sortFold(s []string) {
	sort.Slice(s, func(i, j int) bool {
		return strings.ToLower(s[i]) < strings.ToLower(s[j])
	})
}
