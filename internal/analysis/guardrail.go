package analysis

import (
	"sort"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"
)

// GuardrailReport is the set of moderation flags at or above the configured
// confidence limit. The model retains every flag; the report is the
// filtered, render-ready view.
type GuardrailReport struct {
	Limit    float64
	Breaches []model.GuardrailFlag
	Total    int
}

// Applicable reports whether the source produced moderation data at all.
func (r GuardrailReport) Applicable() bool { return r.Total > 0 || len(r.Breaches) > 0 }

// guardrailReport keeps flags whose confidence meets the limit inclusively.
// A flag at exactly the limit is a breach.
func guardrailReport(conv *model.Conversation, limit float64) GuardrailReport {
	r := GuardrailReport{Limit: limit}

	flags, ok := conv.Guardrails.Get()
	if !ok {
		return r
	}
	r.Total = len(flags)
	for _, f := range flags {
		if f.Confidence >= limit {
			r.Breaches = append(r.Breaches, f)
		}
	}
	sort.SliceStable(r.Breaches, func(i, j int) bool {
		if r.Breaches[i].Start != r.Breaches[j].Start {
			return r.Breaches[i].Start < r.Breaches[j].Start
		}
		return r.Breaches[i].Category < r.Breaches[j].Category
	})
	return r
}
