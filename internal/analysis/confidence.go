package analysis

import "github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"

// ConfidencePoint is a single word confidence plotted against time.
type ConfidencePoint struct {
	Time  float64
	Value float64
}

// ConfidenceDistribution is the histogram and scatter of per-word
// recognition confidence. Words with no confidence value are excluded from
// every aggregate, so Count may be lower than the word total.
type ConfidenceDistribution struct {
	Buckets []int
	Mean    float64
	Count   int
	Scatter []ConfidencePoint
}

// Applicable reports whether any word carried a confidence value.
func (d ConfidenceDistribution) Applicable() bool { return d.Count > 0 }

func confidenceDistribution(conv *model.Conversation, buckets int) ConfidenceDistribution {
	d := ConfidenceDistribution{Buckets: make([]int, buckets)}

	var sum float64
	for _, seg := range conv.Segments {
		for _, w := range seg.Words {
			if w.Confidence == nil {
				continue
			}
			c := *w.Confidence
			idx := int(c * float64(buckets))
			if idx >= buckets {
				idx = buckets - 1
			}
			if idx < 0 {
				idx = 0
			}
			d.Buckets[idx]++
			d.Count++
			sum += c
			d.Scatter = append(d.Scatter, ConfidencePoint{Time: w.Start, Value: c})
		}
	}
	if d.Count > 0 {
		d.Mean = sum / float64(d.Count)
	}
	return d
}
