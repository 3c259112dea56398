package analysis

import "github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"

// QuarterSentiments is the per-speaker sentiment trend across the four
// equal-duration windows of the call, on the -5..+5 scale.
type QuarterSentiments struct {
	Scores []model.QuarterScore
}

// Applicable reports whether any quarter carries data.
func (q QuarterSentiments) Applicable() bool {
	for _, s := range q.Scores {
		if s.HasData {
			return true
		}
	}
	return false
}

// labelScore maps a categorical sentiment label onto the numeric scale used
// by per-quarter scores. Segments without a usable label contribute nothing.
func labelScore(s model.Sentiment) (float64, bool) {
	if s.Score != nil {
		return *s.Score, true
	}
	switch s.Label {
	case model.SentimentPositive:
		return 3, true
	case model.SentimentNegative:
		return -3, true
	case model.SentimentNeutral, model.SentimentMixed:
		return 0, true
	default:
		return 0, false
	}
}

// quarterSentiments prefers the source's native per-quarter scores when the
// source computed them. Otherwise it derives scores by averaging segment
// sentiment over four equal windows, assigning each segment to the window
// holding its midpoint. A window with no scored segments has HasData false.
func quarterSentiments(conv *model.Conversation) QuarterSentiments {
	if native, ok := conv.NativeSentiment.Get(); ok && len(native.Quarters) > 0 {
		scores := make([]model.QuarterScore, len(native.Quarters))
		copy(scores, native.Quarters)
		return QuarterSentiments{Scores: scores}
	}
	if conv.Duration <= 0 {
		return QuarterSentiments{}
	}

	window := conv.Duration / 4
	type acc struct {
		sum float64
		n   int
	}
	cells := map[string]*acc{}
	for _, seg := range conv.Segments {
		sent, ok := seg.Sentiment.Get()
		if !ok {
			continue
		}
		score, ok := labelScore(sent)
		if !ok {
			continue
		}
		q := int(seg.Midpoint()/window) + 1
		if q > 4 {
			q = 4
		}
		if q < 1 {
			q = 1
		}
		key := speakerQuarterKey(seg.Speaker, q)
		if cells[key] == nil {
			cells[key] = &acc{}
		}
		cells[key].sum += score
		cells[key].n++
	}

	var scores []model.QuarterScore
	for _, sp := range conv.Speakers {
		for q := 1; q <= 4; q++ {
			s := model.QuarterScore{Speaker: sp.Label, Quarter: q}
			if a := cells[speakerQuarterKey(sp.Label, q)]; a != nil {
				s.Score = a.sum / float64(a.n)
				s.HasData = true
			}
			scores = append(scores, s)
		}
	}
	return QuarterSentiments{Scores: scores}
}

func speakerQuarterKey(speaker string, q int) string {
	return speaker + "#" + string(rune('0'+q))
}
