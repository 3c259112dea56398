package analysis

import (
	"sort"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"
)

// InterruptionStats counts overlap-based interruptions attributed to the
// later-starting speaker, plus any interruptions the source itself reported.
type InterruptionStats struct {
	CountBySpeaker map[string]int
	Events         []model.Interruption
}

// Total returns the interruption count across all speakers.
func (s InterruptionStats) Total() int {
	var n int
	for _, c := range s.CountBySpeaker {
		n += c
	}
	return n
}

// interruptionStats derives interruptions from segment overlap. A segment
// interrupts when it starts before the previous different-speaker segment
// ends, with overlap strictly greater than minOverlap. When the source
// already reported interruptions those are used verbatim instead.
func interruptionStats(conv *model.Conversation, minOverlap float64) InterruptionStats {
	st := InterruptionStats{CountBySpeaker: map[string]int{}}

	if native, ok := conv.NativeInterruptions.Get(); ok {
		st.Events = append(st.Events, native...)
		for _, ev := range native {
			st.CountBySpeaker[ev.Interrupter]++
		}
		return st
	}

	segs := make([]model.Segment, len(conv.Segments))
	copy(segs, conv.Segments)
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].Start < segs[j].Start })

	for i := 1; i < len(segs); i++ {
		prev, cur := segs[i-1], segs[i]
		if prev.Speaker == cur.Speaker {
			continue
		}
		overlap := prev.End - cur.Start
		if overlap <= minOverlap {
			continue
		}
		st.CountBySpeaker[cur.Speaker]++
		st.Events = append(st.Events, model.Interruption{
			Interrupter: cur.Speaker,
			Start:       cur.Start,
			End:         minFloat(prev.End, cur.End),
		})
	}
	return st
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
