package analysis

import (
	"sort"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"
)

// TalkTimeStats aggregates speaking duration per speaker and the silence
// across the whole call. TotalTalk is the union of all speech intervals, so
// overlapping speech is counted once.
type TalkTimeStats struct {
	BySpeaker map[string]float64
	TotalTalk float64
	NonTalk   float64
}

func talkTimeStats(conv *model.Conversation) TalkTimeStats {
	st := TalkTimeStats{BySpeaker: map[string]float64{}}

	intervals := make([]model.TimeRange, 0, len(conv.Segments))
	for _, seg := range conv.Segments {
		st.BySpeaker[seg.Speaker] += seg.DurationSeconds()
		intervals = append(intervals, model.TimeRange{Start: seg.Start, End: seg.End})
	}

	st.TotalTalk = unionDuration(intervals)
	if conv.Duration > st.TotalTalk {
		st.NonTalk = conv.Duration - st.TotalTalk
	}
	return st
}

// unionDuration sweeps the sorted intervals and sums the merged spans.
func unionDuration(intervals []model.TimeRange) float64 {
	if len(intervals) == 0 {
		return 0
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i].Start < intervals[j].Start })

	var total float64
	cur := intervals[0]
	for _, iv := range intervals[1:] {
		if iv.Start <= cur.End {
			if iv.End > cur.End {
				cur.End = iv.End
			}
			continue
		}
		total += cur.End - cur.Start
		cur = iv
	}
	total += cur.End - cur.Start
	return total
}
