package analysis

import "github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"

// VolumePoint is one loudness sample plotted against call time.
type VolumePoint struct {
	Time  float64
	Value float64
}

// VolumeSeries is the per-speaker loudness timeline. Sources that do not
// measure loudness yield an empty series.
type VolumeSeries struct {
	BySpeaker map[string][]VolumePoint
}

// Applicable reports whether any speaker has loudness samples.
func (v VolumeSeries) Applicable() bool { return len(v.BySpeaker) > 0 }

// volumeSeries expands each turn's loudness scores into timed points. The
// source samples loudness once per second from the turn start.
func volumeSeries(conv *model.Conversation) VolumeSeries {
	v := VolumeSeries{}
	for _, seg := range conv.Segments {
		scores, ok := seg.Loudness.Get()
		if !ok || len(scores) == 0 {
			continue
		}
		if v.BySpeaker == nil {
			v.BySpeaker = map[string][]VolumePoint{}
		}
		for i, s := range scores {
			v.BySpeaker[seg.Speaker] = append(v.BySpeaker[seg.Speaker], VolumePoint{
				Time:  seg.Start + float64(i),
				Value: s,
			})
		}
	}
	return v
}
