// Package analysis computes derived statistics over the canonical
// conversation model. Every computation is a pure function of the immutable
// model; Compute fans them out in parallel and joins before returning.
package analysis

import (
	"sync"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"
)

// Config holds the analysis tunables.
type Config struct {
	// InterruptionMinOverlap is the minimum overlap in seconds before a
	// later-starting speaker counts as interrupting. Zero means any
	// positive overlap counts.
	InterruptionMinOverlap float64

	// GuardrailLimit is the inclusive confidence threshold for reporting
	// guardrail breaches.
	GuardrailLimit float64

	// ConfidenceBuckets is the histogram bucket count over [0,1].
	ConfidenceBuckets int
}

// DefaultConfig returns the documented default tunables.
func DefaultConfig() Config {
	return Config{
		InterruptionMinOverlap: 0,
		GuardrailLimit:         0.20,
		ConfidenceBuckets:      10,
	}
}

// Results is the immutable set of all derived metrics for one conversation.
// It is passed by reference to the chart generator and section renderer.
type Results struct {
	Confidence    ConfidenceDistribution
	Quarters      QuarterSentiments
	TalkTime      TalkTimeStats
	Interruptions InterruptionStats
	Guardrails    GuardrailReport
	Entities      EntityGroups
	Volume        VolumeSeries
}

// Compute runs every metric function against the model and joins the
// results. The functions are pure and write disjoint fields, so the fan-out
// needs no locking.
func Compute(conv *model.Conversation, cfg Config) *Results {
	if cfg.ConfidenceBuckets <= 0 {
		cfg.ConfidenceBuckets = DefaultConfig().ConfidenceBuckets
	}

	res := &Results{}

	var wg sync.WaitGroup
	run := func(f func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}

	run(func() { res.Confidence = confidenceDistribution(conv, cfg.ConfidenceBuckets) })
	run(func() { res.Quarters = quarterSentiments(conv) })
	run(func() { res.TalkTime = talkTimeStats(conv) })
	run(func() { res.Interruptions = interruptionStats(conv, cfg.InterruptionMinOverlap) })
	run(func() { res.Guardrails = guardrailReport(conv, cfg.GuardrailLimit) })
	run(func() { res.Entities = entityGroups(conv) })
	run(func() { res.Volume = volumeSeries(conv) })

	wg.Wait()
	return res
}
