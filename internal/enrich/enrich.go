// Package enrich adds sentiment classifications to conversations whose
// source did not compute them. Classification results never mutate the
// model; Annotate returns an overlay keyed by segment index that downstream
// consumers merge at read time.
package enrich

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"
)

// ErrThrottled marks a classifier failure caused by rate limiting. Only
// throttled calls are retried; any other failure degrades the segment
// immediately.
var ErrThrottled = errors.New("classifier throttled")

// Classification is one classifier verdict. Score is optional; backends
// that only produce a label leave it nil.
type Classification struct {
	Label model.SentimentLabel
	Score *float64
}

// Classifier labels a span of text. Implementations must be safe for
// concurrent use.
type Classifier interface {
	Classify(ctx context.Context, text, language string) (Classification, error)
}

// Overlay maps segment index to its classified sentiment. Segments that
// were skipped or failed are present with the unavailable label, so the
// overlay has one entry per eligible segment.
type Overlay map[int]model.Sentiment

// Options are the enrichment tunables.
type Options struct {
	// Workers bounds the number of concurrent classifier calls.
	Workers int

	// CallTimeout bounds each individual classifier call.
	CallTimeout time.Duration

	// MaxRetries bounds retries of throttled calls. Non-throttled
	// failures are never retried.
	MaxRetries int

	// MinTextLength skips classification of very short utterances,
	// which classify unreliably.
	MinTextLength int

	// Cache, when non-nil, is consulted before and updated after each
	// classifier call.
	Cache *Cache
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Workers:       4,
		CallTimeout:   15 * time.Second,
		MaxRetries:    3,
		MinTextLength: 16,
	}
}

// Annotate classifies every segment of the conversation that lacks native
// sentiment and returns the overlay. The conversation itself is never
// modified. Failures degrade the affected segment to the unavailable label
// rather than failing the whole run.
func Annotate(ctx context.Context, conv *model.Conversation, cls Classifier, opts Options) Overlay {
	if opts.Workers <= 0 {
		opts.Workers = DefaultOptions().Workers
	}

	type job struct {
		index int
		text  string
		lang  string
	}

	var jobs []job
	overlay := Overlay{}
	for i, seg := range conv.Segments {
		if seg.Sentiment.State() == model.Present {
			continue
		}
		text := strings.TrimSpace(seg.Text)
		if len(text) < opts.MinTextLength {
			overlay[i] = model.Sentiment{Label: model.SentimentUnavailable}
			continue
		}
		jobs = append(jobs, job{index: i, text: text, lang: seg.Language})
	}
	if len(jobs) == 0 {
		return overlay
	}

	results := make([]model.Sentiment, len(jobs))
	ch := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range ch {
				results[j] = classifyOne(ctx, cls, jobs[j].text, jobs[j].lang, opts)
			}
		}()
	}
	for j := range jobs {
		ch <- j
	}
	close(ch)
	wg.Wait()

	for j, jb := range jobs {
		overlay[jb.index] = results[j]
	}
	return overlay
}

// classifyOne runs the cache lookup, the bounded call with throttle
// retries, and the cache write-back for a single segment.
func classifyOne(ctx context.Context, cls Classifier, text, lang string, opts Options) model.Sentiment {
	if opts.Cache != nil {
		if c, ok, err := opts.Cache.Lookup(text, lang); err == nil && ok {
			return model.Sentiment{Label: c.Label, Score: c.Score}
		}
	}

	var (
		c   Classification
		err error
	)
	for attempt := 0; ; attempt++ {
		callCtx := ctx
		var cancel context.CancelFunc
		if opts.CallTimeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, opts.CallTimeout)
		}
		c, err = cls.Classify(callCtx, text, lang)
		if cancel != nil {
			cancel()
		}
		if err == nil {
			break
		}
		if !errors.Is(err, ErrThrottled) || attempt >= opts.MaxRetries {
			log.WithError(err).Debug("sentiment classification failed, marking unavailable")
			return model.Sentiment{Label: model.SentimentUnavailable}
		}
		select {
		case <-ctx.Done():
			return model.Sentiment{Label: model.SentimentUnavailable}
		case <-time.After(backoff(attempt)):
		}
	}

	if opts.Cache != nil {
		if err := opts.Cache.Store(text, lang, Classification{Label: c.Label, Score: c.Score}); err != nil {
			log.WithError(err).Debug("sentiment cache write failed")
		}
	}
	return model.Sentiment{Label: c.Label, Score: c.Score}
}

// backoff doubles per attempt starting at 250ms.
func backoff(attempt int) time.Duration {
	d := 250 * time.Millisecond
	for i := 0; i < attempt; i++ {
		d *= 2
	}
	return d
}
