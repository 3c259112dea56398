package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/analysis"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/config"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/document"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/enrich"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/jobs"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/render"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/schema"
)

// cacheDir is where the sentiment cache lives when --keep is set without a
// configured path.
const cacheDir = ".ts-to-word"

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.ConfigFileName
	}
	return config.Load(path)
}

// runPipeline drives one conversion end to end: load, detect, normalize,
// analyze, enrich, chart, compose, assemble. The document is built fully in
// memory and written in one step, so a fatal error never leaves a partial
// artifact on disk.
func runPipeline(ctx context.Context, cfg *config.Config, opts config.Options, out io.Writer) error {
	runID := uuid.NewString()
	logger := log.WithField("run", runID)

	raw, status, err := loadInput(ctx, opts)
	if err != nil {
		return err
	}

	var custom []byte
	if opts.CustomFile != "" {
		custom, err = os.ReadFile(opts.CustomFile)
		if err != nil {
			return fmt.Errorf("reading custom blueprint file: %w", err)
		}
	}

	doc, err := schema.Parse(raw, detectHint(opts.Mode), custom)
	if err != nil {
		return err
	}
	if opts.Mode == config.ModeTranscribe && (doc.Variant == schema.VariantBDAAudio || doc.Variant == schema.VariantBDABlueprint) {
		return &schema.SchemaError{Reason: "input is BDA output, use the bda command"}
	}
	logger = logger.WithField("variant", doc.Variant.String())

	conv, err := model.Build(doc)
	if err != nil {
		return err
	}
	applyJobStatus(conv, status)
	logger.WithFields(log.Fields{
		"segments": len(conv.Segments),
		"speakers": len(conv.Speakers),
		"duration": conv.Duration,
	}).Debug("canonical model built")

	res := analysis.Compute(conv, analysis.Config{
		InterruptionMinOverlap: cfg.Analysis.InterruptionMinOverlap,
		GuardrailLimit:         guardrailLimit(cfg, opts),
		ConfidenceBuckets:      cfg.Analysis.ConfidenceBuckets,
	})

	overlay, err := annotateSentiment(ctx, cfg, opts, conv, logger)
	if err != nil {
		return err
	}

	sections := render.Compose(conv, res, render.BuildCharts(conv, res), overlay, render.Options{
		ShowConfidence: opts.Confidence,
		ShowSentiment:  opts.Sentiment,
		GuardrailCheck: opts.GuardrailCheck,
		RunID:          runID,
		GeneratedAt:    time.Now(),
	})

	var buf bytes.Buffer
	if err := document.Assemble(document.NewMarkdown(&buf), sections); err != nil {
		return err
	}

	outputFile := opts.ResolveOutputFile()
	if err := os.WriteFile(outputFile, buf.Bytes(), 0o644); err != nil {
		return &document.RenderError{Section: "output", Err: err}
	}

	logger.WithField("output", outputFile).Debug("document written")
	fmt.Fprintf(out, "Wrote %s (%d sections)\n", outputFile, len(sections))
	return nil
}

// loadInput reads raw result bytes from the input file or fetches them from
// the job service. A job whose status lookup yields nothing still renders,
// with the summary degraded to placeholders.
func loadInput(ctx context.Context, opts config.Options) ([]byte, *jobs.Status, error) {
	if opts.InputFile != "" {
		raw, err := os.ReadFile(opts.InputFile)
		if err != nil {
			return nil, nil, fmt.Errorf("reading input file: %w", err)
		}
		return raw, nil, nil
	}

	base := os.Getenv("TS_JOB_SERVICE_URL")
	if base == "" {
		return nil, nil, fmt.Errorf("--inputJob requires TS_JOB_SERVICE_URL to be set")
	}
	raw, status, err := jobs.NewHTTPClient(base).Fetch(ctx, opts.InputJob)
	if err != nil {
		return nil, nil, err
	}
	return raw, status, nil
}

func detectHint(mode config.Mode) schema.Variant {
	if mode == config.ModeBDA {
		return schema.VariantBDAAudio
	}
	return schema.VariantUnknown
}

// applyJobStatus fills call metadata from the job service before the model
// becomes read-only for the rest of the pipeline. Document-embedded
// metadata wins over the service's.
func applyJobStatus(conv *model.Conversation, status *jobs.Status) {
	if status == nil {
		return
	}
	if _, ok := conv.Metadata.Get(); ok {
		return
	}
	conv.Metadata = model.Of(model.CallMetadata{
		JobName:        status.JobName,
		AccountID:      status.AccountID,
		Status:         status.State,
		LanguageCode:   status.LanguageCode,
		MediaFile:      status.MediaFile,
		MediaFormat:    status.MediaFormat,
		SampleRateKHz:  status.SampleRateKHz,
		VocabularyName: status.VocabularyName,
		Redaction:      status.Redaction,
	})
}

// guardrailLimit prefers the CLI flag in BDA mode; transcribe mode has no
// flag and uses the configured value.
func guardrailLimit(cfg *config.Config, opts config.Options) float64 {
	if opts.Mode == config.ModeBDA {
		return opts.GuardrailLimit
	}
	return cfg.Analysis.GuardrailLimit
}

// annotateSentiment runs the enrichment worker pool when the sentiment flag
// is on and the source has no native sentiment. Classifier failures degrade
// individual segments; only setup problems are fatal.
func annotateSentiment(ctx context.Context, cfg *config.Config, opts config.Options, conv *model.Conversation, logger *log.Entry) (enrich.Overlay, error) {
	if !opts.Sentiment || conv.Variant == schema.VariantCallAnalytics {
		return nil, nil
	}

	cls, err := buildClassifier(cfg)
	if err != nil {
		return nil, err
	}

	enrichOpts := enrich.Options{
		Workers:       cfg.Enrichment.Workers,
		CallTimeout:   time.Duration(cfg.Enrichment.CallTimeoutSeconds) * time.Second,
		MaxRetries:    cfg.Enrichment.MaxRetries,
		MinTextLength: cfg.Enrichment.MinTextLength,
	}

	if opts.Keep {
		path := cfg.Cache.Path
		if path == "" {
			if err := os.MkdirAll(cacheDir, 0o755); err != nil {
				return nil, fmt.Errorf("creating cache directory: %w", err)
			}
			path = filepath.Join(cacheDir, "sentiment.db")
		}
		cache, err := enrich.OpenCache(path)
		if err != nil {
			return nil, err
		}
		defer cache.Close()
		enrichOpts.Cache = cache
	}

	overlay := enrich.Annotate(ctx, conv, cls, enrichOpts)
	logger.WithField("classified", len(overlay)).Debug("sentiment enrichment finished")
	return overlay, nil
}

func buildClassifier(cfg *config.Config) (enrich.Classifier, error) {
	switch cfg.Enrichment.Backend {
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, errors.New("sentiment backend openai requires OPENAI_API_KEY")
		}
		return enrich.NewOpenAIClassifier(key, ""), nil
	default:
		url := cfg.Enrichment.ServiceURL
		if url == "" {
			url = os.Getenv("TS_SENTIMENT_URL")
		}
		if url == "" {
			return nil, errors.New("sentiment backend http requires enrichment.service_url or TS_SENTIMENT_URL")
		}
		return enrich.NewHTTPClassifier(url, cfg.Enrichment.PositiveThreshold, cfg.Enrichment.NegativeThreshold), nil
	}
}
