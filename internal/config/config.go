// Package config loads the optional ts-to-word YAML configuration file and
// collects per-run rendering options into a single immutable value.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the ts-to-word configuration file.
const ConfigFileName = "ts-to-word.yaml"

// Config holds all ts-to-word configuration.
type Config struct {
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Cache      CacheConfig      `yaml:"cache"`
}

// AnalysisConfig holds tunables for the derived-metrics computations.
type AnalysisConfig struct {
	// InterruptionMinOverlap is the minimum overlap in seconds between two
	// segments from different speakers before the later one counts as an
	// interruption. Zero means any positive overlap counts.
	InterruptionMinOverlap float64 `yaml:"interruption_min_overlap"`

	// GuardrailLimit is the default confidence threshold for reporting
	// guardrail breaches. The comparison is inclusive.
	GuardrailLimit float64 `yaml:"guardrail_limit"`

	// ConfidenceBuckets is the number of equal-width histogram buckets over
	// the [0,1] word-confidence range.
	ConfidenceBuckets int `yaml:"confidence_buckets"`
}

// EnrichmentConfig holds tunables for the external sentiment service.
type EnrichmentConfig struct {
	// Backend selects the classifier implementation: "http" or "openai".
	Backend string `yaml:"backend"`

	// ServiceURL is the base URL of the HTTP sentiment service.
	ServiceURL string `yaml:"service_url"`

	// Workers is the size of the fixed worker pool issuing sentiment calls.
	Workers int `yaml:"workers"`

	// CallTimeoutSeconds bounds each individual sentiment call.
	CallTimeoutSeconds int `yaml:"call_timeout_seconds"`

	// MaxRetries bounds the retry attempts for throttling-class failures.
	MaxRetries int `yaml:"max_retries"`

	// MinTextLength is the shortest segment text worth classifying.
	MinTextLength int `yaml:"min_text_length"`

	// PositiveThreshold and NegativeThreshold turn raw classifier scores
	// into labels. Negative wins when both thresholds are met.
	PositiveThreshold float64 `yaml:"positive_threshold"`
	NegativeThreshold float64 `yaml:"negative_threshold"`
}

// CacheConfig holds configuration for the sentiment result cache.
type CacheConfig struct {
	// Path is the SQLite database file location. Empty disables caching
	// unless the --keep flag forces the default path.
	Path string `yaml:"path"`
}

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from the given path, falling back to defaults when the
// file does not exist. An empty path loads pure defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// Validate checks that config values are valid.
func Validate(cfg *Config) error {
	if cfg.Analysis.GuardrailLimit < 0 || cfg.Analysis.GuardrailLimit > 1 {
		return fmt.Errorf("%w: guardrail_limit must be between 0 and 1, got %f",
			ErrInvalidConfig, cfg.Analysis.GuardrailLimit)
	}

	if cfg.Analysis.InterruptionMinOverlap < 0 {
		return fmt.Errorf("%w: interruption_min_overlap must be non-negative, got %f",
			ErrInvalidConfig, cfg.Analysis.InterruptionMinOverlap)
	}

	if cfg.Analysis.ConfidenceBuckets <= 0 {
		return fmt.Errorf("%w: confidence_buckets must be positive, got %d",
			ErrInvalidConfig, cfg.Analysis.ConfidenceBuckets)
	}

	if cfg.Enrichment.Backend != "http" && cfg.Enrichment.Backend != "openai" {
		return fmt.Errorf("%w: enrichment backend must be http or openai, got %q",
			ErrInvalidConfig, cfg.Enrichment.Backend)
	}

	if cfg.Enrichment.Workers <= 0 {
		return fmt.Errorf("%w: enrichment workers must be positive, got %d",
			ErrInvalidConfig, cfg.Enrichment.Workers)
	}

	if cfg.Enrichment.CallTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: call_timeout_seconds must be positive, got %d",
			ErrInvalidConfig, cfg.Enrichment.CallTimeoutSeconds)
	}

	if cfg.Enrichment.MaxRetries < 0 {
		return fmt.Errorf("%w: max_retries must be non-negative, got %d",
			ErrInvalidConfig, cfg.Enrichment.MaxRetries)
	}

	if cfg.Enrichment.PositiveThreshold < 0 || cfg.Enrichment.PositiveThreshold > 1 {
		return fmt.Errorf("%w: positive_threshold must be between 0 and 1, got %f",
			ErrInvalidConfig, cfg.Enrichment.PositiveThreshold)
	}

	if cfg.Enrichment.NegativeThreshold < 0 || cfg.Enrichment.NegativeThreshold > 1 {
		return fmt.Errorf("%w: negative_threshold must be between 0 and 1, got %f",
			ErrInvalidConfig, cfg.Enrichment.NegativeThreshold)
	}

	return nil
}
