package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Analysis.GuardrailLimit != 0.20 {
		t.Errorf("GuardrailLimit = %f, want 0.20", cfg.Analysis.GuardrailLimit)
	}
	if cfg.Analysis.ConfidenceBuckets != 10 {
		t.Errorf("ConfidenceBuckets = %d, want 10", cfg.Analysis.ConfidenceBuckets)
	}
	if cfg.Enrichment.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Enrichment.Workers)
	}
	if cfg.Enrichment.Backend != "http" {
		t.Errorf("Backend = %q, want http", cfg.Enrichment.Backend)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("Validate(DefaultConfig()) = %v, want nil", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Enrichment.Workers != DefaultConfig().Enrichment.Workers {
		t.Errorf("missing file should yield defaults")
	}
}

func TestLoadMergesWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	content := `
enrichment:
  workers: 8
  backend: openai
analysis:
  guardrail_limit: 0.35
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Enrichment.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Enrichment.Workers)
	}
	if cfg.Enrichment.Backend != "openai" {
		t.Errorf("Backend = %q, want openai", cfg.Enrichment.Backend)
	}
	if cfg.Analysis.GuardrailLimit != 0.35 {
		t.Errorf("GuardrailLimit = %f, want 0.35", cfg.Analysis.GuardrailLimit)
	}
	// Untouched fields keep defaults.
	if cfg.Enrichment.MinTextLength != 16 {
		t.Errorf("MinTextLength = %d, want default 16", cfg.Enrichment.MinTextLength)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"guardrail limit above one", func(c *Config) { c.Analysis.GuardrailLimit = 1.5 }},
		{"zero buckets", func(c *Config) { c.Analysis.ConfidenceBuckets = 0 }},
		{"unknown backend", func(c *Config) { c.Enrichment.Backend = "comprehend" }},
		{"zero workers", func(c *Config) { c.Enrichment.Workers = 0 }},
		{"zero timeout", func(c *Config) { c.Enrichment.CallTimeoutSeconds = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"transcribe with file", Options{Mode: ModeTranscribe, InputFile: "a.json", GuardrailLimit: 0.2}, false},
		{"transcribe with job", Options{Mode: ModeTranscribe, InputJob: "job-1", GuardrailLimit: 0.2}, false},
		{"transcribe with both", Options{Mode: ModeTranscribe, InputFile: "a.json", InputJob: "job-1"}, true},
		{"transcribe with neither", Options{Mode: ModeTranscribe}, true},
		{"bda with file", Options{Mode: ModeBDA, InputFile: "a.json", GuardrailLimit: 0.2}, false},
		{"bda with job", Options{Mode: ModeBDA, InputJob: "job-1"}, true},
		{"limit out of range", Options{Mode: ModeBDA, InputFile: "a.json", GuardrailLimit: 1.01}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveOutputFile(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"explicit", Options{OutputFile: "out.md", InputFile: "a.json"}, "out.md"},
		{"derived from file", Options{InputFile: "call.json"}, "call.md"},
		{"derived from job", Options{InputJob: "job-42"}, "job-42.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.ResolveOutputFile(); got != tt.want {
				t.Errorf("ResolveOutputFile() = %q, want %q", got, tt.want)
			}
		})
	}
}
