package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Mode identifies which front end produced the input document family.
type Mode string

const (
	// ModeTranscribe covers standard and call-analytics Transcribe output.
	ModeTranscribe Mode = "transcribe"
	// ModeBDA covers generative audio-understanding (BDA) output, with or
	// without a custom blueprint result.
	ModeBDA Mode = "bda"
)

// Options collects every per-run switch into one immutable value.
// It is constructed once from CLI flags and config, then passed by value to
// each pipeline stage; no component reads process-wide state.
type Options struct {
	Mode Mode

	InputFile  string
	InputJob   string
	OutputFile string
	CustomFile string

	Sentiment  bool
	Confidence bool

	GuardrailCheck bool
	GuardrailLimit float64

	// Keep enables the on-disk sentiment result cache across runs.
	Keep bool
}

// Validate checks the option combination against the CLI contract.
func (o Options) Validate() error {
	switch o.Mode {
	case ModeTranscribe:
		if (o.InputFile == "") == (o.InputJob == "") {
			return fmt.Errorf("%w: exactly one of --inputFile or --inputJob is required", ErrInvalidConfig)
		}
	case ModeBDA:
		if o.InputFile == "" {
			return fmt.Errorf("%w: --inputFile is required", ErrInvalidConfig)
		}
		if o.InputJob != "" {
			return fmt.Errorf("%w: --inputJob is not supported for BDA input", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, o.Mode)
	}

	if o.GuardrailLimit < 0 || o.GuardrailLimit > 1 {
		return fmt.Errorf("%w: --guardrailLimit must be between 0.00 and 1.00, got %.2f", ErrInvalidConfig, o.GuardrailLimit)
	}

	return nil
}

// ResolveOutputFile returns the explicit output path, or derives one from the
// input file or job name with the document extension.
func (o Options) ResolveOutputFile() string {
	if o.OutputFile != "" {
		return o.OutputFile
	}
	if o.InputFile != "" {
		base := strings.TrimSuffix(o.InputFile, filepath.Ext(o.InputFile))
		return base + ".md"
	}
	return o.InputJob + ".md"
}
