package config

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when the
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			InterruptionMinOverlap: 0,
			GuardrailLimit:         0.20,
			ConfidenceBuckets:      10,
		},
		Enrichment: EnrichmentConfig{
			Backend:            "http",
			Workers:            4,
			CallTimeoutSeconds: 15,
			MaxRetries:         3,
			MinTextLength:      16,
			PositiveThreshold:  0.6,
			NegativeThreshold:  0.4,
		},
		Cache: CacheConfig{
			Path: "",
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Analysis = mergeAnalysisConfig(loaded.Analysis, defaults.Analysis)
	result.Enrichment = mergeEnrichmentConfig(loaded.Enrichment, defaults.Enrichment)
	result.Cache = mergeCacheConfig(loaded.Cache, defaults.Cache)

	return result
}

func mergeAnalysisConfig(loaded, defaults AnalysisConfig) AnalysisConfig {
	result := defaults

	if loaded.InterruptionMinOverlap > 0 {
		result.InterruptionMinOverlap = loaded.InterruptionMinOverlap
	}
	if loaded.GuardrailLimit > 0 {
		result.GuardrailLimit = loaded.GuardrailLimit
	}
	if loaded.ConfidenceBuckets > 0 {
		result.ConfidenceBuckets = loaded.ConfidenceBuckets
	}

	return result
}

func mergeEnrichmentConfig(loaded, defaults EnrichmentConfig) EnrichmentConfig {
	result := defaults

	if loaded.Backend != "" {
		result.Backend = loaded.Backend
	}
	if loaded.ServiceURL != "" {
		result.ServiceURL = loaded.ServiceURL
	}
	if loaded.Workers > 0 {
		result.Workers = loaded.Workers
	}
	if loaded.CallTimeoutSeconds > 0 {
		result.CallTimeoutSeconds = loaded.CallTimeoutSeconds
	}
	if loaded.MaxRetries > 0 {
		result.MaxRetries = loaded.MaxRetries
	}
	if loaded.MinTextLength > 0 {
		result.MinTextLength = loaded.MinTextLength
	}
	if loaded.PositiveThreshold > 0 {
		result.PositiveThreshold = loaded.PositiveThreshold
	}
	if loaded.NegativeThreshold > 0 {
		result.NegativeThreshold = loaded.NegativeThreshold
	}

	return result
}

func mergeCacheConfig(loaded, defaults CacheConfig) CacheConfig {
	result := defaults

	if loaded.Path != "" {
		result.Path = loaded.Path
	}

	return result
}
