package core

const (
	// DefaultSampleRate is the synthesis rate in samples per second.
	DefaultSampleRate = 50000
	// DefaultMaxSamples caps the length of a synthesized series.
	DefaultMaxSamples = 5_000_000
)

// ProcessorConfig defines common synthesis settings.
type ProcessorConfig struct {
	SampleRate float64
	MaxSamples int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the settings used by the explorer UI.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: DefaultSampleRate,
		MaxSamples: DefaultMaxSamples,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithMaxSamples sets the upper bound on the number of samples a single
// synthesis call may allocate.
func WithMaxSamples(maxSamples int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if maxSamples > 0 {
			cfg.MaxSamples = maxSamples
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
