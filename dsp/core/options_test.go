package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(96000), WithMaxSamples(2048))
	if cfg.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", cfg.SampleRate)
	}
	if cfg.MaxSamples != 2048 {
		t.Fatalf("max samples = %d, want 2048", cfg.MaxSamples)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithMaxSamples(-1), nil)
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestDefaultSampleRate(t *testing.T) {
	if got := DefaultProcessorConfig().SampleRate; got != 50000 {
		t.Fatalf("default sample rate = %v, want 50000", got)
	}
}
