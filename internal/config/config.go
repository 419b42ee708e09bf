// Package config loads the YAML settings of the harmonics command.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/cwbudde/algo-harmonics/dsp/core"
	"github.com/cwbudde/algo-harmonics/explorer"
	"github.com/cwbudde/algo-harmonics/internal/query"
)

// Config is the YAML configuration of the harmonics tool. Keys missing from
// the file keep their Default values when loaded.
type Config struct {
	SampleRate    float64 `yaml:"sample_rate"`
	MaxSamples    int     `yaml:"max_samples"`
	HarmonicLimit int     `yaml:"harmonic_limit"`
	Defaults      struct {
		FundamentalHz float64 `yaml:"fundamental_hz"`
		Cycles        float64 `yaml:"cycles"`
	} `yaml:"defaults"`
	Server struct {
		Addr         string        `yaml:"addr"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"server"`
	Plot Plot `yaml:"plot"`
	Log  struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Plot is the exported image size in inches.
type Plot struct {
	WidthIn  float64 `yaml:"width_in"`
	HeightIn float64 `yaml:"height_in"`
}

// Default returns the built-in settings.
func Default() Config {
	var c Config
	c.SampleRate = core.DefaultSampleRate
	c.MaxSamples = core.DefaultMaxSamples
	c.HarmonicLimit = query.DefaultLimit
	d := explorer.DefaultDefaults()
	c.Defaults.FundamentalHz = d.FundamentalHz
	c.Defaults.Cycles = d.Cycles
	c.Server.Addr = ":8080"
	c.Server.ReadTimeout = 10 * time.Second
	c.Server.WriteTimeout = 30 * time.Second
	c.Plot = Plot{WidthIn: 10, HeightIn: 5}
	c.Log.Level = "info"
	return c
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(contents, &c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate reports every setting outside its allowed range, joined into
// one error.
func (c Config) Validate() error {
	var errs []error
	if !(c.SampleRate > 0) {
		errs = append(errs, fmt.Errorf("sample_rate must be > 0: %v", c.SampleRate))
	}
	if c.MaxSamples <= 0 {
		errs = append(errs, fmt.Errorf("max_samples must be > 0: %d", c.MaxSamples))
	}
	if c.HarmonicLimit <= 0 {
		errs = append(errs, fmt.Errorf("harmonic_limit must be > 0: %d", c.HarmonicLimit))
	}
	if c.Defaults.FundamentalHz == 0 || !core.IsFinite(c.Defaults.FundamentalHz) {
		errs = append(errs, fmt.Errorf("defaults.fundamental_hz must be non-zero: %v", c.Defaults.FundamentalHz))
	}
	if !(c.Defaults.Cycles > 0) {
		errs = append(errs, fmt.Errorf("defaults.cycles must be > 0: %v", c.Defaults.Cycles))
	}
	if !(c.Plot.WidthIn > 0) || !(c.Plot.HeightIn > 0) {
		errs = append(errs, fmt.Errorf("plot size must be > 0: %vx%v", c.Plot.WidthIn, c.Plot.HeightIn))
	}
	return errors.Join(errs...)
}

// ProcessorOptions returns the synthesis options described by c.
func (c Config) ProcessorOptions() []core.ProcessorOption {
	return []core.ProcessorOption{
		core.WithSampleRate(c.SampleRate),
		core.WithMaxSamples(c.MaxSamples),
	}
}

// ExplorerDefaults returns the fallback synthesis parameters.
func (c Config) ExplorerDefaults() explorer.Defaults {
	return explorer.Defaults{FundamentalHz: c.Defaults.FundamentalHz, Cycles: c.Defaults.Cycles}
}
