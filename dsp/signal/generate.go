// Package signal synthesizes periodic signals from a harmonic model.
package signal

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-harmonics/dsp/core"
	"github.com/cwbudde/algo-harmonics/dsp/harmonic"
)

// Field names reported in [ParamError].
const (
	FieldFundamental = "fundamental frequency"
	FieldCycles      = "cycle count"
)

// Params are the user-controlled synthesis settings.
type Params struct {
	FundamentalHz float64
	Cycles        float64
}

// Period returns the duration of one fundamental cycle in seconds.
func (p Params) Period() float64 {
	return 1 / math.Abs(p.FundamentalHz)
}

// Signal is a sampled waveform. Time and Amplitude are index aligned.
type Signal struct {
	Time      []float64
	Amplitude []float64
}

// Len returns the number of samples.
func (s Signal) Len() int {
	return len(s.Amplitude)
}

// Duration returns the time of the last sample, or 0 for an empty signal.
func (s Signal) Duration() float64 {
	if len(s.Time) == 0 {
		return 0
	}
	return s.Time[len(s.Time)-1]
}

// Generator synthesizes signals at a fixed sample rate.
// It holds no mutable state and is safe for concurrent use.
type Generator struct {
	cfg core.ProcessorConfig
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{cfg: core.ApplyProcessorOptions(opts...)}
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Validate checks p against the synthesis preconditions and the sample
// ceiling. It returns a *ParamError for the first violated constraint.
func (g *Generator) Validate(p Params) error {
	_, err := g.SampleCount(p)
	return err
}

// SampleCount returns the number of sample intervals covering p.Cycles
// periods. The synthesized series holds SampleCount+1 points.
func (g *Generator) SampleCount(p Params) (int, error) {
	if p.FundamentalHz == 0 || !core.IsFinite(p.FundamentalHz) {
		return 0, &ParamError{Kind: InvalidFrequency, Field: FieldFundamental, Value: p.FundamentalHz}
	}
	if !(p.Cycles > 0) || math.IsInf(p.Cycles, 1) {
		return 0, &ParamError{Kind: InvalidCycleCount, Field: FieldCycles, Value: p.Cycles}
	}

	n := math.Round(g.cfg.SampleRate * p.Cycles / math.Abs(p.FundamentalHz))
	if n+1 > float64(g.cfg.MaxSamples) {
		return 0, &ParamError{Kind: UnboundedSampleCount, Field: "sample count", Value: n + 1, Limit: g.cfg.MaxSamples}
	}
	return int(n), nil
}

// Synthesize samples the superposition of all components in set over
// p.Cycles periods of the fundamental, including the closing boundary sample.
// Identical inputs always yield identical output.
func (g *Generator) Synthesize(p Params, set *harmonic.Set) (Signal, error) {
	n, err := g.SampleCount(p)
	if err != nil {
		return Signal{}, err
	}

	length := n + 1
	sig := Signal{
		Time:      make([]float64, length),
		Amplitude: make([]float64, length),
	}
	for i := range sig.Time {
		sig.Time[i] = float64(i) / g.cfg.SampleRate
	}
	if set == nil || set.Len() == 0 {
		return sig, nil
	}

	// Components are accumulated in harmonic order so every sample sums its
	// terms in the same sequence.
	tone := make([]float64, length)
	for _, c := range set.Components() {
		writeTone(tone, sig.Time, p.FundamentalHz*float64(c.Order), c.Peak, c.PhaseRad())
		vecmath.AddBlockInPlace(sig.Amplitude, tone)
	}
	return sig, nil
}

// writeTone writes amplitude*sin(2*pi*freq*t + phase) for each t into dst.
func writeTone(dst, t []float64, freqHz, amplitude, phase float64) {
	if amplitude == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return
	}
	for i, ti := range t {
		dst[i] = amplitude * math.Sin(2*math.Pi*freqHz*ti+phase)
	}
}
