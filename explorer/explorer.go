// Package explorer holds the user-editable harmonic model and synthesis
// parameters, validates edits at the model-update boundary and recomputes
// the sampled signal and its metrics.
package explorer

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-harmonics/dsp/harmonic"
	"github.com/cwbudde/algo-harmonics/dsp/signal"
	timestats "github.com/cwbudde/algo-harmonics/stats/time"
)

// ErrLastHarmonic is returned when removing the only remaining harmonic.
var ErrLastHarmonic = errors.New("explorer: cannot remove the last harmonic")

// Defaults are the fallback synthesis parameters.
type Defaults struct {
	FundamentalHz float64
	Cycles        float64
}

// DefaultDefaults returns the stock fallback values (50 Hz, 5 cycles).
func DefaultDefaults() Defaults {
	return Defaults{FundamentalHz: 50, Cycles: 5}
}

// Notice is a user-facing warning raised when an invalid parameter was
// replaced by its default.
type Notice struct {
	Kind     signal.Kind
	Field    string
	Rejected float64
	Applied  float64
}

// Message returns a human-readable description of the notice.
func (n Notice) Message() string {
	switch n.Kind {
	case signal.InvalidFrequency:
		return fmt.Sprintf("The fundamental frequency must not be zero; using %g Hz.", n.Applied)
	case signal.InvalidCycleCount:
		return fmt.Sprintf("The number of cycles must be greater than zero; using %g.", n.Applied)
	default:
		return fmt.Sprintf("Invalid %s %g; using %g.", n.Field, n.Rejected, n.Applied)
	}
}

// Result is one recomputation of the derived values. It is never shared
// with later results.
type Result struct {
	Params    signal.Params
	Harmonics []harmonic.Component
	Signal    signal.Signal
	Metrics   timestats.Metrics

	set *harmonic.Set
}

// HarmonicSet returns the model the result was computed from.
func (r Result) HarmonicSet() *harmonic.Set {
	if r.set == nil {
		return &harmonic.Set{}
	}
	return r.set.Clone()
}

// Session is the editable state of one explorer. It is not safe for
// concurrent use; generators and results are.
type Session struct {
	gen      *signal.Generator
	defaults Defaults
	params   signal.Params
	set      *harmonic.Set
}

// DefaultHarmonics returns the model used when none is given: a single
// fundamental with unit peak amplitude and zero phase.
func DefaultHarmonics() *harmonic.Set {
	set := harmonic.NewSet(1)
	_ = set.SetPeak(1, 1)
	return set
}

// New returns a session at the default parameters with the
// DefaultHarmonics model.
func New(gen *signal.Generator, defaults Defaults) *Session {
	set := DefaultHarmonics()
	return &Session{
		gen:      gen,
		defaults: defaults,
		params:   signal.Params{FundamentalHz: defaults.FundamentalHz, Cycles: defaults.Cycles},
		set:      set,
	}
}

// Params returns the current synthesis parameters.
func (s *Session) Params() signal.Params {
	return s.params
}

// Harmonics returns a copy of the current harmonic set.
func (s *Session) Harmonics() *harmonic.Set {
	return s.set.Clone()
}

// SetFundamental sets the fundamental frequency. An invalid frequency is
// replaced by the default and reported as a notice.
func (s *Session) SetFundamental(hz float64) *Notice {
	p := s.params
	p.FundamentalHz = hz
	if signal.KindOf(s.gen.Validate(p)) == signal.InvalidFrequency {
		s.params.FundamentalHz = s.defaults.FundamentalHz
		return &Notice{Kind: signal.InvalidFrequency, Field: signal.FieldFundamental, Rejected: hz, Applied: s.defaults.FundamentalHz}
	}
	s.params.FundamentalHz = hz
	return nil
}

// SetCycles sets the number of displayed cycles. An invalid count is
// replaced by the default and reported as a notice.
func (s *Session) SetCycles(cycles float64) *Notice {
	p := s.params
	p.Cycles = cycles
	if signal.KindOf(s.gen.Validate(p)) == signal.InvalidCycleCount {
		s.params.Cycles = s.defaults.Cycles
		return &Notice{Kind: signal.InvalidCycleCount, Field: signal.FieldCycles, Rejected: cycles, Applied: s.defaults.Cycles}
	}
	s.params.Cycles = cycles
	return nil
}

// AddHarmonic appends the next harmonic with zero amplitude and phase.
func (s *Session) AddHarmonic() harmonic.Component {
	return s.set.Append()
}

// RemoveHarmonic drops the highest harmonic. At least one harmonic always
// remains.
func (s *Session) RemoveHarmonic() error {
	if s.set.Len() <= 1 {
		return ErrLastHarmonic
	}
	return s.set.RemoveLast()
}

// SetPeak sets the peak amplitude of a harmonic.
func (s *Session) SetPeak(order int, peak float64) error {
	return s.set.SetPeak(order, peak)
}

// SetRMS sets the RMS amplitude of a harmonic.
func (s *Session) SetRMS(order int, rms float64) error {
	return s.set.SetRMS(order, rms)
}

// SetPhase sets the phase of a harmonic in degrees.
func (s *Session) SetPhase(order int, deg float64) error {
	return s.set.SetPhase(order, deg)
}

// Load replaces the whole model. Invalid parameters fall back to the
// defaults; the returned notices describe each replacement. A nil or empty
// set loads DefaultHarmonics.
func (s *Session) Load(p signal.Params, set *harmonic.Set) []Notice {
	var notices []Notice
	if n := s.SetFundamental(p.FundamentalHz); n != nil {
		notices = append(notices, *n)
	}
	if n := s.SetCycles(p.Cycles); n != nil {
		notices = append(notices, *n)
	}
	if set == nil || set.Len() == 0 {
		set = DefaultHarmonics()
	}
	s.set = set.Clone()
	return notices
}

// Compute synthesizes the current model and derives its metrics. A sample
// count above the generator ceiling is returned as an error and no result
// is produced.
func (s *Session) Compute() (Result, error) {
	sig, err := s.gen.Synthesize(s.params, s.set)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Params:    s.params,
		Harmonics: s.set.Components(),
		Signal:    sig,
		Metrics:   timestats.Analyze(sig.Amplitude, sig.Time, s.params.Cycles),
		set:       s.set.Clone(),
	}, nil
}
