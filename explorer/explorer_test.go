package explorer

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-harmonics/dsp/core"
	"github.com/cwbudde/algo-harmonics/dsp/harmonic"
	"github.com/cwbudde/algo-harmonics/dsp/signal"
	"github.com/cwbudde/algo-harmonics/internal/testutil"
)

func newSession() *Session {
	return New(signal.NewGenerator(), DefaultDefaults())
}

func TestNewSessionState(t *testing.T) {
	s := newSession()
	if p := s.Params(); p.FundamentalHz != 50 || p.Cycles != 5 {
		t.Fatalf("Params() = %+v, want 50 Hz / 5 cycles", p)
	}
	set := s.Harmonics()
	if set.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", set.Len())
	}
	if c, _ := set.At(1); c.Peak != 1 || c.PhaseDeg != 0 {
		t.Fatalf("fundamental = %+v, want unit peak", c)
	}
}

func TestComputeDefaultSession(t *testing.T) {
	res, err := newSession().Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if res.Signal.Len() != 5001 {
		t.Fatalf("len = %d, want 5001", res.Signal.Len())
	}
	testutil.RequireNearlyEqual(t, "PeakToPeak", res.Metrics.PeakToPeak, 2, 1e-9)
	// Energy over five periods divided by one period's sample count.
	testutil.RequireNearlyEqual(t, "RMS", res.Metrics.RMS, math.Sqrt(5)/math.Sqrt2, 1e-3)
	if len(res.Metrics.ZeroCrossings) != 3 {
		t.Fatalf("ZeroCrossings = %v, want 3 entries", res.Metrics.ZeroCrossings)
	}
}

func TestInvalidParametersFallBack(t *testing.T) {
	s := newSession()
	if n := s.SetFundamental(120); n != nil {
		t.Fatalf("SetFundamental(120) notice = %+v", n)
	}

	n := s.SetFundamental(0)
	if n == nil || n.Kind != signal.InvalidFrequency || n.Applied != 50 || n.Rejected != 0 {
		t.Fatalf("SetFundamental(0) notice = %+v", n)
	}
	if s.Params().FundamentalHz != 50 {
		t.Fatalf("FundamentalHz = %v, want default 50", s.Params().FundamentalHz)
	}

	n = s.SetCycles(-1)
	if n == nil || n.Kind != signal.InvalidCycleCount || n.Applied != 5 {
		t.Fatalf("SetCycles(-1) notice = %+v", n)
	}
	if n.Message() == "" {
		t.Fatal("Message() is empty")
	}
	if s.Params().Cycles != 5 {
		t.Fatalf("Cycles = %v, want default 5", s.Params().Cycles)
	}

	if n := s.SetCycles(2.5); n != nil {
		t.Fatalf("SetCycles(2.5) notice = %+v", n)
	}
	if _, err := s.Compute(); err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
}

func TestUnboundedSampleCount(t *testing.T) {
	s := New(signal.NewGenerator(core.WithMaxSamples(10000)), DefaultDefaults())
	if n := s.SetFundamental(1); n != nil {
		t.Fatalf("SetFundamental(1) notice = %+v", n)
	}
	res, err := s.Compute()
	if signal.KindOf(err) != signal.UnboundedSampleCount {
		t.Fatalf("Compute() error = %v, want UnboundedSampleCount", err)
	}
	if res.Signal.Len() != 0 {
		t.Fatalf("Compute() produced %d samples alongside an error", res.Signal.Len())
	}
}

func TestHarmonicEditing(t *testing.T) {
	s := newSession()
	if c := s.AddHarmonic(); c.Order != 2 {
		t.Fatalf("AddHarmonic() order = %d, want 2", c.Order)
	}
	if err := s.SetRMS(2, 1); err != nil {
		t.Fatalf("SetRMS() error = %v", err)
	}
	if err := s.SetPhase(2, 180); err != nil {
		t.Fatalf("SetPhase() error = %v", err)
	}
	if err := s.SetPeak(3, 1); !errors.Is(err, harmonic.ErrOrder) {
		t.Fatalf("SetPeak(3) error = %v, want ErrOrder", err)
	}

	res, err := s.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(res.Harmonics) != 2 || math.Abs(res.Harmonics[1].Peak-math.Sqrt2) > 1e-12 {
		t.Fatalf("Harmonics = %+v", res.Harmonics)
	}

	if err := s.RemoveHarmonic(); err != nil {
		t.Fatalf("RemoveHarmonic() error = %v", err)
	}
	if err := s.RemoveHarmonic(); !errors.Is(err, ErrLastHarmonic) {
		t.Fatalf("RemoveHarmonic() on single harmonic error = %v, want ErrLastHarmonic", err)
	}
}

func TestResultsAreIndependent(t *testing.T) {
	s := newSession()
	a, err := s.Compute()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetPeak(1, 3); err != nil {
		t.Fatal(err)
	}
	b, err := s.Compute()
	if err != nil {
		t.Fatal(err)
	}
	if a.Harmonics[0].Peak != 1 || b.Harmonics[0].Peak != 3 {
		t.Fatalf("results share state: %v / %v", a.Harmonics[0].Peak, b.Harmonics[0].Peak)
	}
	testutil.RequireNearlyEqual(t, "PeakToPeak", b.Metrics.PeakToPeak, 6, 1e-9)
}

func TestLoad(t *testing.T) {
	s := newSession()
	set := harmonic.NewSet(3)
	_ = set.SetPeak(3, 0.25)

	notices := s.Load(signal.Params{FundamentalHz: 0, Cycles: 0}, set)
	if len(notices) != 2 {
		t.Fatalf("Load() notices = %+v, want 2", notices)
	}
	if p := s.Params(); p.FundamentalHz != 50 || p.Cycles != 5 {
		t.Fatalf("Params() = %+v, want defaults", p)
	}
	if s.Harmonics().Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Harmonics().Len())
	}

	// The loaded set is copied.
	_ = set.SetPeak(1, 7)
	if c, _ := s.Harmonics().At(1); c.Peak != 0 {
		t.Fatalf("Load() kept a reference to the caller's set")
	}

	s.Load(signal.Params{FundamentalHz: 60, Cycles: 2}, nil)
	if s.Harmonics().Len() != 1 {
		t.Fatalf("Load(nil set) Len() = %d, want 1", s.Harmonics().Len())
	}
	if c, _ := s.Harmonics().At(1); c.Peak != 1 {
		t.Fatalf("Load(nil set) fundamental = %+v, want the default unit peak", c)
	}
}

func TestDefaultHarmonicsMatchNewSession(t *testing.T) {
	got, want := newSession().Harmonics().Components(), DefaultHarmonics().Components()
	if len(got) != len(want) || got[0] != want[0] {
		t.Fatalf("New() harmonics = %+v, want %+v", got, want)
	}
}

func TestRejectsNonFiniteAmplitude(t *testing.T) {
	s := newSession()
	if err := s.SetPeak(1, math.NaN()); !errors.Is(err, harmonic.ErrNotFinite) {
		t.Fatalf("SetPeak(NaN) error = %v, want ErrNotFinite", err)
	}
	if err := s.SetRMS(1, math.Inf(1)); !errors.Is(err, harmonic.ErrNotFinite) {
		t.Fatalf("SetRMS(+Inf) error = %v, want ErrNotFinite", err)
	}
	res, err := s.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	testutil.RequireFinite(t, res.Signal.Amplitude)
	testutil.RequireNearlyEqual(t, "PeakToPeak", res.Metrics.PeakToPeak, 2, 1e-9)
}

func TestResultHarmonicSet(t *testing.T) {
	s := newSession()
	s.AddHarmonic()
	res, err := s.Compute()
	if err != nil {
		t.Fatal(err)
	}
	set := res.HarmonicSet()
	if set.Len() != 2 {
		t.Fatalf("HarmonicSet().Len() = %d, want 2", set.Len())
	}
	if (Result{}).HarmonicSet().Len() != 0 {
		t.Fatal("zero Result should report an empty set")
	}
}
