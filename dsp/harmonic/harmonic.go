// Package harmonic models the ordered set of harmonic components that make up
// a periodic signal.
//
// Each component stores its peak amplitude as the canonical value. The RMS
// amplitude is always derived from it, so the two representations cannot
// drift apart.
package harmonic

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-harmonics/dsp/core"
)

var (
	// ErrEmptySet is returned when removing from a set with no components.
	ErrEmptySet = errors.New("harmonic: set is empty")
	// ErrOrder is returned for a harmonic order outside 1..Len.
	ErrOrder = errors.New("harmonic: order out of range")
	// ErrNegativeAmplitude is returned for amplitudes below zero.
	ErrNegativeAmplitude = errors.New("harmonic: amplitude must be >= 0")
	// ErrNotFinite is returned for NaN or infinite amplitudes and phases.
	ErrNotFinite = errors.New("harmonic: value must be finite")
)

// Component is a single sinusoid at Order times the fundamental frequency.
type Component struct {
	Order    int
	Peak     float64
	PhaseDeg float64
}

// RMS returns the RMS amplitude of the component.
func (c Component) RMS() float64 {
	return core.PeakToRMS(c.Peak)
}

// PhaseRad returns the phase offset in radians.
func (c Component) PhaseRad() float64 {
	return core.DegToRad(c.PhaseDeg)
}

// SetPeak sets the peak amplitude.
func (c *Component) SetPeak(peak float64) error {
	if !core.IsFinite(peak) {
		return fmt.Errorf("%w: peak %v", ErrNotFinite, peak)
	}
	if peak < 0 {
		return fmt.Errorf("%w: peak %v", ErrNegativeAmplitude, peak)
	}
	c.Peak = peak
	return nil
}

// SetRMS sets the amplitude from its RMS value.
func (c *Component) SetRMS(rms float64) error {
	if !core.IsFinite(rms) {
		return fmt.Errorf("%w: rms %v", ErrNotFinite, rms)
	}
	if rms < 0 {
		return fmt.Errorf("%w: rms %v", ErrNegativeAmplitude, rms)
	}
	c.Peak = core.RMSToPeak(rms)
	return nil
}

// Set is an ordered collection of components with orders 1..Len.
// The zero value is an empty set ready to use.
type Set struct {
	components []Component
}

// NewSet returns a set of n silent components with orders 1..n.
func NewSet(n int) *Set {
	s := &Set{}
	for i := 0; i < n; i++ {
		s.Append()
	}
	return s
}

// FromComponents builds a set from components listed in harmonic order.
func FromComponents(components []Component) (*Set, error) {
	s := &Set{components: make([]Component, 0, len(components))}
	for i, c := range components {
		if c.Order != i+1 {
			return nil, fmt.Errorf("%w: component %d has order %d, want %d", ErrOrder, i, c.Order, i+1)
		}
		if !core.IsFinite(c.Peak) || !core.IsFinite(c.PhaseDeg) {
			return nil, fmt.Errorf("%w: order %d peak %v phase %v", ErrNotFinite, c.Order, c.Peak, c.PhaseDeg)
		}
		if c.Peak < 0 {
			return nil, fmt.Errorf("%w: order %d peak %v", ErrNegativeAmplitude, c.Order, c.Peak)
		}
		s.components = append(s.components, c)
	}
	return s, nil
}

// Len returns the number of components.
func (s *Set) Len() int {
	return len(s.components)
}

// Append adds the next harmonic with zero amplitude and phase and returns it.
func (s *Set) Append() Component {
	c := Component{Order: len(s.components) + 1}
	s.components = append(s.components, c)
	return c
}

// RemoveLast drops the highest-order component.
func (s *Set) RemoveLast() error {
	if len(s.components) == 0 {
		return ErrEmptySet
	}
	s.components = s.components[:len(s.components)-1]
	return nil
}

// At returns the component with the given order.
func (s *Set) At(order int) (Component, error) {
	i, err := s.index(order)
	if err != nil {
		return Component{}, err
	}
	return s.components[i], nil
}

// Components returns a copy of the components in harmonic order.
func (s *Set) Components() []Component {
	out := make([]Component, len(s.components))
	copy(out, s.components)
	return out
}

// SetPeak sets the peak amplitude of the given harmonic.
func (s *Set) SetPeak(order int, peak float64) error {
	i, err := s.index(order)
	if err != nil {
		return err
	}
	return s.components[i].SetPeak(peak)
}

// SetRMS sets the RMS amplitude of the given harmonic.
func (s *Set) SetRMS(order int, rms float64) error {
	i, err := s.index(order)
	if err != nil {
		return err
	}
	return s.components[i].SetRMS(rms)
}

// SetPhase sets the phase offset of the given harmonic in degrees.
// The angle is stored as given and not wrapped into [0, 360).
func (s *Set) SetPhase(order int, deg float64) error {
	i, err := s.index(order)
	if err != nil {
		return err
	}
	if !core.IsFinite(deg) {
		return fmt.Errorf("%w: phase %v", ErrNotFinite, deg)
	}
	s.components[i].PhaseDeg = deg
	return nil
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	return &Set{components: s.Components()}
}

func (s *Set) index(order int) (int, error) {
	if order < 1 || order > len(s.components) {
		return 0, fmt.Errorf("%w: %d (have %d)", ErrOrder, order, len(s.components))
	}
	return order - 1, nil
}
