package testutil

import (
	"math"
	"testing"
)

func TestSinusoid(t *testing.T) {
	s := Sinusoid(1000, 48000, 1.0, 0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestSinusoidPhase(t *testing.T) {
	s := Sinusoid(10, 1000, 2, math.Pi/2, 4)
	if math.Abs(s[0]-2) > 1e-15 {
		t.Fatalf("s[0] = %v, want 2 for a 90 degree phase", s[0])
	}
}

func TestTimeAxis(t *testing.T) {
	ts := TimeAxis(4, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	RequireSliceNearlyEqual(t, ts, want, 0)
}

func TestDC(t *testing.T) {
	d := DC(0.5, 10)
	for i, v := range d {
		if v != 0.5 {
			t.Fatalf("d[%d] = %v, want 0.5", i, v)
		}
	}
}
