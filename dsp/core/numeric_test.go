package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(0, 0, 0) {
		t.Fatal("expected zeros to be equal with default epsilon")
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		in   float64
		want bool
	}{
		{0, true},
		{-3.5, true},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}
	for _, tt := range tests {
		if got := IsFinite(tt.in); got != tt.want {
			t.Fatalf("IsFinite(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDegToRad(t *testing.T) {
	tests := []struct {
		deg  float64
		want float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{360, 2 * math.Pi},
		{-45, -math.Pi / 4},
	}
	for _, tt := range tests {
		if got := DegToRad(tt.deg); math.Abs(got-tt.want) > 1e-15 {
			t.Fatalf("DegToRad(%v) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}

func TestPeakRMSConversion(t *testing.T) {
	for _, x := range []float64{0, 0.5, 1, 2, 325.27} {
		rms := PeakToRMS(x)
		if math.Abs(rms-x/math.Sqrt(2)) > 1e-9 {
			t.Fatalf("PeakToRMS(%v) = %v, want %v", x, rms, x/math.Sqrt(2))
		}
		if back := RMSToPeak(rms); math.Abs(back-x) > 1e-9 {
			t.Fatalf("RMSToPeak(PeakToRMS(%v)) = %v", x, back)
		}
	}
}
