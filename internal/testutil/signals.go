package testutil

import "math"

// Sinusoid samples amplitude*sin(2*pi*freqHz*t + phaseRad) at t = i/sampleRate
// for i in [0, length).
func Sinusoid(freqHz, sampleRate, amplitude, phaseRad float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = amplitude * math.Sin(2*math.Pi*freqHz*t+phaseRad)
	}
	return out
}

// TimeAxis returns i/sampleRate for i in [0, length).
func TimeAxis(sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = float64(i) / sampleRate
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
