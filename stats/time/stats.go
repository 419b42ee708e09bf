// Package time computes time-domain metrics of a sampled periodic signal.
//
// Functions that take a cycle count assume the series spans exactly that many
// fundamental periods, as produced by the synthesizer.
package time

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Metrics holds the derived metrics of one synthesized signal.
type Metrics struct {
	RMS         float64
	PeakToPeak  float64
	Min         float64
	Max         float64
	CrestFactor float64 // max(|x|) / RMS (linear)
	// ZeroCrossings holds the ascending crossing times in the first cycle.
	ZeroCrossings []float64
}

// Analyze computes all metrics for amplitude/times spanning cycles periods.
func Analyze(amplitude, times []float64, cycles float64) Metrics {
	minVal, maxVal := Peaks(amplitude)
	if len(amplitude) == 0 {
		minVal, maxVal = 0, 0
	}

	rms := RMS(amplitude, cycles)
	var crest float64
	if rms != 0 {
		crest = vecmath.MaxAbs(amplitude) / rms
	}

	return Metrics{
		RMS:           rms,
		PeakToPeak:    maxVal - minVal,
		Min:           minVal,
		Max:           maxVal,
		CrestFactor:   crest,
		ZeroCrossings: ZeroCrossings(amplitude, times, cycles),
	}
}

// Peaks returns the minimum and maximum sample values.
// For an empty signal it returns (+Inf, -Inf).
func Peaks(amplitude []float64) (minVal, maxVal float64) {
	minVal, maxVal = math.Inf(1), math.Inf(-1)
	for _, x := range amplitude {
		if x > maxVal {
			maxVal = x
		}
		if x < minVal {
			minVal = x
		}
	}
	return minVal, maxVal
}

// PeakToPeak returns max - min of the signal, or 0 for an empty signal.
func PeakToPeak(amplitude []float64) float64 {
	if len(amplitude) == 0 {
		return 0
	}
	minVal, maxVal := Peaks(amplitude)
	return maxVal - minVal
}

// RMS returns sqrt(sum(x²) / (len/cycles)) for a signal spanning cycles
// periods. The energy of the whole series is divided by one period's sample
// count, so for an exactly periodic signal the result is the single-period
// RMS scaled by sqrt(cycles). A unit sine over 5 cycles gives about 1.581.
// Returns 0 for an empty signal or a non-positive cycle count.
func RMS(amplitude []float64, cycles float64) float64 {
	if len(amplitude) == 0 || !(cycles > 0) {
		return 0
	}

	perCycle := float64(len(amplitude)) / cycles
	return math.Sqrt(vecmath.DotProduct(amplitude, amplitude) / perCycle)
}

// ZeroCrossings returns the times of sign changes within the first period
// of the signal. The first len/cycles samples are scanned; a crossing
// between samples i-1 and i is reported at times[i].
//
// A signal whose first sample is exactly zero starts on a crossing, so
// times[0] is reported first and the period end times[n-1]/cycles is
// reported last. The period end is skipped when it lies beyond the sampled
// series or within half a sample of the last reported crossing, so the
// result stays strictly ascending. An all-zero signal has no crossings.
func ZeroCrossings(amplitude, times []float64, cycles float64) []float64 {
	n := min(len(amplitude), len(times))
	out := []float64{}
	if n == 0 || !(cycles > 0) || isSilent(amplitude[:n]) {
		return out
	}

	startsAtZero := amplitude[0] == 0
	if startsAtZero {
		out = append(out, times[0])
	}

	window := float64(n) / cycles
	for i := 1; i < n && float64(i) < window; i++ {
		prev, cur := amplitude[i-1], amplitude[i]
		if (prev < 0 && cur > 0) || (prev > 0 && cur < 0) {
			out = append(out, times[i])
		}
	}

	if startsAtZero && n > 1 {
		end := times[n-1] / cycles
		halfStep := (times[1] - times[0]) / 2
		if end <= times[n-1] && end > out[len(out)-1]+halfStep {
			out = append(out, end)
		}
	}
	return out
}

func isSilent(amplitude []float64) bool {
	for _, x := range amplitude {
		if x != 0 {
			return false
		}
	}
	return true
}
