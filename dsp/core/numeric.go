package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// DegToRad converts an angle in degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// PeakToRMS converts the peak amplitude of a sinusoid to its RMS amplitude.
func PeakToRMS(peak float64) float64 {
	return peak / math.Sqrt2
}

// RMSToPeak converts the RMS amplitude of a sinusoid to its peak amplitude.
func RMSToPeak(rms float64) float64 {
	return rms * math.Sqrt2
}
