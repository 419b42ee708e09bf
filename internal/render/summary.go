package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-harmonics/explorer"
)

// CrossingSeparator joins zero-crossing times in summaries.
const CrossingSeparator = " | "

// FormatTime formats a time value with three significant digits. Values
// with a decimal exponent <= -4 or >= 4 use exponential notation ("2e-5").
func FormatTime(t float64) string {
	if t == 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return strconv.FormatFloat(t, 'g', -1, 64)
	}

	exp := int(math.Floor(math.Log10(math.Abs(t))))
	if exp <= -4 || exp >= 4 {
		s := strconv.FormatFloat(t, 'e', 2, 64)
		mant, e, _ := strings.Cut(s, "e")
		m, _ := strconv.ParseFloat(mant, 64)
		n, _ := strconv.Atoi(e)
		return strconv.FormatFloat(m, 'f', -1, 64) + "e" + strconv.Itoa(n)
	}

	r, _ := strconv.ParseFloat(strconv.FormatFloat(t, 'g', 3, 64), 64)
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// FormatCrossings joins crossing times with [CrossingSeparator].
func FormatCrossings(times []float64) string {
	parts := make([]string, len(times))
	for i, t := range times {
		parts[i] = FormatTime(t)
	}
	return strings.Join(parts, CrossingSeparator)
}

// Ordinal returns n with its English ordinal suffix ("1st", "12th", "23rd").
func Ordinal(n int) string {
	suffix := "th"
	switch {
	case n%10 == 1 && n%100 != 11:
		suffix = "st"
	case n%10 == 2 && n%100 != 12:
		suffix = "nd"
	case n%10 == 3 && n%100 != 13:
		suffix = "rd"
	}
	return strconv.Itoa(n) + suffix
}

// Summary describes the parameters and metrics of res as plain text, one
// item per line. Harmonics with zero amplitude are left out.
func Summary(res explorer.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fundamental frequency: %s Hz\n", num(res.Params.FundamentalHz))
	fmt.Fprintf(&b, "Cycles: %s\n", num(res.Params.Cycles))
	for _, c := range res.Harmonics {
		if c.Peak == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s harmonic: peak %s, RMS %s, phase %s°\n",
			Ordinal(c.Order), num(c.Peak), num(c.RMS()), num(c.PhaseDeg))
	}
	fmt.Fprintf(&b, "RMS: %s\n", num(res.Metrics.RMS))
	fmt.Fprintf(&b, "Peak-to-peak: %s\n", num(res.Metrics.PeakToPeak))
	zc := FormatCrossings(res.Metrics.ZeroCrossings)
	if zc == "" {
		zc = "none"
	}
	fmt.Fprintf(&b, "Zero crossings (s): %s", zc)
	return b.String()
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'g', 6, 64)
}
