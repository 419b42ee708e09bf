package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-harmonics/stats/time"
)

func ExampleAnalyze() {
	amp := []float64{0, 1, 0, -1, 0}
	times := []float64{0, 0.25, 0.5, 0.75, 1}

	m := timestats.Analyze(amp, times, 1)
	fmt.Printf("pp=%.1f rms=%.3f zc=%v\n", m.PeakToPeak, m.RMS, m.ZeroCrossings)

	// Output:
	// pp=2.0 rms=0.632 zc=[0 1]
}

func ExamplePeaks() {
	minVal, maxVal := timestats.Peaks([]float64{0.2, -0.7, 1.1})
	fmt.Println(minVal, maxVal)

	// Output:
	// -0.7 1.1
}
