package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-harmonics/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithMaxSamples(1 << 20),
	)

	fmt.Printf("sampleRate=%.0f maxSamples=%d\n", cfg.SampleRate, cfg.MaxSamples)

	// Output:
	// sampleRate=44100 maxSamples=1048576
}

func ExamplePeakToRMS() {
	fmt.Printf("%.6f\n", core.PeakToRMS(1))

	// Output:
	// 0.707107
}
