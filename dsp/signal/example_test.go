package signal_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-harmonics/dsp/core"
	"github.com/cwbudde/algo-harmonics/dsp/harmonic"
	"github.com/cwbudde/algo-harmonics/dsp/signal"
)

func ExampleGenerator_Synthesize() {
	g := signal.NewGenerator(core.WithSampleRate(4))
	set := harmonic.NewSet(1)
	if err := set.SetPeak(1, 1); err != nil {
		panic(err)
	}

	sig, err := g.Synthesize(signal.Params{FundamentalHz: 1, Cycles: 1}, set)
	if err != nil {
		panic(err)
	}
	for i, v := range sig.Amplitude {
		if math.Abs(v) < 1e-12 {
			v = 0
		}
		fmt.Printf("t=%.2f %.0f\n", sig.Time[i], v)
	}

	// Output:
	// t=0.00 0
	// t=0.25 1
	// t=0.50 0
	// t=0.75 -1
	// t=1.00 0
}

func ExampleGenerator_SampleCount() {
	g := signal.NewGenerator()
	n, err := g.SampleCount(signal.Params{FundamentalHz: 50, Cycles: 5})
	if err != nil {
		panic(err)
	}
	fmt.Println(n + 1)

	// Output:
	// 5001
}
