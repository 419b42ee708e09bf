//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-harmonics/dsp/harmonic"
	"github.com/cwbudde/algo-harmonics/dsp/signal"
	timestats "github.com/cwbudde/algo-harmonics/stats/time"
)

var (
	gen   = signal.NewGenerator()
	funcs []js.Func
)

func main() {
	api := js.Global().Get("Object").New()

	// synthesize(f, nc, [{order, amplitudePeak, phaseAngle}]) -> {time, amplitude}
	api.Set("synthesize", export(func(args []js.Value) any {
		if len(args) < 3 {
			return "synthesize requires frequency, cycles and harmonics"
		}
		set, err := harmonicsFrom(args[2])
		if err != nil {
			return err.Error()
		}
		sig, err := gen.Synthesize(signal.Params{FundamentalHz: args[0].Float(), Cycles: args[1].Float()}, set)
		if err != nil {
			return err.Error()
		}
		out := js.Global().Get("Object").New()
		out.Set("time", toFloat64Array(sig.Time))
		out.Set("amplitude", toFloat64Array(sig.Amplitude))
		return out
	}))

	api.Set("rms", export(func(args []js.Value) any {
		if len(args) < 2 {
			return js.Null()
		}
		return timestats.RMS(fromArray(args[0]), args[1].Float())
	}))

	api.Set("peakToPeak", export(func(args []js.Value) any {
		if len(args) < 1 {
			return js.Null()
		}
		return timestats.PeakToPeak(fromArray(args[0]))
	}))

	api.Set("zeroCrossings", export(func(args []js.Value) any {
		if len(args) < 3 {
			return js.Null()
		}
		zc := timestats.ZeroCrossings(fromArray(args[0]), fromArray(args[1]), args[2].Float())
		return toFloat64Array(zc)
	}))

	api.Set("peaks", export(func(args []js.Value) any {
		if len(args) < 1 {
			return js.Null()
		}
		minVal, maxVal := timestats.Peaks(fromArray(args[0]))
		out := js.Global().Get("Object").New()
		out.Set("min", minVal)
		out.Set("max", maxVal)
		return out
	}))

	js.Global().Set("HarmonicsEngine", api)
	select {}
}

func harmonicsFrom(arr js.Value) (*harmonic.Set, error) {
	components := make([]harmonic.Component, arr.Length())
	for i := range components {
		item := arr.Index(i)
		components[i] = harmonic.Component{
			Order:    i + 1,
			Peak:     item.Get("amplitudePeak").Float(),
			PhaseDeg: item.Get("phaseAngle").Float(),
		}
		if o := item.Get("order"); o.Type() == js.TypeNumber {
			components[i].Order = o.Int()
		}
	}
	return harmonic.FromComponents(components)
}

func fromArray(v js.Value) []float64 {
	out := make([]float64, v.Length())
	for i := range out {
		out[i] = v.Index(i).Float()
	}
	return out
}

func toFloat64Array(data []float64) js.Value {
	arr := js.Global().Get("Float64Array").New(len(data))
	for i, v := range data {
		arr.SetIndex(i, v)
	}
	return arr
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
