package time

import (
	"math"
	"strconv"
	"testing"
)

func makeBenchSignal(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * float64(i) / float64(n))
	}

	return out
}

func BenchmarkRMS(b *testing.B) {
	sizes := []int{1024, 5001, 50001, 250001}
	for _, n := range sizes {
		signal := makeBenchSignal(n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * 8))

			for range b.N {
				RMS(signal, 5)
			}
		})
	}
}

func BenchmarkZeroCrossings(b *testing.B) {
	sizes := []int{1024, 5001, 50001, 250001}
	for _, n := range sizes {
		signal := makeBenchSignal(n)
		times := make([]float64, n)
		for i := range times {
			times[i] = float64(i)
		}
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * 8))

			for range b.N {
				ZeroCrossings(signal, times, 1)
			}
		})
	}
}
