// Package render draws synthesized signals as PNG images.
package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-harmonics/explorer"
)

// DefaultMaxPoints bounds the number of points drawn per plot.
const DefaultMaxPoints = 20000

// margin is added above and below the signal range.
const margin = 0.5

// Options control the output image.
type Options struct {
	WidthIn  float64
	HeightIn float64
	// MaxPoints limits the drawn samples; longer series are decimated by a
	// fixed stride. Zero selects DefaultMaxPoints.
	MaxPoints int
	// Summary adds the parameter summary above the plot.
	Summary bool
}

// DefaultOptions returns a 10x5 inch plot with the summary.
func DefaultOptions() Options {
	return Options{WidthIn: 10, HeightIn: 5, Summary: true}
}

// Plot builds the waveform plot of res.
func Plot(res explorer.Result, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Waveform"
	if opts.Summary {
		p.Title.Text = Summary(res)
	}
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Amplitude"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(points(res, opts.MaxPoints))
	if err != nil {
		return nil, fmt.Errorf("render: waveform line: %w", err)
	}
	line.LineStyle.Width = vg.Points(1)
	line.LineStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	p.Add(line)

	if res.Signal.Len() > 0 {
		p.X.Min = res.Signal.Time[0]
		p.X.Max = res.Signal.Duration()
		p.Y.Min = res.Metrics.Min - margin
		p.Y.Max = res.Metrics.Max + margin
	}
	return p, nil
}

// PNG writes the waveform plot of res to w.
func PNG(w io.Writer, res explorer.Result, opts Options) error {
	if !(opts.WidthIn > 0) || !(opts.HeightIn > 0) {
		return fmt.Errorf("render: plot size must be > 0: %vx%v", opts.WidthIn, opts.HeightIn)
	}
	p, err := Plot(res, opts)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(vg.Length(opts.WidthIn)*vg.Inch, vg.Length(opts.HeightIn)*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render: png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("render: write png: %w", err)
	}
	return nil
}

func points(res explorer.Result, maxPoints int) plotter.XYs {
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}
	n := res.Signal.Len()
	stride := 1
	if n > maxPoints {
		stride = (n + maxPoints - 1) / maxPoints
	}

	xys := make(plotter.XYs, 0, n/stride+2)
	for i := 0; i < n; i += stride {
		xys = append(xys, plotter.XY{X: res.Signal.Time[i], Y: res.Signal.Amplitude[i]})
	}
	if n > 0 && (n-1)%stride != 0 {
		xys = append(xys, plotter.XY{X: res.Signal.Time[n-1], Y: res.Signal.Amplitude[n-1]})
	}
	return xys
}
