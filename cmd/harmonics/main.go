// Command harmonics synthesizes a periodic signal from a fundamental
// frequency and its harmonics and reports RMS, peak-to-peak and zero
// crossings.
//
// Usage:
//
//	harmonics [flags] [query]
//
// The model is given as a query string using the keys f (fundamental, Hz),
// nc (cycles), a{n} (peak amplitude), ar{n} (RMS amplitude) and p{n}
// (phase, degrees) of harmonic n.
//
// Examples:
//
//	harmonics 'f=50&nc=5&a1=1'
//	harmonics -png wave.png 'f=50&nc=2&a1=1&a3=0.33&p3=180'
//	harmonics -csv wave.csv 'f=60&a1=325&a5=20'
//	harmonics -serve -addr :8080
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	ossignal "os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-harmonics/dsp/signal"
	"github.com/cwbudde/algo-harmonics/explorer"
	"github.com/cwbudde/algo-harmonics/internal/config"
	"github.com/cwbudde/algo-harmonics/internal/query"
	"github.com/cwbudde/algo-harmonics/internal/render"
	"github.com/cwbudde/algo-harmonics/internal/server"
)

var errUsage = errors.New("usage")

type options struct {
	configFile string
	pngFile    string
	csvFile    string
	serve      bool
	addr       string
	logLevel   string
	sampleRate float64
	query      string
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel)

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.Log.Level).Msg("invalid log level")
	}
	log.Logger = log.Logger.Level(level)

	if opts.serve {
		if err := serve(cfg); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
		return
	}

	if err := report(os.Stdout, cfg, opts); err != nil {
		log.Fatal().Err(err).Msg("synthesis failed")
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("harmonics", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configFile, "config", "", "YAML config file")
	fs.StringVar(&opts.pngFile, "png", "", "write the waveform plot and parameter summary to this PNG file")
	fs.StringVar(&opts.csvFile, "csv", "", "write the sampled time/amplitude series to this CSV file")
	fs.BoolVar(&opts.serve, "serve", false, "run the HTTP API instead of printing a report")
	fs.StringVar(&opts.addr, "addr", "", "HTTP listen address (overrides config)")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	fs.Float64Var(&opts.sampleRate, "sample-rate", 0, "synthesis sample rate in Hz (overrides config)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: harmonics [flags] [query]\n\n")
		fmt.Fprintf(stderr, "Synthesizes a fundamental plus harmonics and prints its metrics.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  harmonics 'f=50&nc=5&a1=1'\n")
		fmt.Fprintf(stderr, "  harmonics -png wave.png 'f=50&nc=2&a1=1&a3=0.33&p3=180'\n")
		fmt.Fprintf(stderr, "  harmonics -serve -addr :8080\n")
	}
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return options{}, fmt.Errorf("%w: expected at most one query argument, got %d", errUsage, fs.NArg())
	}
	opts.query = fs.Arg(0)
	return opts, nil
}

func loadConfig(opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return config.Config{}, err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.sampleRate != 0 {
		cfg.SampleRate = opts.sampleRate
	}
	return cfg, cfg.Validate()
}

func serve(cfg config.Config) error {
	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := cfg.ExplorerDefaults()
	srv := server.New(
		signal.NewGenerator(cfg.ProcessorOptions()...),
		query.NewCodec(cfg.HarmonicLimit, d),
		d,
		server.Options{
			Addr:         cfg.Server.Addr,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			Plot:         plotOptions(cfg),
		},
		log.Logger,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		return nil
	})
	return g.Wait()
}

func plotOptions(cfg config.Config) render.Options {
	return render.Options{WidthIn: cfg.Plot.WidthIn, HeightIn: cfg.Plot.HeightIn, Summary: true}
}

// report evaluates the query in opts and writes the metrics table to w,
// plus the optional PNG and CSV exports.
func report(w io.Writer, cfg config.Config, opts options) error {
	d := cfg.ExplorerDefaults()
	codec := query.NewCodec(cfg.HarmonicLimit, d)
	st, bad, err := codec.Parse(opts.query)
	if err != nil {
		return err
	}
	for _, b := range bad {
		log.Warn().Str("key", b.Key).Str("value", b.Value).Err(b.Err).Msg("ignoring query value")
	}

	sess := explorer.New(signal.NewGenerator(cfg.ProcessorOptions()...), d)
	for _, n := range sess.Load(st.Params, st.Harmonics) {
		log.Warn().Str("field", n.Field).Msg(n.Message())
	}
	res, err := sess.Compute()
	if err != nil {
		return err
	}
	log.Debug().Int("samples", res.Signal.Len()).Float64("sample_rate", cfg.SampleRate).Msg("synthesized")

	if err := printReport(w, res); err != nil {
		return err
	}
	if opts.pngFile != "" {
		if err := writeFile(opts.pngFile, func(f io.Writer) error {
			return render.PNG(f, res, plotOptions(cfg))
		}); err != nil {
			return err
		}
		log.Info().Str("file", opts.pngFile).Msg("wrote plot")
	}
	if opts.csvFile != "" {
		if err := writeFile(opts.csvFile, func(f io.Writer) error {
			return writeCSV(f, res.Signal)
		}); err != nil {
			return err
		}
		log.Info().Str("file", opts.csvFile).Int("samples", res.Signal.Len()).Msg("wrote series")
	}
	return nil
}

func printReport(w io.Writer, res explorer.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Harmonic\tFrequency [Hz]\tPeak\tRMS\tPhase [deg]\n")
	fmt.Fprintf(tw, "--------\t--------------\t----\t---\t-----------\n")
	for _, c := range res.Harmonics {
		fmt.Fprintf(tw, "%s\t%g\t%.6g\t%.6g\t%g\n",
			render.Ordinal(c.Order),
			res.Params.FundamentalHz*float64(c.Order),
			c.Peak,
			c.RMS(),
			c.PhaseDeg,
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write harmonics table: %w", err)
	}

	crossings := render.FormatCrossings(res.Metrics.ZeroCrossings)
	if crossings == "" {
		crossings = "none"
	}
	fmt.Fprintln(w)
	fmt.Fprintf(tw, "Fundamental\t%g Hz\n", res.Params.FundamentalHz)
	fmt.Fprintf(tw, "Cycles\t%g\n", res.Params.Cycles)
	fmt.Fprintf(tw, "Samples\t%d\n", res.Signal.Len())
	fmt.Fprintf(tw, "RMS\t%.6g\n", res.Metrics.RMS)
	fmt.Fprintf(tw, "Peak-to-peak\t%.6g\n", res.Metrics.PeakToPeak)
	fmt.Fprintf(tw, "Crest factor\t%.4g\n", res.Metrics.CrestFactor)
	fmt.Fprintf(tw, "Zero crossings [s]\t%s\n", crossings)
	fmt.Fprintf(tw, "Query\t%s\n", query.Encode(res.Params, res.HarmonicSet()))
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write metrics table: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, sig signal.Signal) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "amplitude"}); err != nil {
		return err
	}
	for i := range sig.Amplitude {
		rec := []string{
			strconv.FormatFloat(sig.Time[i], 'g', -1, 64),
			strconv.FormatFloat(sig.Amplitude[i], 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
