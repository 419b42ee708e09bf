// Package server exposes the harmonic explorer over HTTP. Every request
// carries the full model in its query string, so handlers keep no state
// between requests.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-harmonics/dsp/signal"
	"github.com/cwbudde/algo-harmonics/explorer"
	"github.com/cwbudde/algo-harmonics/internal/query"
	"github.com/cwbudde/algo-harmonics/internal/render"
)

const shutdownTimeout = 5 * time.Second

// Options configure a Server.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Plot         render.Options
}

// Server serves waveforms, metrics and PNG plots computed from the request
// query string.
type Server struct {
	gen      *signal.Generator
	codec    *query.Codec
	defaults explorer.Defaults
	plot     render.Options
	log      zerolog.Logger
	srv      *http.Server
}

// New returns a server synthesizing with gen and decoding requests with
// codec. It does not listen until Run is called.
func New(gen *signal.Generator, codec *query.Codec, defaults explorer.Defaults, opts Options, log zerolog.Logger) *Server {
	s := &Server{
		gen:      gen,
		codec:    codec,
		defaults: defaults,
		plot:     opts.Plot,
		log:      log.With().Str("component", "server").Logger(),
	}
	s.srv = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	router := httprouter.New()
	router.GET("/healthz", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	router.GET("/api/waveform", s.handleWaveform(true))
	router.GET("/api/metrics", s.handleWaveform(false))
	router.GET("/api/waveform.png", s.handlePNG)
	return router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.srv.Addr).Msg("listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type harmonicJSON struct {
	Order    int     `json:"order"`
	Peak     float64 `json:"peak"`
	RMS      float64 `json:"rms"`
	PhaseDeg float64 `json:"phase_deg"`
}

type metricsJSON struct {
	RMS           float64   `json:"rms"`
	PeakToPeak    float64   `json:"peak_to_peak"`
	Min           float64   `json:"min"`
	Max           float64   `json:"max"`
	CrestFactor   float64   `json:"crest_factor"`
	ZeroCrossings []float64 `json:"zero_crossings"`
}

type noticeJSON struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type waveformJSON struct {
	Params struct {
		FundamentalHz float64 `json:"fundamental_hz"`
		Cycles        float64 `json:"cycles"`
		SampleRate    float64 `json:"sample_rate"`
	} `json:"params"`
	Harmonics []harmonicJSON `json:"harmonics"`
	Time      []float64      `json:"time,omitempty"`
	Amplitude []float64      `json:"amplitude,omitempty"`
	Metrics   metricsJSON    `json:"metrics"`
	Notices   []noticeJSON   `json:"notices"`
	Query     string         `json:"query"`
}

type errorJSON struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// compute decodes the request query into a fresh session and evaluates it.
func (s *Server) compute(r *http.Request) (explorer.Result, []noticeJSON, int, error) {
	st, bad := s.codec.Decode(r.URL.Query())

	notices := make([]noticeJSON, 0, len(bad))
	for _, b := range bad {
		s.log.Warn().Str("key", b.Key).Str("value", b.Value).Err(b.Err).Msg("ignoring query value")
		notices = append(notices, noticeJSON{Field: b.Key, Kind: "InvalidValue", Message: b.Error()})
	}

	sess := explorer.New(s.gen, s.defaults)
	for _, n := range sess.Load(st.Params, st.Harmonics) {
		s.log.Warn().Str("field", n.Field).Float64("rejected", n.Rejected).Float64("applied", n.Applied).Msg(n.Message())
		notices = append(notices, noticeJSON{Field: n.Field, Kind: n.Kind.String(), Message: n.Message()})
	}

	res, err := sess.Compute()
	if err != nil {
		return explorer.Result{}, notices, http.StatusUnprocessableEntity, err
	}
	return res, notices, http.StatusOK, nil
}

func (s *Server) handleWaveform(series bool) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		start := time.Now()
		res, notices, status, err := s.compute(r)
		if err != nil {
			s.writeError(w, status, err)
			return
		}

		body := waveformJSON{
			Harmonics: make([]harmonicJSON, len(res.Harmonics)),
			Metrics: metricsJSON{
				RMS:           res.Metrics.RMS,
				PeakToPeak:    res.Metrics.PeakToPeak,
				Min:           res.Metrics.Min,
				Max:           res.Metrics.Max,
				CrestFactor:   res.Metrics.CrestFactor,
				ZeroCrossings: res.Metrics.ZeroCrossings,
			},
			Notices: notices,
			Query:   query.Encode(res.Params, res.HarmonicSet()),
		}
		body.Params.FundamentalHz = res.Params.FundamentalHz
		body.Params.Cycles = res.Params.Cycles
		body.Params.SampleRate = s.gen.Config().SampleRate
		for i, c := range res.Harmonics {
			body.Harmonics[i] = harmonicJSON{Order: c.Order, Peak: c.Peak, RMS: c.RMS(), PhaseDeg: c.PhaseDeg}
		}
		if series {
			body.Time = res.Signal.Time
			body.Amplitude = res.Signal.Amplitude
		}

		s.writeJSON(w, http.StatusOK, body)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("samples", res.Signal.Len()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	start := time.Now()
	res, _, status, err := s.compute(r)
	if err != nil {
		s.writeError(w, status, err)
		return
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, res, s.plot); err != nil {
		s.log.Error().Err(err).Msg("render failed")
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `inline; filename="waveform.png"`)
	_, _ = w.Write(buf.Bytes())
	s.log.Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("samples", res.Signal.Len()).
		Int("bytes", buf.Len()).
		Dur("took", time.Since(start)).
		Msg("request")
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	body := errorJSON{Error: err.Error()}
	if k := signal.KindOf(err); k != 0 {
		body.Kind = k.String()
	}
	s.writeJSON(w, status, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}
