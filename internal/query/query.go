// Package query converts the explorer model to and from URL query
// parameters.
//
// Keys:
//
//	f     fundamental frequency in Hz
//	nc    number of cycles
//	a{n}  peak amplitude of harmonic n
//	ar{n} RMS amplitude of harmonic n (read only; a{n} wins when both are set)
//	p{n}  phase of harmonic n in degrees
package query

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-harmonics/dsp/core"
	"github.com/cwbudde/algo-harmonics/dsp/harmonic"
	"github.com/cwbudde/algo-harmonics/dsp/signal"
	"github.com/cwbudde/algo-harmonics/explorer"
)

// DefaultLimit is the highest harmonic order read from a query.
const DefaultLimit = 200

const (
	keyFundamental = "f"
	keyCycles      = "nc"
)

var errNotFinite = errors.New("not a finite number")

// ValueError describes a query value that could not be used.
type ValueError struct {
	Key   string
	Value string
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("query %s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// State is a decoded model.
type State struct {
	Params    signal.Params
	Harmonics *harmonic.Set
}

// Codec decodes and encodes explorer state.
type Codec struct {
	limit    int
	defaults explorer.Defaults
}

// NewCodec returns a codec reading harmonics 1..limit. A non-positive limit
// selects DefaultLimit.
func NewCodec(limit int, defaults explorer.Defaults) *Codec {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Codec{limit: limit, defaults: defaults}
}

// Limit returns the highest harmonic order the codec reads.
func (c *Codec) Limit() int {
	return c.limit
}

// Decode reads a model from v. Missing or unparsable f and nc fall back to
// the defaults; values that are present, including zero and negative ones,
// pass through so the session can reject them with a notice. Values that
// cannot be parsed are ignored and returned alongside the state. Trailing
// silent harmonics are dropped; at least one harmonic is always present.
// A query without any harmonic key decodes to explorer.DefaultHarmonics.
func (c *Codec) Decode(v url.Values) (State, []*ValueError) {
	var bad []*ValueError
	harmonicKeys := false
	num := func(key string) (float64, bool) {
		raw := strings.TrimSpace(v.Get(key))
		if raw == "" {
			return 0, false
		}
		x, err := strconv.ParseFloat(raw, 64)
		if err == nil && !core.IsFinite(x) {
			err = errNotFinite
		}
		if err != nil {
			bad = append(bad, &ValueError{Key: key, Value: raw, Err: err})
			return 0, false
		}
		return x, true
	}
	param := func(key string, fallback float64) float64 {
		if x, ok := num(key); ok {
			return x
		}
		return fallback
	}
	field := func(key string) float64 {
		if v.Has(key) {
			harmonicKeys = true
		}
		x, _ := num(key)
		return x
	}
	amplitude := func(key string) float64 {
		x := field(key)
		if x < 0 {
			bad = append(bad, &ValueError{Key: key, Value: v.Get(key), Err: harmonic.ErrNegativeAmplitude})
			return 0
		}
		return x
	}

	st := State{Params: signal.Params{
		FundamentalHz: param(keyFundamental, c.defaults.FundamentalHz),
		Cycles:        param(keyCycles, c.defaults.Cycles),
	}}

	components := make([]harmonic.Component, c.limit)
	last := 0
	for n := 1; n <= c.limit; n++ {
		peak := amplitude(peakKey(n))
		if peak == 0 {
			peak = core.RMSToPeak(amplitude(rmsKey(n)))
		}
		comp := harmonic.Component{Order: n, Peak: peak, PhaseDeg: field(phaseKey(n))}
		components[n-1] = comp
		if comp.Peak != 0 || comp.PhaseDeg != 0 {
			last = n
		}
	}
	if !harmonicKeys {
		st.Harmonics = explorer.DefaultHarmonics()
		return st, bad
	}
	if last == 0 {
		last = 1
	}

	set := harmonic.NewSet(last)
	for _, comp := range components[:last] {
		_ = set.SetPeak(comp.Order, comp.Peak)
		_ = set.SetPhase(comp.Order, comp.PhaseDeg)
	}
	st.Harmonics = set
	return st, bad
}

// Parse decodes a raw query string such as "f=50&nc=5&a1=1".
func (c *Codec) Parse(raw string) (State, []*ValueError, error) {
	v, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return State{}, nil, fmt.Errorf("parse query: %w", err)
	}
	st, bad := c.Decode(v)
	return st, bad, nil
}

type pair struct {
	key   string
	value string
}

func pairs(p signal.Params, set *harmonic.Set) []pair {
	out := []pair{
		{keyFundamental, formatFloat(p.FundamentalHz)},
		{keyCycles, formatFloat(p.Cycles)},
	}
	if set == nil {
		return out
	}
	for _, c := range set.Components() {
		if c.Peak != 0 {
			out = append(out, pair{peakKey(c.Order), formatFloat(c.Peak)})
		}
		if c.PhaseDeg != 0 {
			out = append(out, pair{phaseKey(c.Order), formatFloat(c.PhaseDeg)})
		}
	}
	return out
}

// Encode writes p and set as a query string with keys in model order:
// f, nc, then a{n} and p{n} for each harmonic with a non-zero value.
func Encode(p signal.Params, set *harmonic.Set) string {
	var b strings.Builder
	for i, kv := range pairs(p, set) {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(kv.key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.value))
	}
	return b.String()
}

// Values returns the encoded model as url.Values.
func Values(p signal.Params, set *harmonic.Set) url.Values {
	v := url.Values{}
	for _, kv := range pairs(p, set) {
		v.Set(kv.key, kv.value)
	}
	return v
}

func formatFloat(x float64) string {
	if x == math.Trunc(x) && math.Abs(x) < 1e21 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func peakKey(n int) string  { return "a" + strconv.Itoa(n) }
func rmsKey(n int) string   { return "ar" + strconv.Itoa(n) }
func phaseKey(n int) string { return "p" + strconv.Itoa(n) }
