// Package querystate reconciles typed default values with same-named URL query
// parameters. Unparsable values silently fall back to their defaults.
package querystate

import (
	"math"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Defaults maps a parameter name to its default value. Supported kinds are
// string, bool, int and float64; any other kind is treated as a string.
type Defaults map[string]any

// Values is a resolved parameter set with the same kinds as its Defaults
type Values map[string]any

func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

func (v Values) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}

func (v Values) Int(key string) int {
	switch n := v[key].(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func (v Values) Float(key string) float64 {
	switch n := v[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

// Resolve applies the URL values over defaults, coercing each by its default's kind.
func Resolve(query url.Values, defaults Defaults) Values {
	out := make(Values, len(defaults))
	for key, def := range defaults {
		out[key] = def
		if !query.Has(key) {
			continue
		}
		raw := query.Get(key)
		switch d := def.(type) {
		case bool:
			out[key] = raw == "true"
		case float64:
			if f, ok := parseFloatPrefix(raw); ok {
				out[key] = f
			}
		case int:
			if f, ok := parseFloatPrefix(raw); ok && f >= math.MinInt64 && f < math.MaxInt64 {
				out[key] = int(f)
			} else {
				out[key] = d
			}
		default:
			out[key] = raw
		}
	}
	return out
}

// Encode renders the values that differ from their defaults as a canonical,
// key-sorted query string.
func Encode(values Values, defaults Defaults) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	q := url.Values{}
	for _, k := range keys {
		v := values[k]
		if def, ok := defaults[k]; ok && def == v {
			continue
		}
		switch x := v.(type) {
		case bool:
			q.Set(k, strconv.FormatBool(x))
		case int:
			q.Set(k, strconv.Itoa(x))
		case float64:
			q.Set(k, strconv.FormatFloat(x, 'f', -1, 64))
		case string:
			q.Set(k, x)
		}
	}
	return q.Encode()
}

// floatPrefix matches the longest leading float literal, the way browsers'
// parseFloat reads "3abc" as 3.
var floatPrefix = regexp.MustCompile(`^[+-]?(Infinity|\d+\.?\d*(?:[eE][+-]?\d+)?|\.\d+(?:[eE][+-]?\d+)?)`)

func parseFloatPrefix(raw string) (float64, bool) {
	m := floatPrefix.FindString(strings.TrimLeft(raw, " \t\n\r\f\v"))
	if m == "" {
		return 0, false
	}
	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// out-of-range literals still parse to ±Inf
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f, true
		}
		return 0, false
	}
	return f, true
}

const memoLimit = 512

// Resolver memoizes Resolve for one defaults set, keyed by the raw query string.
type Resolver struct {
	defaults Defaults

	mu   sync.Mutex
	memo map[string]Values
}

func NewResolver(defaults Defaults) *Resolver {
	return &Resolver{defaults: defaults, memo: make(map[string]Values)}
}

func (r *Resolver) Defaults() Defaults { return r.defaults }

// Resolve parses rawQuery and reconciles it with the resolver's defaults.
// Callers must not mutate the returned Values.
func (r *Resolver) Resolve(rawQuery string) Values {
	rawQuery = strings.TrimPrefix(rawQuery, "?")

	r.mu.Lock()
	if v, ok := r.memo[rawQuery]; ok {
		r.mu.Unlock()
		return v
	}
	r.mu.Unlock()

	// malformed pairs are dropped; the rest still apply
	query, _ := url.ParseQuery(rawQuery)
	v := Resolve(query, r.defaults)

	r.mu.Lock()
	if len(r.memo) >= memoLimit {
		r.memo = make(map[string]Values)
	}
	r.memo[rawQuery] = v
	r.mu.Unlock()
	return v
}

// Encode renders values relative to the resolver's defaults
func (r *Resolver) Encode(values Values) string {
	return Encode(values, r.defaults)
}
