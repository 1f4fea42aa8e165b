package effectchain

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

var (
	// ErrSyntax is returned for malformed parameter strings.
	ErrSyntax = errors.New("effectchain: parameter syntax error")
	// ErrUnknownParam is returned when a parameter is not accepted by an effect.
	ErrUnknownParam = errors.New("effectchain: unknown parameter")
)

// Params holds the parsed parameters for a single effect.
type Params struct {
	Num map[string]float64
	Str map[string]string
}

// GetNum safely extracts a numeric parameter, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || !core.IsFinite(v) {
		return def
	}

	return v
}

// GetInt extracts a whole-number parameter. Fractional values are an error
// so that "order=2.5" is not silently truncated.
func (p Params) GetInt(key string, def int) (int, error) {
	v, ok := p.Num[key]
	if !ok {
		return def, nil
	}

	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s must be a whole number: %g", ErrSyntax, key, v)
	}

	return int(v), nil
}

// GetBool reads a numeric flag: any non-zero value is true.
func (p Params) GetBool(key string, def bool) bool {
	v, ok := p.Num[key]
	if !ok {
		return def
	}
	return v != 0
}

// GetStr returns a string parameter, or def if missing.
func (p Params) GetStr(key, def string) string {
	if v, ok := p.Str[key]; ok {
		return v
	}
	return def
}

// Keys returns all parameter names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p.Num)+len(p.Str))
	for k := range p.Num {
		keys = append(keys, k)
	}
	for k := range p.Str {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge returns p overlaid with override. Neither input is modified.
func (p Params) Merge(override Params) Params {
	out := Params{Num: map[string]float64{}, Str: map[string]string{}}
	for _, src := range []Params{p, override} {
		for k, v := range src.Num {
			delete(out.Str, k)
			out.Num[k] = v
		}
		for k, v := range src.Str {
			delete(out.Num, k)
			out.Str[k] = v
		}
	}
	return out
}

// Check returns ErrUnknownParam for the first key not in allowed.
func (p Params) Check(allowed ...string) error {
	for _, k := range p.Keys() {
		found := false
		for _, a := range allowed {
			if k == a {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %q (accepted: %s)", ErrUnknownParam, k, strings.Join(allowed, ", "))
		}
	}
	return nil
}

// ParseParams parses a "name=value, name='text'  # comment" string. Values
// are numbers unless quoted with ' or ". An empty string or a bare comment
// yields empty Params.
func ParseParams(s string) (Params, error) {
	p := Params{Num: map[string]float64{}, Str: map[string]string{}}

	body, err := stripComment(s)
	if err != nil {
		return Params{}, err
	}

	for _, field := range splitUnquoted(body, ',') {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		key, raw, ok := strings.Cut(field, "=")
		key = strings.TrimSpace(key)
		raw = strings.TrimSpace(raw)
		if !ok || key == "" || raw == "" {
			return Params{}, fmt.Errorf("%w: expected name=value, got %q", ErrSyntax, field)
		}

		if _, dup := p.Num[key]; dup {
			return Params{}, fmt.Errorf("%w: duplicate parameter %q", ErrSyntax, key)
		}
		if _, dup := p.Str[key]; dup {
			return Params{}, fmt.Errorf("%w: duplicate parameter %q", ErrSyntax, key)
		}

		if q := raw[0]; q == '\'' || q == '"' {
			if len(raw) < 2 || raw[len(raw)-1] != q {
				return Params{}, fmt.Errorf("%w: unterminated string for %q", ErrSyntax, key)
			}
			p.Str[key] = raw[1 : len(raw)-1]
			continue
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || !core.IsFinite(v) {
			return Params{}, fmt.Errorf("%w: %s=%s is not a finite number", ErrSyntax, key, raw)
		}
		p.Num[key] = v
	}

	return p, nil
}

// splitUnquoted splits s at every sep outside ' or " quotes.
func splitUnquoted(s string, sep byte) []string {
	var (
		parts []string
		quote byte
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// stripComment drops everything from the first '#' outside quotes.
func stripComment(s string) (string, error) {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '#':
			return s[:i], nil
		}
	}

	if quote != 0 {
		return "", fmt.Errorf("%w: unterminated quote", ErrSyntax)
	}

	return s, nil
}
