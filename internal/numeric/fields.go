package numeric

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Fields is a flat bag of named calculator inputs as they arrive from a form,
// a command line or a JSON body. Every accessor parses defensively.
type Fields map[string]any

// Has reports whether the field is present with a non-empty value.
func (f Fields) Has(name string) bool {
	v, ok := f[name]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// Float returns the named field as a float, or def when absent.
func (f Fields) Float(name string, def float64) float64 {
	if !f.Has(name) {
		return def
	}
	if s, ok := f[name].(string); ok {
		if v, parsed := ParseAmountOK(s); parsed {
			return v
		}
		return 0
	}
	return Coerce(f[name])
}

// Decimal returns the named field as a decimal, or def when absent.
func (f Fields) Decimal(name string, def decimal.Decimal) decimal.Decimal {
	if !f.Has(name) {
		return def
	}
	return CoerceDecimal(f[name])
}

// Int returns the named field truncated to an int, or def when absent.
func (f Fields) Int(name string, def int) int {
	if !f.Has(name) {
		return def
	}
	v := f.Float(name, float64(def))
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int(v)
}

// String returns the named field as trimmed text, or def when absent.
func (f Fields) String(name string, def string) string {
	if !f.Has(name) {
		return def
	}
	switch v := f[name].(type) {
	case string:
		return strings.TrimSpace(v)
	default:
		return fmt.Sprint(v)
	}
}

// Bool returns the named field as a boolean, or def when absent.
// Strings "true", "yes", "on" and "1" are true.
func (f Fields) Bool(name string, def bool) bool {
	if !f.Has(name) {
		return def
	}
	switch v := f[name].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "on", "1", "y":
			return true
		default:
			return false
		}
	default:
		return Coerce(v) != 0
	}
}

// Floats returns a list field; comma separated strings are split.
func (f Fields) Floats(name string) []float64 {
	if !f.Has(name) {
		return nil
	}
	switch v := f[name].(type) {
	case []float64:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = Finite(x)
		}
		return out
	case []any:
		out := make([]float64, 0, len(v))
		for _, x := range v {
			out = append(out, Coerce(x))
		}
		return out
	case []string:
		out := make([]float64, 0, len(v))
		for _, x := range v {
			out = append(out, ParseAmount(x))
		}
		return out
	case string:
		parts := strings.Split(v, ",")
		out := make([]float64, 0, len(parts))
		for _, p := range parts {
			if strings.TrimSpace(p) == "" {
				continue
			}
			out = append(out, ParseAmount(p))
		}
		return out
	default:
		return []float64{Coerce(v)}
	}
}

// Strings returns the raw text of every field, for validation.
func (f Fields) Strings() map[string]string {
	out := make(map[string]string, len(f))
	for k, v := range f {
		switch x := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = x
		case decimal.Decimal:
			out[k] = x.String()
		case float64:
			out[k] = fmt.Sprintf("%g", x)
		default:
			out[k] = fmt.Sprint(x)
		}
	}
	return out
}
