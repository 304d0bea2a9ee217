package numeric

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// amountCleaner strips presentation characters users type into amount fields.
var amountCleaner = strings.NewReplacer("$", "", ",", "", "%", "", "_", "", " ", "", "\t", "")

func cleanAmount(raw string) string {
	return amountCleaner.Replace(strings.TrimSpace(raw))
}

// MaxAmount bounds the magnitude of any parsed amount. Larger inputs are
// treated as unparseable so a crafted exponent cannot blow up decimal math.
const MaxAmount = 1e15

// ParseAmount converts user text such as "$1,250.50" or "7%" into a float.
// Empty or unparseable text yields 0; the result is never NaN or infinite.
func ParseAmount(raw string) float64 {
	v, _ := ParseAmountOK(raw)
	return v
}

// ParseAmountOK is ParseAmount that also reports whether the text held a number.
func ParseAmountOK(raw string) (float64, bool) {
	s := cleanAmount(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > MaxAmount {
		return 0, false
	}
	return v, true
}

// ParseDecimal is the decimal counterpart of ParseAmount. It accepts exactly
// the text ParseAmountOK accepts.
func ParseDecimal(raw string) decimal.Decimal {
	v, ok := ParseAmountOK(raw)
	if !ok {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleanAmount(raw))
	if err != nil || d.Exponent() < minExponent {
		// the float already absorbed any extreme negative exponent
		return decimal.NewFromFloat(v)
	}
	return d
}

// minExponent is the smallest decimal exponent kept as is. Rounding a decimal
// rescales it, which costs time proportional to the exponent.
const minExponent = -30

var maxAmountDecimal = decimal.NewFromFloat(MaxAmount)

// boundDecimal zeroes decimals outside MaxAmount or with extreme exponents.
func boundDecimal(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	if d.Exponent() < minExponent || int64(d.NumDigits())+int64(d.Exponent()) > 16 {
		return decimal.Zero
	}
	if d.Abs().GreaterThan(maxAmountDecimal) {
		return decimal.Zero
	}
	return d
}

// Coerce turns any loosely typed input value into a finite float64.
// Values that cannot be interpreted as a number become 0.
func Coerce(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return Finite(x)
	case float32:
		return Finite(float64(x))
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		return ParseAmount(x)
	case json.Number:
		return ParseAmount(x.String())
	case decimal.Decimal:
		return Finite(x.InexactFloat64())
	case *decimal.Decimal:
		if x == nil {
			return 0
		}
		return Finite(x.InexactFloat64())
	default:
		return 0
	}
}

// CoerceDecimal converts a loosely typed value into a decimal, keeping full
// precision for string and decimal inputs. Magnitudes above MaxAmount become 0.
func CoerceDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case string:
		return ParseDecimal(x)
	case json.Number:
		return ParseDecimal(x.String())
	case decimal.Decimal:
		return boundDecimal(x)
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		return boundDecimal(*x)
	default:
		return boundDecimal(decimal.NewFromFloat(Coerce(v)))
	}
}
