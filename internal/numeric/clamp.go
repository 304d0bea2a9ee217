package numeric

import "math"

// Finite maps NaN and ±Inf to 0.
func Finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// Clamp bounds x to [lo, hi]. NaN clamps to lo.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ClampPercent bounds x to the 0..100 percentage range.
func ClampPercent(x float64) float64 {
	return Clamp(x, 0, 100)
}

// NonNegative returns x, or 0 when x is negative or not finite.
func NonNegative(x float64) float64 {
	x = Finite(x)
	if x < 0 {
		return 0
	}
	return x
}

// Round rounds x to the given number of decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
