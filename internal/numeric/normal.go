package numeric

import "math"

// Abramowitz and Stegun 7.1.26 coefficients. Maximum absolute error of the
// approximation is 1.5e-7.
const (
	erfA1 = 0.254829592
	erfA2 = -0.284496736
	erfA3 = 1.421413741
	erfA4 = -1.453152027
	erfA5 = 1.061405429
	erfP  = 0.3275911
)

// Erf approximates the error function. It is odd by construction, so
// NormalCDF(-x) == 1 - NormalCDF(x) holds to floating point precision.
func Erf(x float64) float64 {
	sign := 1.0
	if x < 0 {
		sign = -1
		x = -x
	}
	t := 1 / (1 + erfP*x)
	y := 1 - (((((erfA5*t+erfA4)*t)+erfA3)*t+erfA2)*t+erfA1)*t*math.Exp(-x*x)
	return sign * y
}

// NormalCDF is the standard normal cumulative distribution (approximate).
func NormalCDF(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return 0.5 * (1 + Erf(x/math.Sqrt2))
}

// NormalPDF is the standard normal density.
func NormalPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}
