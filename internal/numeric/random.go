package numeric

import "math"

// Source is the uniform random stream used by all samplers.
// *math/rand.Rand satisfies it; tests inject seeded sources.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// smallestUniform replaces a zero draw so the logarithm stays finite.
const smallestUniform = 1e-12

// SampleNormal draws from N(mean, stdev²) with the Box–Muller transform.
func SampleNormal(src Source, mean, stdev float64) float64 {
	return mean + stdev*standardNormal(src)
}

func standardNormal(src Source) float64 {
	u1 := src.Float64()
	if u1 < smallestUniform {
		u1 = smallestUniform
	}
	u2 := src.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// CorrelatedPair draws two normal variates whose correlation is corr.
// The second variate is corr*a + sqrt(1-corr²)*z for an independent z.
func CorrelatedPair(src Source, meanA, volA, meanB, volB, corr float64) (float64, float64) {
	corr = Clamp(corr, -1, 1)
	a := standardNormal(src)
	z := standardNormal(src)
	b := corr*a + math.Sqrt(1-corr*corr)*z
	return meanA + volA*a, meanB + volB*b
}
