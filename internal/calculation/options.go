package calculation

import (
	"fmt"
	"math"
	"sort"

	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/rgehrsitz/finlit/internal/numeric"
)

const (
	ContractMultiplier  = 100
	DaysPerYear         = 365.0
	DefaultPayoffPoints = 61
	MaxPayoffPoints     = 1001
	DefaultPayoffRange  = 0.30
)

// BlackScholes prices a European option on an asset paying a continuous
// dividend yield q. T is in years; r, sigma and q are annual fractions.
// Theta is per calendar day, vega and rho per one percentage point.
//
// Expired or degenerate inputs return intrinsic value with limiting deltas.
func BlackScholes(spot, strike, T, r, sigma, q float64, isCall bool) domain.OptionQuote {
	if T <= 0 || sigma <= 0 || spot <= 0 || strike <= 0 || !finiteAll(spot, strike, T, r, sigma, q) {
		return intrinsicQuote(spot, strike, isCall)
	}

	sqrtT := math.Sqrt(T)
	d1 := (math.Log(spot/strike) + (r-q+sigma*sigma/2)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT
	divDisc := math.Exp(-q * T)
	rateDisc := math.Exp(-r * T)
	pdf := numeric.NormalPDF(d1)

	var quote domain.OptionQuote
	quote.Gamma = divDisc * pdf / (spot * sigma * sqrtT)
	quote.Vega = spot * divDisc * pdf * sqrtT / 100
	decay := -spot * pdf * sigma * divDisc / (2 * sqrtT)

	if isCall {
		nd1, nd2 := numeric.NormalCDF(d1), numeric.NormalCDF(d2)
		quote.Price = spot*divDisc*nd1 - strike*rateDisc*nd2
		quote.Delta = divDisc * nd1
		quote.Theta = (decay - r*strike*rateDisc*nd2 + q*spot*divDisc*nd1) / DaysPerYear
		quote.Rho = strike * T * rateDisc * nd2 / 100
	} else {
		nd1, nd2 := numeric.NormalCDF(-d1), numeric.NormalCDF(-d2)
		quote.Price = strike*rateDisc*nd2 - spot*divDisc*nd1
		quote.Delta = -divDisc * nd1
		quote.Theta = (decay + r*strike*rateDisc*nd2 - q*spot*divDisc*nd1) / DaysPerYear
		quote.Rho = -strike * T * rateDisc * nd2 / 100
	}
	quote.Price = math.Max(0, quote.Price)
	return sanitizeQuote(quote)
}

func intrinsicQuote(spot, strike float64, isCall bool) domain.OptionQuote {
	spot, strike = numeric.NonNegative(spot), numeric.NonNegative(strike)
	var q domain.OptionQuote
	if isCall {
		q.Price = math.Max(0, spot-strike)
		if spot > strike {
			q.Delta = 1
		}
	} else {
		q.Price = math.Max(0, strike-spot)
		if spot < strike {
			q.Delta = -1
		}
	}
	return q
}

func sanitizeQuote(q domain.OptionQuote) domain.OptionQuote {
	q.Price = numeric.Finite(q.Price)
	q.Delta = numeric.Finite(q.Delta)
	q.Gamma = numeric.Finite(q.Gamma)
	q.Theta = numeric.Finite(q.Theta)
	q.Vega = numeric.Finite(q.Vega)
	q.Rho = numeric.Finite(q.Rho)
	return q
}

func finiteAll(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// LegCount is the number of legs a strategy kind needs, or 0 if unknown.
func LegCount(kind domain.StrategyKind) int {
	switch kind {
	case domain.StrategyLongCall, domain.StrategyLongPut, domain.StrategyShortCall, domain.StrategyShortPut:
		return 1
	case domain.StrategyBullCallSpread, domain.StrategyBearCallSpread, domain.StrategyBullPutSpread, domain.StrategyBearPutSpread:
		return 2
	}
	return 0
}

// IsBullish reports whether a strategy profits from a rising underlying.
func IsBullish(kind domain.StrategyKind) bool {
	switch kind {
	case domain.StrategyLongCall, domain.StrategyShortPut, domain.StrategyBullCallSpread, domain.StrategyBullPutSpread:
		return true
	}
	return false
}

// CanonicalLegs orders the legs by strike and sets their type and direction
// from the strategy kind, so a bull call spread is always long the lower
// strike and short the higher one.
func CanonicalLegs(kind domain.StrategyKind, legs []domain.OptionLeg) ([]domain.OptionLeg, error) {
	n := LegCount(kind)
	if n == 0 {
		return nil, &CalculationError{Operation: "options", Message: fmt.Sprintf("unknown strategy %q", kind)}
	}
	if len(legs) < n {
		return nil, &CalculationError{Operation: "options", Message: fmt.Sprintf("%s needs %d legs, got %d", kind, n, len(legs))}
	}
	out := append([]domain.OptionLeg(nil), legs[:n]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Strike < out[j].Strike })

	set := func(i int, call, long bool) {
		out[i].IsCall = call
		out[i].IsLong = long
	}
	switch kind {
	case domain.StrategyLongCall:
		set(0, true, true)
	case domain.StrategyShortCall:
		set(0, true, false)
	case domain.StrategyLongPut:
		set(0, false, true)
	case domain.StrategyShortPut:
		set(0, false, false)
	case domain.StrategyBullCallSpread:
		set(0, true, true)
		set(1, true, false)
	case domain.StrategyBearCallSpread:
		set(0, true, false)
		set(1, true, true)
	case domain.StrategyBullPutSpread:
		set(0, false, true)
		set(1, false, false)
	case domain.StrategyBearPutSpread:
		set(0, false, false)
		set(1, false, true)
	}
	return out, nil
}

func sign(long bool) float64 {
	if long {
		return 1
	}
	return -1
}

func legPayoff(leg domain.OptionLeg, price float64) float64 {
	var intrinsic float64
	if leg.IsCall {
		intrinsic = math.Max(0, price-leg.Strike)
	} else {
		intrinsic = math.Max(0, leg.Strike-price)
	}
	return sign(leg.IsLong) * (intrinsic - leg.Premium)
}

func multiplier(contracts int) float64 {
	if contracts <= 0 {
		contracts = 1
	}
	return float64(ContractMultiplier * contracts)
}

// PayoffDiagram samples the strategy's profit at expiry, in dollars, over
// spot ± rangePercent. Points default to 61 and are capped at 1001.
func PayoffDiagram(s domain.OptionStrategy, rangePercent float64, points int) []domain.PayoffPoint {
	spot := s.Market.Spot
	if spot <= 0 || len(s.Legs) == 0 {
		return nil
	}
	if rangePercent <= 0 || !finiteAll(rangePercent) {
		rangePercent = DefaultPayoffRange
	}
	rangePercent = math.Min(rangePercent, 1)
	if points <= 1 {
		points = DefaultPayoffPoints
	}
	if points > MaxPayoffPoints {
		points = MaxPayoffPoints
	}

	mult := multiplier(s.Market.Contracts)
	low, high := spot*(1-rangePercent), spot*(1+rangePercent)
	step := (high - low) / float64(points-1)
	diagram := make([]domain.PayoffPoint, points)
	for i := range diagram {
		price := low + step*float64(i)
		var profit float64
		for _, leg := range s.Legs {
			profit += legPayoff(leg, price)
		}
		diagram[i] = domain.PayoffPoint{Price: numeric.Round(price, 2), Profit: numeric.Round(profit*mult, 2)}
	}
	return diagram
}

// ProbabilityOfProfit approximates the chance, in percent, that the
// underlying finishes on the profitable side of the break-even. It measures
// the log distance to break-even in units of sigma*sqrt(T) and ignores drift.
func ProbabilityOfProfit(kind domain.StrategyKind, spot, breakEven, T, sigma float64) float64 {
	if spot <= 0 || breakEven <= 0 || T <= 0 || sigma <= 0 {
		above := spot > breakEven
		if above == IsBullish(kind) {
			return 100
		}
		return 0
	}
	z := math.Log(breakEven/spot) / (sigma * math.Sqrt(T))
	p := numeric.NormalCDF(z)
	if IsBullish(kind) {
		p = 1 - p
	}
	return numeric.Round(numeric.ClampPercent(100*p), 2)
}

type strategyBounds struct {
	maxProfit, maxLoss             float64
	profitUnlimited, lossUnlimited bool
	breakEven                      float64
}

// bounds derives the per-share extremes from the canonical legs.
func bounds(kind domain.StrategyKind, legs []domain.OptionLeg) strategyBounds {
	var b strategyBounds
	switch kind {
	case domain.StrategyLongCall:
		k, p := legs[0].Strike, legs[0].Premium
		b = strategyBounds{maxLoss: p, profitUnlimited: true, breakEven: k + p}
	case domain.StrategyShortCall:
		k, p := legs[0].Strike, legs[0].Premium
		b = strategyBounds{maxProfit: p, lossUnlimited: true, breakEven: k + p}
	case domain.StrategyLongPut:
		k, p := legs[0].Strike, legs[0].Premium
		b = strategyBounds{maxProfit: k - p, maxLoss: p, breakEven: k - p}
	case domain.StrategyShortPut:
		k, p := legs[0].Strike, legs[0].Premium
		b = strategyBounds{maxProfit: p, maxLoss: k - p, breakEven: k - p}
	default:
		lo, hi := legs[0], legs[1]
		width := hi.Strike - lo.Strike
		switch kind {
		case domain.StrategyBullCallSpread:
			debit := lo.Premium - hi.Premium
			b = strategyBounds{maxProfit: width - debit, maxLoss: debit, breakEven: lo.Strike + debit}
		case domain.StrategyBearCallSpread:
			credit := lo.Premium - hi.Premium
			b = strategyBounds{maxProfit: credit, maxLoss: width - credit, breakEven: lo.Strike + credit}
		case domain.StrategyBullPutSpread:
			credit := hi.Premium - lo.Premium
			b = strategyBounds{maxProfit: credit, maxLoss: width - credit, breakEven: hi.Strike - credit}
		case domain.StrategyBearPutSpread:
			debit := hi.Premium - lo.Premium
			b = strategyBounds{maxProfit: width - debit, maxLoss: debit, breakEven: hi.Strike - debit}
		}
	}
	return b
}

// AnalyzeStrategy prices each leg, nets the Greeks and premium over the
// position and derives its risk profile at expiry. Legs without a premium
// are filled in at their theoretical price.
func (e *Engine) AnalyzeStrategy(s domain.OptionStrategy) (domain.StrategyResult, error) {
	legs, err := CanonicalLegs(s.Kind, s.Legs)
	if err != nil {
		return domain.StrategyResult{}, err
	}

	m := s.Market
	T := float64(m.DaysToExpiration) / DaysPerYear
	mult := multiplier(m.Contracts)
	result := domain.StrategyResult{Kind: s.Kind}
	if T <= 0 || m.ImpliedVolatility <= 0 || m.Spot <= 0 {
		result.Warnings.Add(domain.WarnDegenerateOption, "expired or zero-volatility inputs; prices are intrinsic values")
	}

	var netDebit, value float64
	for i := range legs {
		q := BlackScholes(m.Spot, legs[i].Strike, T, m.RiskFreeRate, m.ImpliedVolatility, m.DividendYield, legs[i].IsCall)
		if !(legs[i].Premium > 0) {
			legs[i].Premium = q.Price
		}
		sg := sign(legs[i].IsLong)
		netDebit += sg * legs[i].Premium
		value += sg * q.Price
		result.Greeks.Delta += sg * q.Delta * mult
		result.Greeks.Gamma += sg * q.Gamma * mult
		result.Greeks.Theta += sg * q.Theta * mult
		result.Greeks.Vega += sg * q.Vega * mult
		result.Greeks.Rho += sg * q.Rho * mult
		result.LegQuotes = append(result.LegQuotes, q)
	}
	result.NetPremium = numeric.Round(netDebit*mult, 2)
	result.TheoreticalValue = numeric.Round(value*mult, 2)

	b := bounds(s.Kind, legs)
	result.MaxProfit = numeric.Round(b.maxProfit*mult, 2)
	result.MaxLoss = numeric.Round(b.maxLoss*mult, 2)
	result.MaxProfitUnlimited = b.profitUnlimited
	result.MaxLossUnlimited = b.lossUnlimited
	if b.profitUnlimited {
		result.MaxProfit = 0
	}
	if b.lossUnlimited {
		result.MaxLoss = 0
		result.Warnings.Add(domain.WarnUnlimitedRisk, "losses are unlimited if the underlying rallies")
	}
	result.BreakEven = numeric.Round(b.breakEven, 2)
	result.ProbabilityOfProfit = ProbabilityOfProfit(s.Kind, m.Spot, b.breakEven, T, m.ImpliedVolatility)

	canonical := domain.OptionStrategy{Kind: s.Kind, Legs: legs, Market: m}
	result.Payoff = PayoffDiagram(canonical, DefaultPayoffRange, DefaultPayoffPoints)
	result.Insights = optionInsights(result)

	e.logger().Debugf("options: %s net premium %.2f break-even %.2f pop %.1f%%",
		s.Kind, result.NetPremium, result.BreakEven, result.ProbabilityOfProfit)
	return result, nil
}

func optionInsights(r domain.StrategyResult) []string {
	var out []string
	if r.NetPremium >= 0 {
		out = append(out, fmt.Sprintf("Opening the position costs $%.2f", r.NetPremium))
	} else {
		out = append(out, fmt.Sprintf("Opening the position collects $%.2f", -r.NetPremium))
	}
	if r.MaxProfitUnlimited {
		out = append(out, "Profit is unlimited above the break-even")
	}
	if r.Greeks.Theta < 0 {
		out = append(out, fmt.Sprintf("Time decay costs about $%.2f per day", -r.Greeks.Theta))
	} else if r.Greeks.Theta > 0 {
		out = append(out, fmt.Sprintf("Time decay earns about $%.2f per day", r.Greeks.Theta))
	}
	out = append(out, fmt.Sprintf("Estimated probability of profit: %.1f%% (log-distance approximation)", r.ProbabilityOfProfit))
	return out
}
