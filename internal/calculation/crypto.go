package calculation

import (
	"fmt"

	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/rgehrsitz/finlit/internal/numeric"
	"github.com/shopspring/decimal"
)

// CryptoBand is the recommended crypto share of a portfolio, in percent.
type CryptoBand struct {
	Min, Max float64
}

// CryptoBands by risk tolerance.
var CryptoBands = map[domain.RiskTolerance]CryptoBand{
	domain.RiskConservative: {Min: 0, Max: 2},
	domain.RiskModerate:     {Min: 2, Max: 5},
	domain.RiskAggressive:   {Min: 5, Max: 10},
}

// cryptoDiversifiedHHI treats an even split across five coins as fully
// diversified.
const cryptoDiversifiedHHI = 10000.0 / 5

// RecommendCryptoAllocation sizes a crypto sleeve for the investor's risk
// tolerance and scores how concentrated the current sleeve is.
func (e *Engine) RecommendCryptoAllocation(in domain.CryptoInput) domain.CryptoResult {
	band, ok := CryptoBands[in.RiskTolerance]
	if !ok {
		band = CryptoBands[domain.RiskModerate]
	}

	total := nonNegative(in.PortfolioValue)
	current := decimal.Zero
	for _, h := range in.CryptoHoldings {
		current = current.Add(nonNegative(h.Value))
	}

	sleeveScore := DiversificationScore(BucketPercentages(in.CryptoHoldings, BySymbol), 10000, cryptoDiversifiedHHI)

	result := domain.CryptoResult{
		RecommendedMinPercent: band.Min,
		RecommendedMaxPercent: band.Max,
		RecommendedMinAmount:  cents(total.Mul(decimal.NewFromFloat(band.Min)).Div(hundred)),
		RecommendedMaxAmount:  cents(total.Mul(decimal.NewFromFloat(band.Max)).Div(hundred)),
		CurrentAmount:         cents(current),
		CurrentPercent:        percentOf(current, total).InexactFloat64(),
		ConcentrationScore:    numeric.Round(sleeveScore, 1),
		Action:                domain.ActionHold,
	}
	if !ok && in.RiskTolerance != "" {
		result.Warnings.Add(domain.WarnInvalidInput, fmt.Sprintf("unknown risk tolerance %q; using moderate", in.RiskTolerance))
	}
	if total.LessThanOrEqual(decimal.Zero) {
		result.Warnings.Add(domain.WarnEmptyPortfolio, "portfolio value is zero")
	}

	switch {
	case result.CurrentPercent > band.Max:
		result.Action = domain.ActionSell
		result.Warnings.Add(domain.WarnConcentratedHolding,
			fmt.Sprintf("crypto is %.1f%% of the portfolio, above the %.0f%% ceiling", result.CurrentPercent, band.Max))
	case result.CurrentPercent < band.Min && total.GreaterThan(decimal.Zero):
		result.Action = domain.ActionBuy
	}
	result.Recommendations = cryptoRecommendations(result)

	e.logger().Debugf("crypto: %.2f%% held, band %.0f-%.0f%%, action %s", result.CurrentPercent, band.Min, band.Max, result.Action)
	return result
}

func cryptoRecommendations(r domain.CryptoResult) []string {
	var recs []string
	switch r.Action {
	case domain.ActionSell:
		recs = append(recs, fmt.Sprintf("Reduce crypto to at most %s", r.RecommendedMaxAmount.StringFixed(2)))
	case domain.ActionBuy:
		recs = append(recs, fmt.Sprintf("A position of %s to %s fits your risk tolerance",
			r.RecommendedMinAmount.StringFixed(2), r.RecommendedMaxAmount.StringFixed(2)))
	default:
		recs = append(recs, "Crypto exposure is within the recommended range")
	}
	if r.CurrentAmount.GreaterThan(decimal.Zero) && r.ConcentrationScore < 50 {
		recs = append(recs, "The crypto sleeve is concentrated in one or two coins")
	}
	recs = append(recs, "Only invest in crypto what you can afford to lose entirely")
	return recs
}
