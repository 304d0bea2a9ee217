package calculation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/rgehrsitz/finlit/internal/numeric"
	"github.com/shopspring/decimal"
)

const (
	// ConcentrationTarget is the largest single-holding weight that scores 100.
	ConcentrationTarget = 5.0
	// ConcentrationPenalty is the points lost per percentage point above target.
	ConcentrationPenalty = 2.0
	// ConcentratedHoldingPercent triggers a concentration warning.
	ConcentratedHoldingPercent = 20.0

	unclassified = "unclassified"
)

// DefaultScoreWeights weight asset class, geography, sector and single-name
// concentration 40/25/25/10.
var DefaultScoreWeights = domain.ScoreWeights{
	AssetClass:    0.40,
	Geographic:    0.25,
	Sector:        0.25,
	Concentration: 0.10,
}

func newTaxonomy(name string, buckets ...string) domain.Taxonomy {
	return domain.Taxonomy{
		Name:            name,
		Buckets:         buckets,
		ConcentratedHHI: 10000,
		DiversifiedHHI:  10000 / float64(len(buckets)),
	}
}

// Taxonomies used for diversification scoring. A single bucket scores 0 and
// an even spread across every bucket scores 100.
var (
	AssetClassTaxonomy = newTaxonomy("asset_class",
		string(domain.AssetStocks), string(domain.AssetBonds), string(domain.AssetCash),
		string(domain.AssetRealEstate), string(domain.AssetCommodities))

	SectorTaxonomy = newTaxonomy("sector",
		"technology", "healthcare", "financials", "consumer_discretionary", "consumer_staples",
		"industrials", "energy", "materials", "utilities", "real_estate", "communication_services")

	RegionTaxonomy = newTaxonomy("region",
		"north_america", "europe", "asia_pacific", "emerging_markets")
)

// BucketPercentages groups holdings by key and returns each bucket's share of
// the total value in percent, largest first. Holdings with negative value are
// ignored; a non-positive total yields an empty allocation.
func BucketPercentages(holdings []domain.Holding, key func(domain.Holding) string) domain.Allocation {
	totals := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, h := range holdings {
		if h.Value.LessThanOrEqual(decimal.Zero) {
			continue
		}
		k := strings.TrimSpace(key(h))
		if k == "" {
			k = unclassified
		}
		totals[k] = totals[k].Add(h.Value)
		total = total.Add(h.Value)
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	alloc := make(domain.Allocation, 0, len(totals))
	for bucket, value := range totals {
		alloc = append(alloc, domain.AllocationEntry{
			Bucket:  bucket,
			Percent: value.Div(total).Mul(hundred).InexactFloat64(),
		})
	}
	sort.Slice(alloc, func(i, j int) bool {
		if alloc[i].Percent != alloc[j].Percent {
			return alloc[i].Percent > alloc[j].Percent
		}
		return alloc[i].Bucket < alloc[j].Bucket
	})
	return alloc
}

// Key functions for BucketPercentages.
func ByAssetClass(h domain.Holding) string { return strings.ToLower(string(h.AssetClass)) }
func BySector(h domain.Holding) string     { return strings.ToLower(h.Sector) }
func ByRegion(h domain.Holding) string     { return strings.ToLower(h.Region) }
func BySymbol(h domain.Holding) string     { return strings.ToUpper(h.Symbol) }

// HHI is the Herfindahl–Hirschman index of an allocation in percent points,
// from 10000/n for an even spread up to 10000 for a single bucket.
func HHI(alloc domain.Allocation) float64 {
	var hhi float64
	for _, e := range alloc {
		hhi += e.Percent * e.Percent
	}
	return hhi
}

// DiversificationScore rescales the HHI of an allocation linearly so that the
// concentrated reference point scores 0 and the diversified one scores 100.
func DiversificationScore(alloc domain.Allocation, concentratedHHI, diversifiedHHI float64) float64 {
	if len(alloc) == 0 || concentratedHHI == diversifiedHHI {
		return 0
	}
	score := (concentratedHHI - HHI(alloc)) / (concentratedHHI - diversifiedHHI) * 100
	return numeric.ClampPercent(numeric.Finite(score))
}

// TaxonomyScore scores an allocation against a taxonomy's reference points.
func TaxonomyScore(t domain.Taxonomy, alloc domain.Allocation) float64 {
	return DiversificationScore(alloc, t.ConcentratedHHI, t.DiversifiedHHI)
}

// ConcentrationScore is 100 while the largest holding is at or below the
// target weight and loses two points per percentage point above it.
func ConcentrationScore(largestPercent float64) float64 {
	excess := math.Max(0, largestPercent-ConcentrationTarget)
	return numeric.ClampPercent(100 - excess*ConcentrationPenalty)
}

// OverallScore is the weighted mean of the component scores. Weights are
// normalised by their sum; non-positive totals fall back to the defaults.
func OverallScore(s domain.DiversificationScores, w domain.ScoreWeights) float64 {
	sum := w.AssetClass + w.Geographic + w.Sector + w.Concentration
	if !(sum > 0) {
		w = DefaultScoreWeights
		sum = 1
	}
	overall := (s.AssetClass*w.AssetClass + s.Geographic*w.Geographic +
		s.Sector*w.Sector + s.Concentration*w.Concentration) / sum
	return numeric.ClampPercent(numeric.Finite(overall))
}

// ExpectedReturnAndVolatility returns the allocation-weighted mean return and
// weighted-average volatility, both as fractions. Ignoring correlation makes
// the volatility an upper bound.
func ExpectedReturnAndVolatility(alloc domain.Allocation, m domain.MarketAssumptions) (float64, float64) {
	total := alloc.Total()
	if total <= 0 {
		return 0, 0
	}
	var ret, vol float64
	for _, e := range alloc {
		w := e.Percent / total
		a := m.Asset(domain.AssetClass(e.Bucket))
		ret += w * a.ExpectedReturn
		vol += w * a.Volatility
	}
	return numeric.Finite(ret), numeric.Finite(vol)
}

// AnalyzePortfolio scores diversification, estimates return and risk, and
// plans a rebalance against the target allocation if one is given.
func (e *Engine) AnalyzePortfolio(in domain.PortfolioInput) domain.PortfolioAnalysis {
	var analysis domain.PortfolioAnalysis

	for _, h := range in.Holdings {
		if h.Value.GreaterThan(decimal.Zero) {
			analysis.TotalValue = analysis.TotalValue.Add(h.Value)
		}
	}
	if analysis.TotalValue.LessThanOrEqual(decimal.Zero) {
		analysis.Warnings.Add(domain.WarnEmptyPortfolio, "portfolio has no holdings with a positive value")
		analysis.Recommendations = []string{"Add holdings to analyse diversification"}
		return analysis
	}

	analysis.AssetClassMix = BucketPercentages(in.Holdings, ByAssetClass)
	analysis.SectorMix = BucketPercentages(in.Holdings, BySector)
	analysis.RegionMix = BucketPercentages(in.Holdings, ByRegion)

	if bySymbol := BucketPercentages(in.Holdings, BySymbol); len(bySymbol) > 0 {
		analysis.LargestHolding = bySymbol[0].Bucket
		analysis.LargestPercent = numeric.Round(bySymbol[0].Percent, 2)
	}
	if analysis.LargestPercent > ConcentratedHoldingPercent {
		analysis.Warnings.Add(domain.WarnConcentratedHolding,
			fmt.Sprintf("%s is %.1f%% of the portfolio", analysis.LargestHolding, analysis.LargestPercent))
	}

	scores := domain.DiversificationScores{
		AssetClass:    TaxonomyScore(AssetClassTaxonomy, analysis.AssetClassMix),
		Geographic:    TaxonomyScore(RegionTaxonomy, analysis.RegionMix),
		Sector:        TaxonomyScore(SectorTaxonomy, analysis.SectorMix),
		Concentration: ConcentrationScore(analysis.LargestPercent),
	}
	scores.Overall = OverallScore(scores, e.ScoreWeights)
	analysis.Scores = roundScores(scores)

	ret, vol := ExpectedReturnAndVolatility(analysis.AssetClassMix, e.Rules.Market)
	analysis.ExpectedReturn = numeric.Round(ret*100, 2)
	analysis.ExpectedVolatility = numeric.Round(vol*100, 2)

	if len(in.Targets) > 0 {
		if math.Abs(in.Targets.Total()-100) > 0.01 {
			analysis.Warnings.Add(domain.WarnAllocationTotal,
				fmt.Sprintf("target allocation sums to %.2f%%, not 100%%", in.Targets.Total()))
		}
		settings := in.Rebalance.Apply(e.Rebalance)
		analysis.Trades = PlanRebalance(analysis.AssetClassMix, in.Targets, analysis.TotalValue, settings)
	}

	analysis.Recommendations = portfolioRecommendations(analysis)
	e.logger().Debugf("portfolio: total=%s overall=%.1f return=%.2f%% vol=%.2f%%",
		analysis.TotalValue.StringFixed(2), analysis.Scores.Overall, analysis.ExpectedReturn, analysis.ExpectedVolatility)
	return analysis
}

func roundScores(s domain.DiversificationScores) domain.DiversificationScores {
	return domain.DiversificationScores{
		AssetClass:    numeric.Round(s.AssetClass, 1),
		Geographic:    numeric.Round(s.Geographic, 1),
		Sector:        numeric.Round(s.Sector, 1),
		Concentration: numeric.Round(s.Concentration, 1),
		Overall:       numeric.Round(s.Overall, 1),
	}
}

func portfolioRecommendations(a domain.PortfolioAnalysis) []string {
	var recs []string
	if a.Scores.AssetClass < 50 {
		recs = append(recs, "Spread holdings across more asset classes such as bonds or real estate")
	}
	if a.Scores.Geographic < 50 {
		recs = append(recs, "Add international exposure to reduce home-region risk")
	}
	if a.Scores.Sector < 50 {
		recs = append(recs, "Holdings cluster in few sectors; a broad index fund would even them out")
	}
	if a.LargestPercent > ConcentratedHoldingPercent {
		recs = append(recs, fmt.Sprintf("Trim %s below %.0f%% of the portfolio", a.LargestHolding, ConcentratedHoldingPercent))
	}
	for _, t := range a.Trades {
		if t.Action != domain.ActionHold {
			recs = append(recs, fmt.Sprintf("%s %s of %s to reach %.0f%%", t.Action, t.Amount.StringFixed(2), t.Bucket, t.TargetPercent))
		}
	}
	if len(recs) == 0 {
		recs = append(recs, "Portfolio is well diversified")
	}
	return recs
}
