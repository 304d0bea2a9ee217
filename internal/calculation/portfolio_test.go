package calculation

import (
	"math/rand"
	"testing"

	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func holding(symbol string, value int64, class domain.AssetClass, sector, region string) domain.Holding {
	return domain.Holding{
		Symbol:     symbol,
		Value:      decimal.NewFromInt(value),
		AssetClass: class,
		Sector:     sector,
		Region:     region,
	}
}

func TestBucketPercentages(t *testing.T) {
	holdings := []domain.Holding{
		holding("VTI", 40000, domain.AssetStocks, "technology", "north_america"),
		holding("BND", 40000, domain.AssetBonds, "", "north_america"),
		holding("VXUS", 20000, domain.AssetStocks, "financials", "europe"),
	}

	mix := BucketPercentages(holdings, ByAssetClass)
	require.Len(t, mix, 2)
	assert.Equal(t, "stocks", mix[0].Bucket)
	assert.InDelta(t, 60, mix[0].Percent, 1e-9)
	assert.InDelta(t, 40, mix[1].Percent, 1e-9)
	assert.InDelta(t, 100, mix.Total(), 1e-9)

	sectors := BucketPercentages(holdings, BySector)
	assert.InDelta(t, 40, sectors.Percent(unclassified), 1e-9, "Missing sector should be bucketed as unclassified")

	assert.Empty(t, BucketPercentages(nil, ByAssetClass))
	assert.Empty(t, BucketPercentages([]domain.Holding{holding("X", -5, domain.AssetCash, "", "")}, ByAssetClass))
}

func TestHHI(t *testing.T) {
	alloc := domain.Allocation{{Bucket: "a", Percent: 60}, {Bucket: "b", Percent: 40}}
	assert.InDelta(t, 5200, HHI(alloc), 1e-9)
}

func TestDiversificationScore(t *testing.T) {
	single := domain.Allocation{{Bucket: "stocks", Percent: 100}}
	even := domain.Allocation{
		{Bucket: "stocks", Percent: 20}, {Bucket: "bonds", Percent: 20}, {Bucket: "cash", Percent: 20},
		{Bucket: "real_estate", Percent: 20}, {Bucket: "commodities", Percent: 20},
	}

	assert.Equal(t, 0.0, TaxonomyScore(AssetClassTaxonomy, single))
	assert.InDelta(t, 100, TaxonomyScore(AssetClassTaxonomy, even), 1e-9)
	assert.Equal(t, 0.0, DiversificationScore(nil, 10000, 2000))
	assert.Equal(t, 0.0, DiversificationScore(even, 2000, 2000), "Equal reference points score zero")
}

func TestDiversificationScore_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		n := 1 + rng.Intn(12)
		var holdings []domain.Holding
		for j := 0; j < n; j++ {
			holdings = append(holdings, domain.Holding{
				Symbol: string(rune('A' + j)),
				Value:  decimal.NewFromInt(int64(1 + rng.Intn(100000))),
			})
		}
		alloc := BucketPercentages(holdings, BySymbol)
		for _, tax := range []domain.Taxonomy{AssetClassTaxonomy, SectorTaxonomy, RegionTaxonomy} {
			score := TaxonomyScore(tax, alloc)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		}
	}
}

func TestTaxonomyReferencePoints(t *testing.T) {
	assert.Len(t, AssetClassTaxonomy.Buckets, 5)
	assert.Len(t, SectorTaxonomy.Buckets, 11)
	assert.Len(t, RegionTaxonomy.Buckets, 4)
	assert.InDelta(t, 2000, AssetClassTaxonomy.DiversifiedHHI, 1e-9)
	assert.InDelta(t, 2500, RegionTaxonomy.DiversifiedHHI, 1e-9)
	assert.InDelta(t, 10000.0/11, SectorTaxonomy.DiversifiedHHI, 1e-9)
}

func TestConcentrationScore(t *testing.T) {
	tests := []struct {
		largest  float64
		expected float64
	}{
		{3, 100},
		{5, 100},
		{10, 90},
		{25, 60},
		{60, 0},
		{100, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, ConcentrationScore(tt.largest), 1e-9, "largest %.0f%%", tt.largest)
	}
}

func TestOverallScore(t *testing.T) {
	s := domain.DiversificationScores{AssetClass: 100, Geographic: 50, Sector: 50, Concentration: 0}
	// 40 + 12.5 + 12.5 + 0
	assert.InDelta(t, 65, OverallScore(s, DefaultScoreWeights), 1e-9)

	doubled := domain.ScoreWeights{AssetClass: 0.8, Geographic: 0.5, Sector: 0.5, Concentration: 0.2}
	assert.InDelta(t, 65, OverallScore(s, doubled), 1e-9, "Weights are normalised by their sum")

	assert.InDelta(t, 65, OverallScore(s, domain.ScoreWeights{}), 1e-9, "Zero weights use the defaults")
}

func TestExpectedReturnAndVolatility(t *testing.T) {
	alloc := domain.Allocation{{Bucket: "stocks", Percent: 60}, {Bucket: "bonds", Percent: 40}}
	ret, vol := ExpectedReturnAndVolatility(alloc, DefaultMarketAssumptions())

	assert.InDelta(t, 0.078, ret, 1e-9)
	assert.InDelta(t, 0.132, vol, 1e-9)

	ret, vol = ExpectedReturnAndVolatility(nil, DefaultMarketAssumptions())
	assert.Zero(t, ret)
	assert.Zero(t, vol)
}

func TestRebalanceAction(t *testing.T) {
	total := dec("10000")
	minimum := dec("100")

	tests := []struct {
		name    string
		current float64
		target  float64
		total   decimal.Decimal
		action  domain.RebalanceAction
		amount  string
	}{
		{"overweight", 70, 60, total, domain.ActionSell, "1000"},
		{"underweight", 50, 60, total, domain.ActionBuy, "1000"},
		{"inside threshold", 62, 60, total, domain.ActionHold, "0"},
		{"exactly at threshold", 65, 60, total, domain.ActionHold, "0"},
		{"trade too small", 70, 60, dec("500"), domain.ActionHold, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, amount := RebalanceAction(tt.current, tt.target, 5, minimum, tt.total)
			assert.Equal(t, tt.action, action)
			assert.True(t, amount.Equal(dec(tt.amount)), "Expected %s, got %s", tt.amount, amount)
		})
	}
}

func TestPlanRebalance(t *testing.T) {
	current := domain.Allocation{{Bucket: "stocks", Percent: 80}, {Bucket: "cash", Percent: 20}}
	targets := domain.Allocation{{Bucket: "stocks", Percent: 60}, {Bucket: "bonds", Percent: 40}}

	trades := PlanRebalance(current, targets, dec("100000"), DefaultRebalanceSettings())
	require.Len(t, trades, 3, "Every bucket in either allocation gets a row")

	byBucket := map[string]domain.RebalanceTrade{}
	for _, tr := range trades {
		byBucket[tr.Bucket] = tr
	}
	assert.Equal(t, domain.ActionBuy, byBucket["bonds"].Action)
	assert.True(t, byBucket["bonds"].Amount.Equal(dec("40000")))
	assert.Equal(t, domain.ActionSell, byBucket["stocks"].Action)
	assert.Equal(t, domain.ActionSell, byBucket["cash"].Action)
	assert.Equal(t, "bonds", trades[0].Bucket, "Largest deviation first")
}

func TestAnalyzePortfolio(t *testing.T) {
	engine := NewEngine()

	t.Run("empty", func(t *testing.T) {
		analysis := engine.AnalyzePortfolio(domain.PortfolioInput{})
		assert.True(t, analysis.Warnings.Has(domain.WarnEmptyPortfolio))
		assert.Zero(t, analysis.Scores.Overall)
	})

	t.Run("single holding", func(t *testing.T) {
		analysis := engine.AnalyzePortfolio(domain.PortfolioInput{
			Holdings: []domain.Holding{holding("AAPL", 50000, domain.AssetStocks, "technology", "north_america")},
		})
		assert.True(t, analysis.Warnings.Has(domain.WarnConcentratedHolding))
		assert.Equal(t, "AAPL", analysis.LargestHolding)
		assert.Equal(t, 100.0, analysis.LargestPercent)
		assert.Zero(t, analysis.Scores.AssetClass)
		assert.Zero(t, analysis.Scores.Concentration)
		assert.Zero(t, analysis.Scores.Overall)
		assert.InDelta(t, 10.0, analysis.ExpectedReturn, 1e-9)
	})

	t.Run("diversified with targets", func(t *testing.T) {
		var holdings []domain.Holding
		sectors := SectorTaxonomy.Buckets
		regions := RegionTaxonomy.Buckets
		for i := 0; i < 22; i++ {
			class := domain.AssetStocks
			if i%2 == 1 {
				class = domain.AssetBonds
			}
			holdings = append(holdings, holding(string(rune('A'+i)), 1000, class, sectors[i%len(sectors)], regions[i%len(regions)]))
		}
		analysis := engine.AnalyzePortfolio(domain.PortfolioInput{
			Holdings: holdings,
			Targets:  domain.Allocation{{Bucket: "stocks", Percent: 60}, {Bucket: "bonds", Percent: 30}},
		})

		assert.True(t, analysis.TotalValue.Equal(dec("22000")))
		assert.True(t, analysis.Warnings.Has(domain.WarnAllocationTotal), "Targets sum to 90%")
		assert.False(t, analysis.Warnings.Has(domain.WarnConcentratedHolding))
		assert.InDelta(t, 100, analysis.Scores.Sector, 0.1)
		assert.Greater(t, analysis.Scores.Geographic, 90.0)
		assert.Greater(t, analysis.Scores.Overall, analysis.Scores.AssetClass)
		require.NotEmpty(t, analysis.Trades)
		// bonds are 20 points over, stocks 10 under
		assert.Equal(t, "bonds", analysis.Trades[0].Bucket)
		assert.Equal(t, domain.ActionSell, analysis.Trades[0].Action)
		assert.True(t, analysis.Trades[0].Amount.Equal(dec("4400")), "got %s", analysis.Trades[0].Amount)
	})
}

func TestAnalyzePortfolio_ZeroThresholdRebalancesSmallDrift(t *testing.T) {
	engine := NewEngine()
	in := domain.PortfolioInput{
		Holdings: []domain.Holding{
			holding("VTI", 62000, domain.AssetStocks, "technology", "north_america"),
			holding("BND", 38000, domain.AssetBonds, "financials", "north_america"),
		},
		Targets: domain.Allocation{{Bucket: "stocks", Percent: 60}, {Bucket: "bonds", Percent: 40}},
	}

	byBucket := func(trades []domain.RebalanceTrade) map[string]domain.RebalanceTrade {
		m := map[string]domain.RebalanceTrade{}
		for _, tr := range trades {
			m[tr.Bucket] = tr
		}
		return m
	}

	// two points of drift sits inside the default five point band
	trades := byBucket(engine.AnalyzePortfolio(in).Trades)
	assert.Equal(t, domain.ActionHold, trades["stocks"].Action)
	assert.Equal(t, domain.ActionHold, trades["bonds"].Action)

	zero := 0.0
	in.Rebalance.ThresholdPercent = &zero
	trades = byBucket(engine.AnalyzePortfolio(in).Trades)
	assert.Equal(t, domain.ActionSell, trades["stocks"].Action)
	assert.True(t, trades["stocks"].Amount.Equal(dec("2000")), "got %s", trades["stocks"].Amount)
	assert.Equal(t, domain.ActionBuy, trades["bonds"].Action)

	minimum := dec("5000")
	in.Rebalance.MinimumTrade = &minimum
	trades = byBucket(engine.AnalyzePortfolio(in).Trades)
	assert.Equal(t, domain.ActionHold, trades["stocks"].Action, "The trade is under the minimum")
}
