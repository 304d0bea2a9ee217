package domain

import "github.com/shopspring/decimal"

// Holding is a single position.
type Holding struct {
	Symbol     string          `yaml:"symbol" json:"symbol"`
	Value      decimal.Decimal `yaml:"value" json:"value"`
	AssetClass AssetClass      `yaml:"asset_class" json:"assetClass"`
	Sector     string          `yaml:"sector" json:"sector"`
	Region     string          `yaml:"region" json:"region"`
}

// AllocationEntry is one bucket of an allocation, in whole percent.
type AllocationEntry struct {
	Bucket  string  `yaml:"bucket" json:"bucket"`
	Percent float64 `yaml:"percent" json:"percent"`
}

// Allocation is an ordered list of buckets.
type Allocation []AllocationEntry

// Total sums the bucket percentages.
func (a Allocation) Total() float64 {
	var total float64
	for _, e := range a {
		total += e.Percent
	}
	return total
}

// Percent returns the percentage for a bucket, or 0.
func (a Allocation) Percent(bucket string) float64 {
	for _, e := range a {
		if e.Bucket == bucket {
			return e.Percent
		}
	}
	return 0
}

// Taxonomy is a way of bucketing holdings together with the HHI reference
// points used to score diversification across it.
type Taxonomy struct {
	Name            string   `json:"name"`
	Buckets         []string `json:"buckets"`
	ConcentratedHHI float64  `json:"concentratedHhi"`
	DiversifiedHHI  float64  `json:"diversifiedHhi"`
}

// ScoreWeights combines the component scores into an overall score.
type ScoreWeights struct {
	AssetClass    float64 `yaml:"asset_class" json:"assetClass"`
	Geographic    float64 `yaml:"geographic" json:"geographic"`
	Sector        float64 `yaml:"sector" json:"sector"`
	Concentration float64 `yaml:"concentration" json:"concentration"`
}

// DiversificationScores are all on a 0..100 scale.
type DiversificationScores struct {
	AssetClass    float64 `json:"assetClass"`
	Geographic    float64 `json:"geographic"`
	Sector        float64 `json:"sector"`
	Concentration float64 `json:"concentration"`
	Overall       float64 `json:"overall"`
}

// RebalanceAction is the trade direction for one bucket.
type RebalanceAction string

const (
	ActionBuy  RebalanceAction = "BUY"
	ActionSell RebalanceAction = "SELL"
	ActionHold RebalanceAction = "HOLD"
)

// RebalanceTrade is the recommendation for one bucket.
type RebalanceTrade struct {
	Bucket         string          `json:"bucket"`
	CurrentPercent float64         `json:"currentPercent"`
	TargetPercent  float64         `json:"targetPercent"`
	Deviation      float64         `json:"deviation"`
	Amount         decimal.Decimal `json:"amount"`
	Action         RebalanceAction `json:"action"`
}

// RebalanceSettings gate when a trade is worth making.
type RebalanceSettings struct {
	ThresholdPercent float64         `yaml:"threshold_percent" json:"thresholdPercent"`
	MinimumTrade     decimal.Decimal `yaml:"minimum_trade" json:"minimumTrade"`
}

// RebalanceOverrides replace individual engine rebalance settings. A nil
// field keeps the engine's value; an explicit zero is honored.
type RebalanceOverrides struct {
	ThresholdPercent *float64         `yaml:"threshold_percent" json:"thresholdPercent,omitempty"`
	MinimumTrade     *decimal.Decimal `yaml:"minimum_trade" json:"minimumTrade,omitempty"`
}

// Apply returns base with the set overrides in place.
func (o RebalanceOverrides) Apply(base RebalanceSettings) RebalanceSettings {
	if o.ThresholdPercent != nil {
		base.ThresholdPercent = *o.ThresholdPercent
	}
	if o.MinimumTrade != nil {
		base.MinimumTrade = *o.MinimumTrade
	}
	return base
}

// PortfolioInput is a set of holdings with an optional target allocation
// by asset class.
type PortfolioInput struct {
	Holdings  []Holding          `yaml:"holdings" json:"holdings"`
	Targets   Allocation         `yaml:"targets" json:"targets"`
	Rebalance RebalanceOverrides `yaml:"rebalance" json:"rebalance"`
}

// PortfolioAnalysis is the full risk and diversification report.
type PortfolioAnalysis struct {
	TotalValue         decimal.Decimal       `json:"totalValue"`
	AssetClassMix      Allocation            `json:"assetClassMix"`
	SectorMix          Allocation            `json:"sectorMix"`
	RegionMix          Allocation            `json:"regionMix"`
	LargestHolding     string                `json:"largestHolding"`
	LargestPercent     float64               `json:"largestPercent"`
	Scores             DiversificationScores `json:"scores"`
	ExpectedReturn     float64               `json:"expectedReturn"`
	ExpectedVolatility float64               `json:"expectedVolatility"`
	Trades             []RebalanceTrade      `json:"trades,omitempty"`
	Warnings           Warnings              `json:"warnings,omitempty"`
	Recommendations    []string              `json:"recommendations,omitempty"`
}
