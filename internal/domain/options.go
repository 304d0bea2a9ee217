package domain

// OptionLeg is one contract position. Premium is per share.
type OptionLeg struct {
	Strike  float64 `yaml:"strike" json:"strike"`
	Premium float64 `yaml:"premium" json:"premium"`
	IsCall  bool    `yaml:"is_call" json:"isCall"`
	IsLong  bool    `yaml:"is_long" json:"isLong"`
}

// MarketParams are the pricing inputs shared by every leg. Volatility, rates
// and yield are annual fractions.
type MarketParams struct {
	Spot              float64 `yaml:"spot" json:"spot"`
	DaysToExpiration  int     `yaml:"days_to_expiration" json:"daysToExpiration"`
	ImpliedVolatility float64 `yaml:"implied_volatility" json:"impliedVolatility"`
	RiskFreeRate      float64 `yaml:"risk_free_rate" json:"riskFreeRate"`
	DividendYield     float64 `yaml:"dividend_yield" json:"dividendYield"`
	Contracts         int     `yaml:"contracts" json:"contracts"`
}

// Greeks are option sensitivities. Theta is per calendar day, Vega per one
// volatility point and Rho per one rate point.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// OptionQuote is a theoretical price with its Greeks.
type OptionQuote struct {
	Price float64 `json:"price"`
	Greeks
}

// StrategyKind names the supported option strategies.
type StrategyKind string

const (
	StrategyLongCall       StrategyKind = "long_call"
	StrategyLongPut        StrategyKind = "long_put"
	StrategyShortCall      StrategyKind = "short_call"
	StrategyShortPut       StrategyKind = "short_put"
	StrategyBullCallSpread StrategyKind = "bull_call_spread"
	StrategyBearCallSpread StrategyKind = "bear_call_spread"
	StrategyBullPutSpread  StrategyKind = "bull_put_spread"
	StrategyBearPutSpread  StrategyKind = "bear_put_spread"
)

// OptionStrategy is one or two legs priced against the same market.
type OptionStrategy struct {
	Kind   StrategyKind `yaml:"kind" json:"kind"`
	Legs   []OptionLeg  `yaml:"legs" json:"legs"`
	Market MarketParams `yaml:"market" json:"market"`
}

// PayoffPoint is the expiry profit or loss at one underlying price.
type PayoffPoint struct {
	Price  float64 `json:"price"`
	Profit float64 `json:"profit"`
}

// StrategyResult is the analysis of a strategy. Dollar amounts include the
// 100-share contract multiplier and the contract count.
type StrategyResult struct {
	Kind                StrategyKind  `json:"kind"`
	LegQuotes           []OptionQuote `json:"legQuotes"`
	NetPremium          float64       `json:"netPremium"`
	TheoreticalValue    float64       `json:"theoreticalValue"`
	Greeks              Greeks        `json:"greeks"`
	MaxProfit           float64       `json:"maxProfit"`
	MaxProfitUnlimited  bool          `json:"maxProfitUnlimited"`
	MaxLoss             float64       `json:"maxLoss"`
	MaxLossUnlimited    bool          `json:"maxLossUnlimited"`
	BreakEven           float64       `json:"breakEven"`
	ProbabilityOfProfit float64       `json:"probabilityOfProfit"`
	Payoff              []PayoffPoint `json:"payoff"`
	Warnings            Warnings      `json:"warnings,omitempty"`
	Insights            []string      `json:"insights,omitempty"`
}
