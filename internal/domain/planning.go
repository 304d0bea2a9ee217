package domain

import "github.com/shopspring/decimal"

// BudgetInput is a month of income and spending by 50/30/20 category.
type BudgetInput struct {
	MonthlyIncome decimal.Decimal `yaml:"monthly_income" json:"monthlyIncome"`
	Needs         decimal.Decimal `yaml:"needs" json:"needs"`
	Wants         decimal.Decimal `yaml:"wants" json:"wants"`
	Savings       decimal.Decimal `yaml:"savings" json:"savings"`
}

// BudgetCategory compares actual spending in a category with its target.
type BudgetCategory struct {
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	Percent       decimal.Decimal `json:"percent"`
	TargetPercent decimal.Decimal `json:"targetPercent"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	Difference    decimal.Decimal `json:"difference"`
}

// BudgetResult is the 50/30/20 breakdown.
type BudgetResult struct {
	Categories      []BudgetCategory `json:"categories"`
	TotalSpending   decimal.Decimal  `json:"totalSpending"`
	Surplus         decimal.Decimal  `json:"surplus"`
	Balanced        bool             `json:"balanced"`
	Recommendations []string         `json:"recommendations,omitempty"`
}

// RiskTolerance selects the crypto allocation band.
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
)

// CryptoInput describes an investor considering crypto exposure.
type CryptoInput struct {
	PortfolioValue decimal.Decimal `yaml:"portfolio_value" json:"portfolioValue"`
	CryptoHoldings []Holding       `yaml:"crypto_holdings" json:"cryptoHoldings"`
	RiskTolerance  RiskTolerance   `yaml:"risk_tolerance" json:"riskTolerance"`
}

// CryptoResult is the recommended crypto sleeve.
type CryptoResult struct {
	RecommendedMinPercent float64         `json:"recommendedMinPercent"`
	RecommendedMaxPercent float64         `json:"recommendedMaxPercent"`
	RecommendedMinAmount  decimal.Decimal `json:"recommendedMinAmount"`
	RecommendedMaxAmount  decimal.Decimal `json:"recommendedMaxAmount"`
	CurrentAmount         decimal.Decimal `json:"currentAmount"`
	CurrentPercent        float64         `json:"currentPercent"`
	ConcentrationScore    float64         `json:"concentrationScore"`
	Action                RebalanceAction `json:"action"`
	Warnings              Warnings        `json:"warnings,omitempty"`
	Recommendations       []string        `json:"recommendations,omitempty"`
}

// ValuationInput describes a business for DCF and multiples valuation.
// DiscountRate and TerminalGrowth are fractions.
type ValuationInput struct {
	CashFlows       []decimal.Decimal `yaml:"cash_flows" json:"cashFlows"`
	DiscountRate    decimal.Decimal   `yaml:"discount_rate" json:"discountRate"`
	TerminalGrowth  decimal.Decimal   `yaml:"terminal_growth" json:"terminalGrowth"`
	Revenue         decimal.Decimal   `yaml:"revenue" json:"revenue"`
	RevenueMultiple decimal.Decimal   `yaml:"revenue_multiple" json:"revenueMultiple"`
	EBITDA          decimal.Decimal   `yaml:"ebitda" json:"ebitda"`
	EBITDAMultiple  decimal.Decimal   `yaml:"ebitda_multiple" json:"ebitdaMultiple"`
	NetDebt         decimal.Decimal   `yaml:"net_debt" json:"netDebt"`
	Shares          decimal.Decimal   `yaml:"shares_outstanding" json:"sharesOutstanding"`
}

// ValuationResult combines the valuation methods.
type ValuationResult struct {
	PresentValueOfCashFlows decimal.Decimal `json:"presentValueOfCashFlows"`
	TerminalValue           decimal.Decimal `json:"terminalValue"`
	PresentTerminalValue    decimal.Decimal `json:"presentTerminalValue"`
	DCFEnterpriseValue      decimal.Decimal `json:"dcfEnterpriseValue"`
	RevenueMultipleValue    decimal.Decimal `json:"revenueMultipleValue"`
	EBITDAMultipleValue     decimal.Decimal `json:"ebitdaMultipleValue"`
	BlendedEnterpriseValue  decimal.Decimal `json:"blendedEnterpriseValue"`
	EquityValue             decimal.Decimal `json:"equityValue"`
	PerShareValue           decimal.Decimal `json:"perShareValue"`
	ImpliedEBITDAMultiple   decimal.Decimal `json:"impliedEbitdaMultiple"`
	Warnings                Warnings        `json:"warnings,omitempty"`
}
