package domain

// SimulationParams configures a two-asset Monte Carlo run. Means, volatilities
// and the withdrawal rate are annual fractions; allocations are whole percent.
type SimulationParams struct {
	Trials              int     `yaml:"trials" json:"trials"`
	BatchSize           int     `yaml:"batch_size" json:"batchSize"`
	TimeHorizon         int     `yaml:"time_horizon" json:"timeHorizon"`
	InitialValue        float64 `yaml:"initial_value" json:"initialValue"`
	MonthlyContribution float64 `yaml:"monthly_contribution" json:"monthlyContribution"`
	StockPercent        float64 `yaml:"stock_percent" json:"stockPercent"`
	BondPercent         float64 `yaml:"bond_percent" json:"bondPercent"`
	StockMean           float64 `yaml:"stock_mean" json:"stockMean"`
	StockVolatility     float64 `yaml:"stock_volatility" json:"stockVolatility"`
	BondMean            float64 `yaml:"bond_mean" json:"bondMean"`
	BondVolatility      float64 `yaml:"bond_volatility" json:"bondVolatility"`
	Correlation         float64 `yaml:"correlation" json:"correlation"`
	WithdrawalRate      float64 `yaml:"withdrawal_rate" json:"withdrawalRate"`
	GoalAnnualIncome    float64 `yaml:"goal_annual_income" json:"goalAnnualIncome"`
	Seed                int64   `yaml:"seed" json:"seed"`
}

// SimulationPath is one trial's portfolio value for years 0..TimeHorizon.
type SimulationPath []float64

// SimulationState tracks a run's lifecycle.
type SimulationState string

const (
	SimulationIdle      SimulationState = "idle"
	SimulationRunning   SimulationState = "running"
	SimulationComplete  SimulationState = "complete"
	SimulationCancelled SimulationState = "cancelled"
)

// PercentileBand holds the 10/25/50/75/90th percentiles for one year.
type PercentileBand struct {
	Year int     `json:"year"`
	P10  float64 `json:"p10"`
	P25  float64 `json:"p25"`
	P50  float64 `json:"p50"`
	P75  float64 `json:"p75"`
	P90  float64 `json:"p90"`
}

// SimulationResult aggregates every trial of a run.
type SimulationResult struct {
	RunID            string           `json:"runId"`
	Trials           int              `json:"trials"`
	TimeHorizon      int              `json:"timeHorizon"`
	Bands            []PercentileBand `json:"bands"`
	Final            PercentileBand   `json:"final"`
	MedianFinalValue float64          `json:"medianFinalValue"`
	MeanFinalValue   float64          `json:"meanFinalValue"`
	SuccessRate      float64          `json:"successRate"`
	DepletedTrials   int              `json:"depletedTrials"`
	TotalContributed float64          `json:"totalContributed"`
	Warnings         Warnings         `json:"warnings,omitempty"`
	Insights         []string         `json:"insights,omitempty"`
}
