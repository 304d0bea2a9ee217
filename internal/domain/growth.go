package domain

import "github.com/shopspring/decimal"

// CompoundInterestInput drives the compound interest calculator.
// AnnualRate is a fraction (0.07 for 7%).
type CompoundInterestInput struct {
	Principal           decimal.Decimal `yaml:"principal" json:"principal"`
	AnnualRate          decimal.Decimal `yaml:"annual_rate" json:"annualRate"`
	Years               int             `yaml:"years" json:"years"`
	CompoundsPerYear    int             `yaml:"compounds_per_year" json:"compoundsPerYear"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthlyContribution"`
}

// GrowthYear is one row of a year-by-year balance table.
type GrowthYear struct {
	Year          int             `json:"year"`
	Balance       decimal.Decimal `json:"balance"`
	Contributions decimal.Decimal `json:"contributions"`
	Interest      decimal.Decimal `json:"interest"`
}

// CompoundInterestResult summarises the growth of an investment.
type CompoundInterestResult struct {
	FinalBalance       decimal.Decimal `json:"finalBalance"`
	TotalContributions decimal.Decimal `json:"totalContributions"`
	TotalInterest      decimal.Decimal `json:"totalInterest"`
	YearsToDouble      decimal.Decimal `json:"yearsToDouble"`
	Schedule           []GrowthYear    `json:"schedule"`
}

// MortgageInput describes a home purchase. Rates are fractions.
type MortgageInput struct {
	HomePrice          decimal.Decimal `yaml:"home_price" json:"homePrice"`
	DownPaymentPercent decimal.Decimal `yaml:"down_payment_percent" json:"downPaymentPercent"`
	InterestRate       decimal.Decimal `yaml:"interest_rate" json:"interestRate"`
	TermYears          int             `yaml:"term_years" json:"termYears"`
	PropertyTaxRate    decimal.Decimal `yaml:"property_tax_rate" json:"propertyTaxRate"`
	HomeInsurance      decimal.Decimal `yaml:"home_insurance" json:"homeInsurance"`
	ExtraPayment       decimal.Decimal `yaml:"extra_payment" json:"extraPayment"`
}

// AmortizationRow is one month of a loan schedule.
type AmortizationRow struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}

// AmortizationSchedule is the full repayment of a loan.
type AmortizationSchedule struct {
	Rows          []AmortizationRow `json:"rows"`
	TotalInterest decimal.Decimal   `json:"totalInterest"`
	TotalPaid     decimal.Decimal   `json:"totalPaid"`
	PayoffMonth   int               `json:"payoffMonth"`
}

// MortgageResult is the monthly cost and lifetime cost of a mortgage.
type MortgageResult struct {
	LoanAmount           decimal.Decimal      `json:"loanAmount"`
	DownPayment          decimal.Decimal      `json:"downPayment"`
	PrincipalAndInterest decimal.Decimal      `json:"principalAndInterest"`
	MonthlyPropertyTax   decimal.Decimal      `json:"monthlyPropertyTax"`
	MonthlyInsurance     decimal.Decimal      `json:"monthlyInsurance"`
	MonthlyPMI           decimal.Decimal      `json:"monthlyPmi"`
	TotalMonthlyPayment  decimal.Decimal      `json:"totalMonthlyPayment"`
	TotalInterest        decimal.Decimal      `json:"totalInterest"`
	InterestSaved        decimal.Decimal      `json:"interestSaved"`
	MonthsSaved          int                  `json:"monthsSaved"`
	Schedule             AmortizationSchedule `json:"schedule"`
	Recommendations      []string             `json:"recommendations,omitempty"`
}

// RetirementInput describes a saver. Rates are fractions.
type RetirementInput struct {
	CurrentAge           int             `yaml:"current_age" json:"currentAge"`
	RetirementAge        int             `yaml:"retirement_age" json:"retirementAge"`
	CurrentSavings       decimal.Decimal `yaml:"current_savings" json:"currentSavings"`
	MonthlyContribution  decimal.Decimal `yaml:"monthly_contribution" json:"monthlyContribution"`
	ExpectedReturn       decimal.Decimal `yaml:"expected_return" json:"expectedReturn"`
	InflationRate        decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	DesiredMonthlyIncome decimal.Decimal `yaml:"desired_monthly_income" json:"desiredMonthlyIncome"`
}

// RetirementResult projects savings at retirement.
type RetirementResult struct {
	YearsToRetirement      int             `json:"yearsToRetirement"`
	ProjectedSavings       decimal.Decimal `json:"projectedSavings"`
	InflationAdjusted      decimal.Decimal `json:"inflationAdjusted"`
	TotalContributions     decimal.Decimal `json:"totalContributions"`
	SustainableMonthly     decimal.Decimal `json:"sustainableMonthlyIncome"`
	RequiredSavings        decimal.Decimal `json:"requiredSavings"`
	Shortfall              decimal.Decimal `json:"shortfall"`
	RequiredMonthlySavings decimal.Decimal `json:"requiredMonthlySavings"`
	OnTrack                bool            `json:"onTrack"`
	Recommendations        []string        `json:"recommendations,omitempty"`
}
