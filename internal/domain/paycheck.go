package domain

import "github.com/shopspring/decimal"

// PaycheckInput describes one pay period.
type PaycheckInput struct {
	GrossPay              decimal.Decimal `yaml:"gross_pay" json:"grossPay"`
	PayPeriodsPerYear     int             `yaml:"pay_periods_per_year" json:"payPeriodsPerYear"`
	FilingStatus          FilingStatus    `yaml:"filing_status" json:"filingStatus"`
	State                 string          `yaml:"state" json:"state"`
	HealthInsurance       decimal.Decimal `yaml:"health_insurance" json:"healthInsurance"`
	RetirementPercent     decimal.Decimal `yaml:"retirement_401k_percent" json:"retirement401kPercent"`
	AdditionalWithholding decimal.Decimal `yaml:"additional_withholding" json:"additionalWithholding"`
	ItemizedDeductions    decimal.Decimal `yaml:"itemized_deductions" json:"itemizedDeductions"`
}

// DeductionMethod records which deduction reduced taxable income.
type DeductionMethod string

const (
	DeductionStandard DeductionMethod = "standard"
	DeductionItemized DeductionMethod = "itemized"
)

// PaycheckDeductions are the per-period amounts withheld. Every field is >= 0.
type PaycheckDeductions struct {
	FederalTax            decimal.Decimal `json:"federalTax"`
	StateTax              decimal.Decimal `json:"stateTax"`
	SocialSecurity        decimal.Decimal `json:"socialSecurity"`
	Medicare              decimal.Decimal `json:"medicare"`
	StateDisability       decimal.Decimal `json:"stateDisability"`
	HealthInsurance       decimal.Decimal `json:"healthInsurance"`
	Retirement401k        decimal.Decimal `json:"retirement401k"`
	AdditionalWithholding decimal.Decimal `json:"additionalWithholding"`
}

// Total sums every deduction line.
func (d PaycheckDeductions) Total() decimal.Decimal {
	return decimal.Sum(d.FederalTax, d.StateTax, d.SocialSecurity, d.Medicare,
		d.StateDisability, d.HealthInsurance, d.Retirement401k, d.AdditionalWithholding)
}

// Taxes sums the tax lines only.
func (d PaycheckDeductions) Taxes() decimal.Decimal {
	return decimal.Sum(d.FederalTax, d.StateTax, d.SocialSecurity, d.Medicare, d.StateDisability)
}

// PaycheckResult is the per-period breakdown. NetPay == GrossPay - TotalDeductions.
type PaycheckResult struct {
	GrossPay         decimal.Decimal    `json:"grossPay"`
	Deductions       PaycheckDeductions `json:"deductions"`
	TotalDeductions  decimal.Decimal    `json:"totalDeductions"`
	NetPay           decimal.Decimal    `json:"netPay"`
	AnnualGross      decimal.Decimal    `json:"annualGross"`
	AnnualTaxable    decimal.Decimal    `json:"annualTaxable"`
	DeductionMethod  DeductionMethod    `json:"deductionMethod"`
	DeductionAmount  decimal.Decimal    `json:"deductionAmount"`
	EffectiveTaxRate decimal.Decimal    `json:"effectiveTaxRate"`
	MarginalTaxRate  decimal.Decimal    `json:"marginalTaxRate"`
	TakeHomePercent  decimal.Decimal    `json:"takeHomePercent"`
	Warnings         Warnings           `json:"warnings,omitempty"`
	Recommendations  []string           `json:"recommendations,omitempty"`
}
