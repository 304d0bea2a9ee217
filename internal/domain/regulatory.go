package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Rules contains the tax and market data every calculator shares.
// It is loaded from rules.yaml or built from the compiled-in defaults.
type Rules struct {
	Metadata   RulesMetadata         `yaml:"metadata" json:"metadata"`
	FederalTax FederalTaxRules       `yaml:"federal_tax" json:"federal_tax"`
	FICA       FICARules             `yaml:"fica" json:"fica"`
	States     map[string]StateRules `yaml:"states" json:"states"`
	Market     MarketAssumptions     `yaml:"market" json:"market"`
}

// RulesMetadata describes the data set
type RulesMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	Description string `yaml:"description" json:"description"`
}

// FilingStatus is the federal filing status
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJointly  FilingStatus = "married_filing_jointly"
	FilingHeadOfHousehold FilingStatus = "head_of_household"
)

// ParseFilingStatus accepts the canonical names and the usual short forms.
// Anything unrecognised is treated as single.
func ParseFilingStatus(s string) FilingStatus {
	switch strings.ToLower(strings.NewReplacer("-", "_", " ", "_").Replace(strings.TrimSpace(s))) {
	case "married_filing_jointly", "married", "mfj", "joint", "married_jointly":
		return FilingMarriedJointly
	case "head_of_household", "hoh", "head":
		return FilingHeadOfHousehold
	default:
		return FilingSingle
	}
}

// TaxBracket is one band of a progressive schedule. Brackets are contiguous:
// each Min equals the previous Max. A Max at or below Min marks the top,
// unbounded bracket.
type TaxBracket struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the bracket has no upper limit.
func (b TaxBracket) Unbounded() bool {
	return b.Max.LessThanOrEqual(b.Min)
}

// Contains reports whether income falls in [Min, Max).
func (b TaxBracket) Contains(income decimal.Decimal) bool {
	if income.LessThan(b.Min) {
		return false
	}
	return b.Unbounded() || income.LessThan(b.Max)
}

// FederalTaxRules contains the federal income tax schedules
type FederalTaxRules struct {
	StandardDeduction       StandardDeductions `yaml:"standard_deduction" json:"standard_deduction"`
	BracketsSingle          []TaxBracket       `yaml:"brackets_single" json:"brackets_single"`
	BracketsMFJ             []TaxBracket       `yaml:"brackets_married_filing_jointly" json:"brackets_married_filing_jointly"`
	BracketsHeadOfHousehold []TaxBracket       `yaml:"brackets_head_of_household" json:"brackets_head_of_household"`
}

// StandardDeductions contains standard deduction amounts by filing status
type StandardDeductions struct {
	MarriedFilingJointly decimal.Decimal `yaml:"married_filing_jointly" json:"married_filing_jointly"`
	Single               decimal.Decimal `yaml:"single" json:"single"`
	HeadOfHousehold      decimal.Decimal `yaml:"head_of_household" json:"head_of_household"`
}

// Brackets returns the schedule for a filing status, falling back to single.
func (f FederalTaxRules) Brackets(status FilingStatus) []TaxBracket {
	switch status {
	case FilingMarriedJointly:
		if len(f.BracketsMFJ) > 0 {
			return f.BracketsMFJ
		}
	case FilingHeadOfHousehold:
		if len(f.BracketsHeadOfHousehold) > 0 {
			return f.BracketsHeadOfHousehold
		}
	}
	return f.BracketsSingle
}

// Deduction returns the standard deduction for a filing status.
func (s StandardDeductions) Deduction(status FilingStatus) decimal.Decimal {
	switch status {
	case FilingMarriedJointly:
		return s.MarriedFilingJointly
	case FilingHeadOfHousehold:
		return s.HeadOfHousehold
	default:
		return s.Single
	}
}

// FICARules contains payroll tax rates
type FICARules struct {
	SocialSecurityRate     decimal.Decimal `yaml:"social_security_rate" json:"social_security_rate"`
	SocialSecurityWageBase decimal.Decimal `yaml:"social_security_wage_base" json:"social_security_wage_base"`
	MedicareRate           decimal.Decimal `yaml:"medicare_rate" json:"medicare_rate"`
}

// StateRules holds the flat-rate approximation for one state.
// DisabilityRate is zero for states without a disability insurance program.
type StateRules struct {
	Name           string          `yaml:"name" json:"name"`
	IncomeTaxRate  decimal.Decimal `yaml:"income_tax_rate" json:"income_tax_rate"`
	DisabilityRate decimal.Decimal `yaml:"disability_rate" json:"disability_rate"`
}

// State looks up a state by its two-letter code, case-insensitively.
func (r *Rules) State(code string) (StateRules, bool) {
	s, ok := r.States[strings.ToUpper(strings.TrimSpace(code))]
	return s, ok
}

// AssetClass buckets holdings for diversification and simulation.
type AssetClass string

const (
	AssetStocks      AssetClass = "stocks"
	AssetBonds       AssetClass = "bonds"
	AssetCash        AssetClass = "cash"
	AssetRealEstate  AssetClass = "real_estate"
	AssetCommodities AssetClass = "commodities"
	AssetCrypto      AssetClass = "crypto"
)

// AssetAssumption is the annual expected return and volatility, as fractions.
type AssetAssumption struct {
	ExpectedReturn float64 `yaml:"expected_return" json:"expected_return"`
	Volatility     float64 `yaml:"volatility" json:"volatility"`
}

// MarketAssumptions parameterises portfolio and simulation engines.
type MarketAssumptions struct {
	Assets               map[AssetClass]AssetAssumption `yaml:"assets" json:"assets"`
	StockBondCorrelation float64                        `yaml:"stock_bond_correlation" json:"stock_bond_correlation"`
	InflationRate        float64                        `yaml:"inflation_rate" json:"inflation_rate"`
}

// Asset returns the assumption for a class; unknown classes yield zeros.
func (m MarketAssumptions) Asset(class AssetClass) AssetAssumption {
	return m.Assets[class]
}
