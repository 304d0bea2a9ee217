package calculation

import (
	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FederalTax integrates taxable income across a progressive schedule. Each
// bracket taxes the part of the remaining income that fits in its width;
// the top bracket absorbs whatever is left.
func FederalTax(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	remaining := income
	tax := decimal.Zero
	for _, b := range brackets {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		inBracket := remaining
		if !b.Unbounded() {
			inBracket = decimal.Min(remaining, b.Max.Sub(b.Min))
		}
		tax = tax.Add(inBracket.Mul(b.Rate))
		remaining = remaining.Sub(inBracket)
	}
	return tax
}

// MarginalRate returns the rate of the bracket containing income. Negative
// income is treated as zero.
func MarginalRate(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if len(brackets) == 0 {
		return decimal.Zero
	}
	if income.LessThan(decimal.Zero) {
		income = decimal.Zero
	}
	for _, b := range brackets {
		if b.Contains(income) {
			return b.Rate
		}
	}
	return brackets[len(brackets)-1].Rate
}

// PayrollTaxes are the per-period employee payroll taxes.
type PayrollTaxes struct {
	SocialSecurity decimal.Decimal
	Medicare       decimal.Decimal
	Disability     decimal.Decimal
}

// Total sums the payroll taxes.
func (p PayrollTaxes) Total() decimal.Decimal {
	return p.SocialSecurity.Add(p.Medicare).Add(p.Disability)
}

// CalculatePayrollTaxes computes Social Security (capped at the wage base
// spread evenly over the pay periods), uncapped Medicare and the state
// disability rate, if any, on one period's gross pay.
func CalculatePayrollTaxes(gross decimal.Decimal, periodsPerYear int, fica domain.FICARules, disabilityRate decimal.Decimal) PayrollTaxes {
	if gross.LessThanOrEqual(decimal.Zero) {
		return PayrollTaxes{}
	}
	if periodsPerYear <= 0 {
		periodsPerYear = 12
	}

	ss := gross.Mul(fica.SocialSecurityRate)
	if fica.SocialSecurityWageBase.GreaterThan(decimal.Zero) {
		capPerPeriod := fica.SocialSecurityWageBase.Div(decimal.NewFromInt(int64(periodsPerYear)))
		ss = decimal.Min(ss, capPerPeriod.Mul(fica.SocialSecurityRate))
	}

	return PayrollTaxes{
		SocialSecurity: ss,
		Medicare:       gross.Mul(fica.MedicareRate),
		Disability:     gross.Mul(nonNegative(disabilityRate)),
	}
}

// SelectDeduction picks the larger of the standard and itemized deductions.
func SelectDeduction(standard, itemized decimal.Decimal) (decimal.Decimal, domain.DeductionMethod) {
	if itemized.GreaterThan(standard) {
		return itemized, domain.DeductionItemized
	}
	return standard, domain.DeductionStandard
}

// EffectiveRate is total tax as a percentage of gross income, or 0 when gross
// is not positive.
func EffectiveRate(totalTax, gross decimal.Decimal) decimal.Decimal {
	return percentOf(totalTax, gross)
}

// TakeHomePercent is net pay as a percentage of gross pay.
func TakeHomePercent(net, gross decimal.Decimal) decimal.Decimal {
	return percentOf(net, gross)
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return d
}

func cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
