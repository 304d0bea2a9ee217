package calculation

import (
	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxGrowthMonths bounds every compounding loop and exponent (100 years).
const MaxGrowthMonths = 1200

// growthPrecision is the number of decimal places kept while compounding.
const growthPrecision = 20

var one = decimal.NewFromInt(1)

// growthFactor returns (1+rate)^n by repeated squaring, truncating each step
// so a 1200-period exponent does not carry thousands of digits.
func growthFactor(rate decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return one
	}
	base := one.Add(rate)
	result := one
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Truncate(growthPrecision)
		}
		base = base.Mul(base).Truncate(growthPrecision)
		n >>= 1
	}
	return result
}

func clampPeriods(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxGrowthMonths {
		return MaxGrowthMonths
	}
	return n
}

// FutureValueAnnuity is the value after n periods of a principal growing at
// rate per period plus a contribution added at the end of every period.
// Negative periods count as zero and negative amounts as zero; a rate at or
// below -100% wipes the balance out.
func FutureValueAnnuity(principal, rate decimal.Decimal, n int, contribution decimal.Decimal) decimal.Decimal {
	n = clampPeriods(n)
	principal = nonNegative(principal)
	contribution = nonNegative(contribution)

	if rate.LessThanOrEqual(one.Neg()) {
		return decimal.Zero
	}
	periods := decimal.NewFromInt(int64(n))
	if rate.IsZero() {
		return principal.Add(contribution.Mul(periods))
	}

	factor := growthFactor(rate, n)
	return principal.Mul(factor).Add(contribution.Mul(factor.Sub(one)).Div(rate))
}

// AmortizedPayment is the level payment that retires loan over n periods.
func AmortizedPayment(loan, rate decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 || loan.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	n = clampPeriods(n)
	if rate.IsZero() {
		return loan.Div(decimal.NewFromInt(int64(n)))
	}
	factor := growthFactor(rate, n)
	denominator := factor.Sub(one)
	if denominator.LessThanOrEqual(decimal.Zero) {
		return loan.Div(decimal.NewFromInt(int64(n)))
	}
	return loan.Mul(rate).Mul(factor).Div(denominator)
}

// YearsToDouble applies the rule of 72 to an annual rate in percent.
func YearsToDouble(annualRatePercent decimal.Decimal) decimal.Decimal {
	if annualRatePercent.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return decimal.NewFromInt(72).Div(annualRatePercent).Round(2)
}

// CompoundInterest projects a lump sum compounded CompoundsPerYear times a
// year together with monthly contributions, one row per year.
func (e *Engine) CompoundInterest(in domain.CompoundInterestInput) domain.CompoundInterestResult {
	years := in.Years
	if years < 0 {
		years = 0
	}
	if years > MaxGrowthMonths/12 {
		years = MaxGrowthMonths / 12
	}
	k := in.CompoundsPerYear
	if k <= 0 {
		k = 12
	}
	if k > 365 {
		k = 365
	}

	principal := nonNegative(in.Principal)
	contribution := nonNegative(in.MonthlyContribution)
	rate := in.AnnualRate
	periodRate := rate.Div(decimal.NewFromInt(int64(k)))
	monthlyRate := rate.Div(decimal.NewFromInt(12))

	result := domain.CompoundInterestResult{
		YearsToDouble: YearsToDouble(rate.Mul(hundred)),
		Schedule:      make([]domain.GrowthYear, 0, years),
	}

	lump := principal
	yearFactor := growthFactor(periodRate, k)
	if periodRate.LessThanOrEqual(one.Neg()) {
		yearFactor = decimal.Zero
	}
	for year := 1; year <= years; year++ {
		lump = lump.Mul(yearFactor).Truncate(growthPrecision)
		contributed := FutureValueAnnuity(decimal.Zero, monthlyRate, year*12, contribution)
		deposits := contribution.Mul(decimal.NewFromInt(int64(year * 12)))
		balance := lump.Add(contributed)
		result.Schedule = append(result.Schedule, domain.GrowthYear{
			Year:          year,
			Balance:       cents(balance),
			Contributions: cents(principal.Add(deposits)),
			Interest:      cents(balance.Sub(principal).Sub(deposits)),
		})
	}

	result.TotalContributions = principal
	result.FinalBalance = cents(principal)
	if n := len(result.Schedule); n > 0 {
		last := result.Schedule[n-1]
		result.FinalBalance = last.Balance
		result.TotalContributions = last.Contributions
	}
	result.TotalInterest = result.FinalBalance.Sub(result.TotalContributions)

	e.logger().Debugf("compound interest: years=%d final=%s", years, result.FinalBalance.StringFixed(2))
	return result
}

// PresentValue discounts amount received n periods from now at rate.
func PresentValue(amount, rate decimal.Decimal, n int) decimal.Decimal {
	if rate.LessThanOrEqual(one.Neg()) {
		return decimal.Zero
	}
	factor := growthFactor(rate, clampPeriods(n))
	if factor.IsZero() {
		return decimal.Zero
	}
	return amount.Div(factor)
}
