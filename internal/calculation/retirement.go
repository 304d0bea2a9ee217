package calculation

import (
	"fmt"

	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/shopspring/decimal"
)

// SafeWithdrawalRate is the 4% rule.
var SafeWithdrawalRate = decimal.NewFromFloat(0.04)

// ProjectRetirement grows current savings and monthly contributions to the
// retirement age and compares the inflation-adjusted nest egg with what a 4%
// withdrawal needs to fund the desired monthly income.
func (e *Engine) ProjectRetirement(in domain.RetirementInput) domain.RetirementResult {
	years := in.RetirementAge - in.CurrentAge
	if years < 0 {
		years = 0
	}
	months := clampPeriods(years * 12)
	years = months / 12

	savings := nonNegative(in.CurrentSavings)
	contribution := nonNegative(in.MonthlyContribution)
	monthlyRate := in.ExpectedReturn.Div(twelve)
	inflation := nonNegative(in.InflationRate)

	projected := FutureValueAnnuity(savings, monthlyRate, months, contribution)
	inflationFactor := growthFactor(inflation, years)
	realValue := projected.Div(inflationFactor)

	required := nonNegative(in.DesiredMonthlyIncome).Mul(twelve).Div(SafeWithdrawalRate)
	shortfall := nonNegative(required.Sub(realValue))

	result := domain.RetirementResult{
		YearsToRetirement:  years,
		ProjectedSavings:   cents(projected),
		InflationAdjusted:  cents(realValue),
		TotalContributions: cents(savings.Add(contribution.Mul(decimal.NewFromInt(int64(months))))),
		SustainableMonthly: cents(realValue.Mul(SafeWithdrawalRate).Div(twelve)),
		RequiredSavings:    cents(required),
		Shortfall:          cents(shortfall),
		OnTrack:            shortfall.IsZero(),
	}
	if !result.OnTrack {
		nominalTarget := required.Mul(inflationFactor)
		result.RequiredMonthlySavings = cents(RequiredContribution(nominalTarget, savings, monthlyRate, months))
	}
	result.Recommendations = retirementRecommendations(in, result)

	e.logger().Debugf("retirement: years=%d projected=%s shortfall=%s", years, result.ProjectedSavings.StringFixed(2), result.Shortfall.StringFixed(2))
	return result
}

// RequiredContribution solves the annuity equation for the level periodic
// contribution that reaches target from principal after n periods.
func RequiredContribution(target, principal, rate decimal.Decimal, n int) decimal.Decimal {
	n = clampPeriods(n)
	grown := FutureValueAnnuity(principal, rate, n, decimal.Zero)
	need := target.Sub(grown)
	if need.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if n == 0 {
		return need
	}
	if rate.IsZero() || rate.LessThanOrEqual(one.Neg()) {
		return need.Div(decimal.NewFromInt(int64(n)))
	}
	annuity := growthFactor(rate, n).Sub(one).Div(rate)
	if annuity.LessThanOrEqual(decimal.Zero) {
		return need.Div(decimal.NewFromInt(int64(n)))
	}
	return need.Div(annuity)
}

func retirementRecommendations(in domain.RetirementInput, r domain.RetirementResult) []string {
	var recs []string
	switch {
	case r.YearsToRetirement == 0:
		recs = append(recs, "Retirement age is not after the current age; the projection uses today's savings")
	case r.OnTrack:
		recs = append(recs, "Projected savings cover the desired income under the 4% rule")
	default:
		recs = append(recs, fmt.Sprintf("Saving %s/month would close the %s gap (in today's dollars)",
			r.RequiredMonthlySavings.StringFixed(2), r.Shortfall.StringFixed(2)))
	}
	if in.ExpectedReturn.GreaterThan(decimal.NewFromFloat(0.10)) {
		recs = append(recs, "Returns above 10% a year are optimistic; test a lower rate")
	}
	return recs
}
