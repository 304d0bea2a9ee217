package calculation

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultPayPeriods is monthly pay.
const DefaultPayPeriods = 12

// CalculatePaycheck breaks one period's gross pay into its deductions.
//
// Pre-tax 401(k) and health premiums reduce taxable wages. Federal tax is the
// annualised bracket tax on taxable wages less the larger of the standard and
// itemized deduction, spread back over the pay periods. State tax applies the
// state's flat rate to the same taxable income. Payroll taxes use gross pay.
func (e *Engine) CalculatePaycheck(in domain.PaycheckInput) domain.PaycheckResult {
	var warnings domain.Warnings

	periods := in.PayPeriodsPerYear
	if periods <= 0 {
		periods = DefaultPayPeriods
	}
	periodsDec := decimal.NewFromInt(int64(periods))
	status := in.FilingStatus
	if status == "" {
		status = domain.FilingSingle
	}

	gross := nonNegative(in.GrossPay)
	retirementPct := decimal.Min(nonNegative(in.RetirementPercent), hundred)
	retirement := cents(gross.Mul(retirementPct).Div(hundred))
	health := cents(nonNegative(in.HealthInsurance))

	pretaxWages := nonNegative(gross.Sub(retirement).Sub(health))
	annualWages := pretaxWages.Mul(periodsDec)

	standard := e.Rules.FederalTax.StandardDeduction.Deduction(status)
	deduction, method := SelectDeduction(standard, nonNegative(in.ItemizedDeductions))
	annualTaxable := nonNegative(annualWages.Sub(deduction))

	brackets := e.Rules.FederalTax.Brackets(status)
	federal := cents(FederalTax(annualTaxable, brackets).Div(periodsDec))

	stateCode := strings.ToUpper(strings.TrimSpace(in.State))
	stateRules, known := e.Rules.State(stateCode)
	if !known && stateCode != "" {
		warnings.Add(domain.WarnUnknownState, fmt.Sprintf("no tax data for state %q; state taxes set to zero", stateCode))
	}
	stateTax := cents(annualTaxable.Mul(nonNegative(stateRules.IncomeTaxRate)).Div(periodsDec))

	payroll := CalculatePayrollTaxes(gross, periods, e.Rules.FICA, stateRules.DisabilityRate)

	deductions := domain.PaycheckDeductions{
		FederalTax:            federal,
		StateTax:              stateTax,
		SocialSecurity:        cents(payroll.SocialSecurity),
		Medicare:              cents(payroll.Medicare),
		StateDisability:       cents(payroll.Disability),
		HealthInsurance:       health,
		Retirement401k:        retirement,
		AdditionalWithholding: cents(nonNegative(in.AdditionalWithholding)),
	}
	total := deductions.Total()
	net := gross.Sub(total)
	if net.LessThan(decimal.Zero) {
		warnings.Add(domain.WarnDeductionsExceedGross, "deductions exceed gross pay")
	}

	result := domain.PaycheckResult{
		GrossPay:         gross,
		Deductions:       deductions,
		TotalDeductions:  total,
		NetPay:           net,
		AnnualGross:      gross.Mul(periodsDec),
		AnnualTaxable:    annualTaxable,
		DeductionMethod:  method,
		DeductionAmount:  deduction,
		EffectiveTaxRate: EffectiveRate(deductions.Taxes(), gross),
		MarginalTaxRate:  MarginalRate(annualTaxable, brackets).Mul(hundred),
		TakeHomePercent:  TakeHomePercent(net, gross),
		Warnings:         warnings,
	}
	result.Recommendations = paycheckRecommendations(in, result)

	e.logger().Debugf("paycheck: gross=%s taxable=%s federal=%s state=%s net=%s",
		gross.StringFixed(2), annualTaxable.StringFixed(2), federal.StringFixed(2), stateTax.StringFixed(2), net.StringFixed(2))
	return result
}

func paycheckRecommendations(in domain.PaycheckInput, r domain.PaycheckResult) []string {
	var recs []string
	if in.RetirementPercent.LessThan(decimal.NewFromInt(6)) && r.GrossPay.GreaterThan(decimal.Zero) {
		recs = append(recs, "Contributing at least 6% to a 401(k) usually captures the full employer match")
	}
	if r.MarginalTaxRate.GreaterThanOrEqual(decimal.NewFromInt(22)) {
		recs = append(recs, fmt.Sprintf("At a %s%% marginal rate each pre-tax dollar saved lowers federal tax by %s cents",
			r.MarginalTaxRate.StringFixed(0), r.MarginalTaxRate.StringFixed(0)))
	}
	if r.DeductionMethod == domain.DeductionStandard && in.ItemizedDeductions.GreaterThan(decimal.Zero) {
		recs = append(recs, "The standard deduction is larger than your itemized deductions")
	}
	if r.TakeHomePercent.LessThan(decimal.NewFromInt(60)) && r.GrossPay.GreaterThan(decimal.Zero) {
		recs = append(recs, "Less than 60% of gross pay reaches your bank account; review voluntary deductions")
	}
	return recs
}
