package calculation

import (
	"fmt"

	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultMortgageTermYears is used when no term is given.
	DefaultMortgageTermYears = 30
	// PMIAnnualRate is charged on the loan while equity is under PMIEquityPercent.
	PMIAnnualRate    = 0.005
	PMIEquityPercent = 20
)

var twelve = decimal.NewFromInt(12)

// BuildAmortizationSchedule repays principal at a fixed monthly payment plus
// extra principal each month. Interest is rounded to cents monthly and the
// final payment is trimmed to the remaining balance.
func BuildAmortizationSchedule(principal, monthlyRate, payment, extra decimal.Decimal) domain.AmortizationSchedule {
	var sched domain.AmortizationSchedule
	balance := cents(nonNegative(principal))
	extra = nonNegative(extra)

	for month := 1; month <= MaxGrowthMonths && balance.GreaterThan(decimal.Zero); month++ {
		interest := cents(balance.Mul(monthlyRate))
		toPrincipal := payment.Sub(interest).Add(extra)
		if toPrincipal.LessThanOrEqual(decimal.Zero) {
			// payment never covers interest
			break
		}
		if toPrincipal.GreaterThan(balance) {
			toPrincipal = balance
		}
		balance = balance.Sub(toPrincipal)
		paid := toPrincipal.Add(interest)

		sched.Rows = append(sched.Rows, domain.AmortizationRow{
			Month:     month,
			Payment:   paid,
			Principal: toPrincipal,
			Interest:  interest,
			Balance:   balance,
		})
		sched.TotalInterest = sched.TotalInterest.Add(interest)
		sched.TotalPaid = sched.TotalPaid.Add(paid)
		sched.PayoffMonth = month
	}
	return sched
}

// CalculateMortgage prices a home loan: principal and interest, escrowed tax
// and insurance, PMI below 20% down, and what extra payments save.
func (e *Engine) CalculateMortgage(in domain.MortgageInput) domain.MortgageResult {
	price := nonNegative(in.HomePrice)
	downPct := decimal.Min(nonNegative(in.DownPaymentPercent), hundred)
	down := cents(price.Mul(downPct).Div(hundred))
	loan := price.Sub(down)

	term := in.TermYears
	if term <= 0 {
		term = DefaultMortgageTermYears
	}
	months := clampPeriods(term * 12)
	monthlyRate := nonNegative(in.InterestRate).Div(twelve)

	payment := cents(AmortizedPayment(loan, monthlyRate, months))
	base := BuildAmortizationSchedule(loan, monthlyRate, payment, decimal.Zero)
	sched := base
	if in.ExtraPayment.GreaterThan(decimal.Zero) {
		sched = BuildAmortizationSchedule(loan, monthlyRate, payment, in.ExtraPayment)
	}

	result := domain.MortgageResult{
		LoanAmount:           loan,
		DownPayment:          down,
		PrincipalAndInterest: payment,
		MonthlyPropertyTax:   cents(price.Mul(nonNegative(in.PropertyTaxRate)).Div(twelve)),
		MonthlyInsurance:     cents(nonNegative(in.HomeInsurance).Div(twelve)),
		TotalInterest:        sched.TotalInterest,
		Schedule:             sched,
	}
	if loan.GreaterThan(decimal.Zero) && downPct.LessThan(decimal.NewFromInt(PMIEquityPercent)) {
		result.MonthlyPMI = cents(loan.Mul(decimal.NewFromFloat(PMIAnnualRate)).Div(twelve))
	}
	result.TotalMonthlyPayment = decimal.Sum(result.PrincipalAndInterest, result.MonthlyPropertyTax,
		result.MonthlyInsurance, result.MonthlyPMI)

	if in.ExtraPayment.GreaterThan(decimal.Zero) {
		result.InterestSaved = nonNegative(base.TotalInterest.Sub(sched.TotalInterest))
		result.MonthsSaved = base.PayoffMonth - sched.PayoffMonth
		if result.MonthsSaved < 0 {
			result.MonthsSaved = 0
		}
	}
	result.Recommendations = mortgageRecommendations(result)

	e.logger().Debugf("mortgage: loan=%s payment=%s payoff=%d", loan.StringFixed(2), payment.StringFixed(2), sched.PayoffMonth)
	return result
}

func mortgageRecommendations(r domain.MortgageResult) []string {
	var recs []string
	if r.MonthlyPMI.GreaterThan(decimal.Zero) {
		recs = append(recs, fmt.Sprintf("A 20%% down payment would remove %s/month of PMI", r.MonthlyPMI.StringFixed(2)))
	}
	if r.MonthsSaved > 0 {
		recs = append(recs, fmt.Sprintf("Extra payments retire the loan %d months early and save %s in interest",
			r.MonthsSaved, r.InterestSaved.StringFixed(2)))
	}
	if r.LoanAmount.GreaterThan(decimal.Zero) && r.TotalInterest.GreaterThan(r.LoanAmount) {
		recs = append(recs, "Lifetime interest exceeds the amount borrowed; a shorter term or extra principal would cut it")
	}
	return recs
}
