package calculation

import (
	"fmt"

	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/shopspring/decimal"
)

// BudgetTolerance is how many percentage points a category may drift from
// its 50/30/20 target and still count as balanced.
var BudgetTolerance = decimal.NewFromInt(5)

var budgetTargets = []struct {
	name    string
	percent int64
}{
	{"needs", 50},
	{"wants", 30},
	{"savings", 20},
}

// AnalyzeBudget compares monthly spending with the 50/30/20 rule.
func (e *Engine) AnalyzeBudget(in domain.BudgetInput) domain.BudgetResult {
	income := nonNegative(in.MonthlyIncome)
	amounts := map[string]decimal.Decimal{
		"needs":   nonNegative(in.Needs),
		"wants":   nonNegative(in.Wants),
		"savings": nonNegative(in.Savings),
	}

	result := domain.BudgetResult{Balanced: income.GreaterThan(decimal.Zero)}
	for _, t := range budgetTargets {
		amount := amounts[t.name]
		target := decimal.NewFromInt(t.percent)
		cat := domain.BudgetCategory{
			Name:          t.name,
			Amount:        cents(amount),
			Percent:       percentOf(amount, income),
			TargetPercent: target,
			TargetAmount:  cents(income.Mul(target).Div(hundred)),
		}
		cat.Difference = cat.Amount.Sub(cat.TargetAmount)
		if cat.Percent.Sub(target).Abs().GreaterThan(BudgetTolerance) {
			result.Balanced = false
		}
		result.Categories = append(result.Categories, cat)
		result.TotalSpending = result.TotalSpending.Add(cat.Amount)
	}
	result.Surplus = cents(income).Sub(result.TotalSpending)
	if result.Surplus.LessThan(decimal.Zero) {
		result.Balanced = false
	}
	result.Recommendations = budgetRecommendations(income, result)

	e.logger().Debugf("budget: income=%s spending=%s surplus=%s", income.StringFixed(2),
		result.TotalSpending.StringFixed(2), result.Surplus.StringFixed(2))
	return result
}

func budgetRecommendations(income decimal.Decimal, r domain.BudgetResult) []string {
	if income.LessThanOrEqual(decimal.Zero) {
		return []string{"Enter a monthly income to compare spending with the 50/30/20 rule"}
	}
	var recs []string
	for _, c := range r.Categories {
		over := c.Difference.GreaterThan(decimal.Zero)
		switch {
		case c.Name == "savings" && !over && !c.Difference.IsZero():
			recs = append(recs, fmt.Sprintf("Save %s more a month to reach %s%%", c.Difference.Neg().StringFixed(2), c.TargetPercent))
		case c.Name != "savings" && over && c.Percent.Sub(c.TargetPercent).GreaterThan(BudgetTolerance):
			recs = append(recs, fmt.Sprintf("%s take %s%% of income; the guideline is %s%%", c.Name, c.Percent.StringFixed(1), c.TargetPercent))
		}
	}
	if r.Surplus.LessThan(decimal.Zero) {
		recs = append(recs, fmt.Sprintf("Spending exceeds income by %s a month", r.Surplus.Neg().StringFixed(2)))
	} else if r.Surplus.GreaterThan(decimal.Zero) {
		recs = append(recs, fmt.Sprintf("Direct the unallocated %s toward savings or debt", r.Surplus.StringFixed(2)))
	}
	if len(recs) == 0 {
		recs = append(recs, "Budget follows the 50/30/20 rule")
	}
	return recs
}
