package output

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/rgehrsitz/finlit/internal/calculation"
	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/rgehrsitz/finlit/internal/validation"
	"github.com/shopspring/decimal"
)

// maxScheduleRows caps long schedules in table and CSV output. JSON output
// always carries the full result.
const maxScheduleRows = 60

// BuildReport turns a calculator result into a report.
func BuildReport(title string, result any) (*Report, error) {
	r := &Report{Title: title, Result: result}
	switch v := result.(type) {
	case domain.PaycheckResult:
		buildPaycheck(r, v)
	case domain.CompoundInterestResult:
		buildGrowth(r, v)
	case domain.MortgageResult:
		buildMortgage(r, v)
	case domain.RetirementResult:
		buildRetirement(r, v)
	case domain.PortfolioAnalysis:
		buildPortfolio(r, v)
	case *domain.SimulationResult:
		if v == nil {
			return nil, fmt.Errorf("simulation result is nil")
		}
		buildSimulation(r, *v)
	case domain.StrategyResult:
		buildStrategy(r, v)
	case domain.CreditComparison:
		buildCredit(r, v)
	case domain.BudgetResult:
		buildBudget(r, v)
	case domain.ValuationResult:
		buildValuation(r, v)
	case domain.CryptoResult:
		buildCrypto(r, v)
	case validation.Result:
		buildValidation(r, v)
	default:
		return nil, fmt.Errorf("unsupported result type: %T", result)
	}
	return r, nil
}

// BuildEvaluationReport builds the report for an evaluation and notes any
// field that failed validation.
func BuildEvaluationReport(title string, ev *calculation.Evaluation) (*Report, error) {
	r, err := BuildReport(title, ev.Result)
	if err != nil {
		return nil, err
	}
	for _, field := range ev.Validation.Fields() {
		r.Notes = append(r.Notes, fmt.Sprintf("%s: %s", field, ev.Validation.Errors[field]))
	}
	return r, nil
}

func buildPaycheck(r *Report, p domain.PaycheckResult) {
	r.AddRow("Gross Pay", FormatCurrency(p.GrossPay))
	r.AddRow("Total Deductions", FormatCurrency(p.TotalDeductions))
	r.AddRow("Net Pay", FormatCurrency(p.NetPay))
	r.AddRow("Annual Gross", FormatCurrency(p.AnnualGross))
	r.AddRow("Annual Taxable Income", FormatCurrency(p.AnnualTaxable))
	r.AddRow("Deduction", fmt.Sprintf("%s (%s)", FormatCurrency(p.DeductionAmount), p.DeductionMethod))
	r.AddRow("Effective Tax Rate", FormatPercentage(p.EffectiveTaxRate))
	r.AddRow("Marginal Tax Rate", FormatPercentage(p.MarginalTaxRate))
	r.AddRow("Take-Home", FormatPercentage(p.TakeHomePercent))

	d := p.Deductions
	lines := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Federal income tax", d.FederalTax},
		{"State income tax", d.StateTax},
		{"Social Security", d.SocialSecurity},
		{"Medicare", d.Medicare},
		{"State disability", d.StateDisability},
		{"Health insurance", d.HealthInsurance},
		{"401(k)", d.Retirement401k},
		{"Additional withholding", d.AdditionalWithholding},
	}
	var rows [][]string
	for _, l := range lines {
		if l.amount.IsZero() {
			continue
		}
		rows = append(rows, []string{l.label, FormatCurrency(l.amount), percentOf(l.amount, p.GrossPay)})
	}
	r.AddSection("Deductions", []string{"Deduction", "Amount", "% of Gross"}, rows)
	r.Warnings = p.Warnings
	r.Recommendations = p.Recommendations
}

func buildGrowth(r *Report, g domain.CompoundInterestResult) {
	r.AddRow("Final Balance", FormatCurrency(g.FinalBalance))
	r.AddRow("Total Contributions", FormatCurrency(g.TotalContributions))
	r.AddRow("Total Interest", FormatCurrency(g.TotalInterest))
	if g.YearsToDouble.IsPositive() {
		r.AddRow("Years to Double", g.YearsToDouble.StringFixed(1))
	}

	rows := make([][]string, 0, len(g.Schedule))
	for _, y := range g.Schedule {
		rows = append(rows, []string{
			strconv.Itoa(y.Year),
			FormatCurrency(y.Balance),
			FormatCurrency(y.Contributions),
			FormatCurrency(y.Interest),
		})
	}
	addCapped(r, "Year-by-Year Growth", []string{"Year", "Balance", "Contributions", "Interest"}, rows)
}

func buildMortgage(r *Report, m domain.MortgageResult) {
	r.AddRow("Loan Amount", FormatCurrency(m.LoanAmount))
	r.AddRow("Down Payment", FormatCurrency(m.DownPayment))
	r.AddRow("Principal & Interest", FormatCurrency(m.PrincipalAndInterest))
	r.AddRow("Property Tax", FormatCurrency(m.MonthlyPropertyTax))
	r.AddRow("Insurance", FormatCurrency(m.MonthlyInsurance))
	if m.MonthlyPMI.IsPositive() {
		r.AddRow("PMI", FormatCurrency(m.MonthlyPMI))
	}
	r.AddRow("Total Monthly Payment", FormatCurrency(m.TotalMonthlyPayment))
	r.AddRow("Total Interest", FormatCurrency(m.TotalInterest))
	r.AddRow("Payoff Month", strconv.Itoa(m.Schedule.PayoffMonth))
	if m.MonthsSaved > 0 {
		r.AddRow("Interest Saved", FormatCurrency(m.InterestSaved))
		r.AddRow("Months Saved", strconv.Itoa(m.MonthsSaved))
	}

	// yearly snapshot keeps the table readable for 30-year loans
	var rows [][]string
	for _, row := range m.Schedule.Rows {
		if row.Month%12 != 0 && row.Month != m.Schedule.PayoffMonth {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(row.Month),
			FormatCurrency(row.Payment),
			FormatCurrency(row.Principal),
			FormatCurrency(row.Interest),
			FormatCurrency(row.Balance),
		})
	}
	addCapped(r, "Amortization (yearly)", []string{"Month", "Payment", "Principal", "Interest", "Balance"}, rows)
	r.Recommendations = m.Recommendations
}

func buildRetirement(r *Report, rr domain.RetirementResult) {
	r.AddRow("Years to Retirement", strconv.Itoa(rr.YearsToRetirement))
	r.AddRow("Projected Savings", FormatCurrency(rr.ProjectedSavings))
	r.AddRow("In Today's Dollars", FormatCurrency(rr.InflationAdjusted))
	r.AddRow("Total Contributions", FormatCurrency(rr.TotalContributions))
	r.AddRow("Sustainable Monthly Income", FormatCurrency(rr.SustainableMonthly))
	r.AddRow("Required Savings", FormatCurrency(rr.RequiredSavings))
	if rr.OnTrack {
		r.AddRow("Status", "On track")
	} else {
		r.AddRow("Status", "Shortfall")
		r.AddRow("Shortfall", FormatCurrency(rr.Shortfall))
		r.AddRow("Required Monthly Savings", FormatCurrency(rr.RequiredMonthlySavings))
	}
	r.Recommendations = rr.Recommendations
}

func buildPortfolio(r *Report, a domain.PortfolioAnalysis) {
	r.AddRow("Total Value", FormatCurrency(a.TotalValue))
	if a.LargestHolding != "" {
		r.AddRow("Largest Holding", fmt.Sprintf("%s (%.1f%%)", a.LargestHolding, a.LargestPercent))
	}
	r.AddRow("Expected Return", FormatFloatPercentage(a.ExpectedReturn))
	r.AddRow("Expected Volatility", FormatFloatPercentage(a.ExpectedVolatility))
	r.AddRow("Overall Score", fmt.Sprintf("%.0f / 100", a.Scores.Overall))

	r.AddSection("Diversification Scores", []string{"Component", "Score"}, [][]string{
		{"Asset class", fmt.Sprintf("%.1f", a.Scores.AssetClass)},
		{"Geographic", fmt.Sprintf("%.1f", a.Scores.Geographic)},
		{"Sector", fmt.Sprintf("%.1f", a.Scores.Sector)},
		{"Concentration", fmt.Sprintf("%.1f", a.Scores.Concentration)},
	})
	r.AddSection("Asset Classes", []string{"Asset Class", "Percent"}, allocationRows(a.AssetClassMix))
	r.AddSection("Sectors", []string{"Sector", "Percent"}, allocationRows(a.SectorMix))
	r.AddSection("Regions", []string{"Region", "Percent"}, allocationRows(a.RegionMix))

	var trades [][]string
	for _, t := range a.Trades {
		trades = append(trades, []string{
			t.Bucket,
			fmt.Sprintf("%.1f%%", t.CurrentPercent),
			fmt.Sprintf("%.1f%%", t.TargetPercent),
			string(t.Action),
			FormatCurrency(t.Amount),
		})
	}
	r.AddSection("Rebalancing", []string{"Asset Class", "Current", "Target", "Action", "Amount"}, trades)
	r.Warnings = a.Warnings
	r.Recommendations = a.Recommendations
}

func buildSimulation(r *Report, s domain.SimulationResult) {
	r.AddRow("Run", s.RunID)
	r.AddRow("Trials", strconv.Itoa(s.Trials))
	r.AddRow("Years", strconv.Itoa(s.TimeHorizon))
	r.AddRow("Median Final Value", FormatFloatCurrency(s.MedianFinalValue))
	r.AddRow("Mean Final Value", FormatFloatCurrency(s.MeanFinalValue))
	r.AddRow("Success Rate", FormatFloatPercentage(s.SuccessRate))
	r.AddRow("Total Contributed", FormatFloatCurrency(s.TotalContributed))
	if s.DepletedTrials > 0 {
		r.AddRow("Depleted Trials", strconv.Itoa(s.DepletedTrials))
	}

	rows := make([][]string, 0, len(s.Bands))
	for _, b := range s.Bands {
		rows = append(rows, []string{
			strconv.Itoa(b.Year),
			FormatFloatCurrency(b.P10),
			FormatFloatCurrency(b.P25),
			FormatFloatCurrency(b.P50),
			FormatFloatCurrency(b.P75),
			FormatFloatCurrency(b.P90),
		})
	}
	addCapped(r, "Percentile Bands", []string{"Year", "P10", "P25", "P50", "P75", "P90"}, rows)
	r.Warnings = s.Warnings
	r.Recommendations = s.Insights
}

func buildStrategy(r *Report, s domain.StrategyResult) {
	r.AddRow("Strategy", string(s.Kind))
	r.AddRow("Net Premium", FormatFloatCurrency(s.NetPremium))
	r.AddRow("Theoretical Value", FormatFloatCurrency(s.TheoreticalValue))
	r.AddRow("Max Profit", limit(s.MaxProfit, s.MaxProfitUnlimited))
	r.AddRow("Max Loss", limit(s.MaxLoss, s.MaxLossUnlimited))
	r.AddRow("Break-Even", fmt.Sprintf("%.2f", s.BreakEven))
	r.AddRow("Probability of Profit", FormatFloatPercentage(s.ProbabilityOfProfit))

	g := s.Greeks
	r.AddSection("Greeks", []string{"Greek", "Value"}, [][]string{
		{"Delta", fmt.Sprintf("%.4f", g.Delta)},
		{"Gamma", fmt.Sprintf("%.4f", g.Gamma)},
		{"Theta", fmt.Sprintf("%.4f", g.Theta)},
		{"Vega", fmt.Sprintf("%.4f", g.Vega)},
		{"Rho", fmt.Sprintf("%.4f", g.Rho)},
	})

	var legs [][]string
	for i, q := range s.LegQuotes {
		legs = append(legs, []string{strconv.Itoa(i + 1), fmt.Sprintf("%.4f", q.Price), fmt.Sprintf("%.4f", q.Delta)})
	}
	r.AddSection("Legs", []string{"Leg", "Model Price", "Delta"}, legs)

	// every tenth point of the diagram
	var payoff [][]string
	for i, p := range s.Payoff {
		if i%10 != 0 && i != len(s.Payoff)-1 {
			continue
		}
		payoff = append(payoff, []string{fmt.Sprintf("%.2f", p.Price), FormatFloatCurrency(p.Profit)})
	}
	r.AddSection("Payoff at Expiration", []string{"Price", "Profit"}, payoff)
	r.Warnings = s.Warnings
	r.Recommendations = s.Insights
}

func buildCredit(r *Report, c domain.CreditComparison) {
	r.AddRow("Current Score", fmt.Sprintf("%d (%s)", c.Current.Score, c.Current.Grade))
	r.AddRow("Target Score", fmt.Sprintf("%d (%s)", c.Target.Score, c.Target.Grade))
	r.AddRow("Point Change", fmt.Sprintf("%+d", c.PointChange))
	r.AddRow("Months to Target", strconv.Itoa(c.MonthsToTarget))

	var impacts [][]string
	for _, imp := range c.Impacts {
		impacts = append(impacts, []string{string(imp.Factor), fmt.Sprintf("%.0f%%", imp.Weight*100), fmt.Sprintf("%+.1f", imp.Impact)})
	}
	r.AddSection("Factor Impact", []string{"Factor", "Weight", "Points"}, impacts)

	var milestones [][]string
	for _, m := range c.Milestones {
		milestones = append(milestones, []string{strconv.Itoa(m.Month), strconv.Itoa(m.Score), m.Label})
	}
	r.AddSection("Milestones", []string{"Month", "Score", "Milestone"}, milestones)
	r.Recommendations = c.Recommendations
}

func buildBudget(r *Report, b domain.BudgetResult) {
	r.AddRow("Total Spending", FormatCurrency(b.TotalSpending))
	r.AddRow("Surplus", FormatCurrency(b.Surplus))
	if b.Balanced {
		r.AddRow("Status", "Balanced")
	} else {
		r.AddRow("Status", "Off target")
	}

	var rows [][]string
	for _, c := range b.Categories {
		rows = append(rows, []string{
			c.Name,
			FormatCurrency(c.Amount),
			FormatPercentage(c.Percent),
			FormatPercentage(c.TargetPercent),
			FormatCurrency(c.Difference),
		})
	}
	r.AddSection("Categories", []string{"Category", "Amount", "Percent", "Target", "Difference"}, rows)
	r.Recommendations = b.Recommendations
}

func buildValuation(r *Report, v domain.ValuationResult) {
	if v.DCFEnterpriseValue.IsPositive() {
		r.AddRow("PV of Cash Flows", FormatCurrency(v.PresentValueOfCashFlows))
		r.AddRow("Terminal Value", FormatCurrency(v.TerminalValue))
		r.AddRow("PV of Terminal Value", FormatCurrency(v.PresentTerminalValue))
		r.AddRow("DCF Enterprise Value", FormatCurrency(v.DCFEnterpriseValue))
	}
	if v.RevenueMultipleValue.IsPositive() {
		r.AddRow("Revenue Multiple Value", FormatCurrency(v.RevenueMultipleValue))
	}
	if v.EBITDAMultipleValue.IsPositive() {
		r.AddRow("EBITDA Multiple Value", FormatCurrency(v.EBITDAMultipleValue))
	}
	r.AddRow("Enterprise Value", FormatCurrency(v.BlendedEnterpriseValue))
	r.AddRow("Equity Value", FormatCurrency(v.EquityValue))
	if !v.PerShareValue.IsZero() {
		r.AddRow("Per Share", FormatCurrency(v.PerShareValue))
	}
	if v.ImpliedEBITDAMultiple.IsPositive() {
		r.AddRow("Implied EBITDA Multiple", v.ImpliedEBITDAMultiple.StringFixed(2)+"x")
	}
	r.Warnings = v.Warnings
}

func buildCrypto(r *Report, c domain.CryptoResult) {
	r.AddRow("Current Crypto", fmt.Sprintf("%s (%.1f%%)", FormatCurrency(c.CurrentAmount), c.CurrentPercent))
	r.AddRow("Recommended Range", fmt.Sprintf("%.0f%% - %.0f%%", c.RecommendedMinPercent, c.RecommendedMaxPercent))
	r.AddRow("Recommended Amount", FormatCurrency(c.RecommendedMinAmount)+" - "+FormatCurrency(c.RecommendedMaxAmount))
	r.AddRow("Concentration Score", fmt.Sprintf("%.0f", c.ConcentrationScore))
	r.AddRow("Action", string(c.Action))
	r.Warnings = c.Warnings
	r.Recommendations = c.Recommendations
}

func buildValidation(r *Report, v validation.Result) {
	if v.IsValid {
		r.AddRow("Status", "Valid")
		return
	}
	r.AddRow("Status", "Invalid")
	var rows [][]string
	for _, field := range v.Fields() {
		rows = append(rows, []string{field, v.Codes[field], v.Errors[field]})
	}
	r.AddSection("Errors", []string{"Field", "Code", "Message"}, rows)
}

func allocationRows(a domain.Allocation) [][]string {
	sorted := append(domain.Allocation(nil), a...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Percent > sorted[j].Percent })
	rows := make([][]string, 0, len(sorted))
	for _, e := range sorted {
		rows = append(rows, []string{e.Bucket, fmt.Sprintf("%.1f%%", e.Percent)})
	}
	return rows
}

func addCapped(r *Report, title string, headers []string, rows [][]string) {
	if len(rows) > maxScheduleRows {
		r.Notes = append(r.Notes, fmt.Sprintf("%s truncated to %d of %d rows; use --format json for the full table", title, maxScheduleRows, len(rows)))
		rows = rows[:maxScheduleRows]
	}
	r.AddSection(title, headers, rows)
}

func percentOf(part, whole decimal.Decimal) string {
	if !whole.IsPositive() {
		return "-"
	}
	return FormatPercentage(part.Div(whole).Mul(decimal.NewFromInt(100)))
}

func limit(v float64, unlimited bool) string {
	if unlimited {
		return "Unlimited"
	}
	return FormatFloatCurrency(v)
}
