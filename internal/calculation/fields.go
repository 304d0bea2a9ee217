package calculation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/rgehrsitz/finlit/internal/numeric"
	"github.com/rgehrsitz/finlit/internal/validation"
	"github.com/shopspring/decimal"
)

// Field bags carry rates in percent as users type them; the binders below
// convert them to the fractions the calculators take.

func rate(f numeric.Fields, name string, defPercent float64) decimal.Decimal {
	return f.Decimal(name, decimal.NewFromFloat(defPercent)).Div(hundred)
}

func rateFloat(f numeric.Fields, name string, defPercent float64) float64 {
	return f.Float(name, defPercent) / 100
}

// PaycheckInputFromFields binds the paycheck fields.
func PaycheckInputFromFields(f numeric.Fields) domain.PaycheckInput {
	return domain.PaycheckInput{
		GrossPay:              f.Decimal(validation.FieldGrossPay, decimal.Zero),
		PayPeriodsPerYear:     f.Int(validation.FieldPayFrequency, DefaultPayPeriods),
		FilingStatus:          domain.ParseFilingStatus(f.String(validation.FieldFilingStatus, "")),
		State:                 f.String(validation.FieldState, ""),
		HealthInsurance:       f.Decimal(validation.FieldHealthInsurance, decimal.Zero),
		RetirementPercent:     f.Decimal(validation.FieldRetirementPercent, decimal.Zero),
		AdditionalWithholding: f.Decimal(validation.FieldAdditionalWithholding, decimal.Zero),
		ItemizedDeductions:    f.Decimal(validation.FieldItemizedDeductions, decimal.Zero),
	}
}

// CompoundInterestInputFromFields binds the growth fields.
func CompoundInterestInputFromFields(f numeric.Fields) domain.CompoundInterestInput {
	return domain.CompoundInterestInput{
		Principal:           f.Decimal(validation.FieldPrincipal, decimal.Zero),
		AnnualRate:          rate(f, validation.FieldAnnualRate, 0),
		Years:               f.Int(validation.FieldYears, 0),
		CompoundsPerYear:    f.Int(validation.FieldCompoundsPerYear, 12),
		MonthlyContribution: f.Decimal(validation.FieldMonthlyContribution, decimal.Zero),
	}
}

// MortgageInputFromFields binds the mortgage fields.
func MortgageInputFromFields(f numeric.Fields) domain.MortgageInput {
	return domain.MortgageInput{
		HomePrice:          f.Decimal(validation.FieldHomePrice, decimal.Zero),
		DownPaymentPercent: f.Decimal(validation.FieldDownPaymentPercent, decimal.NewFromInt(PMIEquityPercent)),
		InterestRate:       rate(f, validation.FieldInterestRate, 0),
		TermYears:          f.Int(validation.FieldTermYears, DefaultMortgageTermYears),
		PropertyTaxRate:    rate(f, validation.FieldPropertyTaxRate, 0),
		HomeInsurance:      f.Decimal(validation.FieldHomeInsurance, decimal.Zero),
		ExtraPayment:       f.Decimal(validation.FieldExtraPayment, decimal.Zero),
	}
}

// RetirementInputFromFields binds the retirement fields. Inflation defaults
// to the rules' market assumption.
func (e *Engine) RetirementInputFromFields(f numeric.Fields) domain.RetirementInput {
	return domain.RetirementInput{
		CurrentAge:           f.Int(validation.FieldCurrentAge, 0),
		RetirementAge:        f.Int(validation.FieldRetirementAge, 0),
		CurrentSavings:       f.Decimal(validation.FieldCurrentSavings, decimal.Zero),
		MonthlyContribution:  f.Decimal(validation.FieldMonthlyContribution, decimal.Zero),
		ExpectedReturn:       rate(f, validation.FieldExpectedReturn, 0),
		InflationRate:        rate(f, validation.FieldInflationRate, e.Rules.Market.InflationRate*100),
		DesiredMonthlyIncome: f.Decimal(validation.FieldDesiredMonthlyIncome, decimal.Zero),
	}
}

// SimulationParamsFromFields binds the Monte Carlo fields. Missing return
// and volatility figures come from the rules' market assumptions; a missing
// allocation is 60/40.
func (e *Engine) SimulationParamsFromFields(f numeric.Fields) domain.SimulationParams {
	m := e.Rules.Market
	stocks, bonds := m.Asset(domain.AssetStocks), m.Asset(domain.AssetBonds)
	stockPct, bondPct := 60.0, 40.0
	if f.Has(validation.FieldStockAllocation) || f.Has(validation.FieldBondAllocation) {
		stockPct = f.Float(validation.FieldStockAllocation, 0)
		bondPct = f.Float(validation.FieldBondAllocation, 100-stockPct)
	}
	return domain.SimulationParams{
		Trials:              f.Int(validation.FieldTrials, DefaultTrials),
		BatchSize:           DefaultBatchSize,
		TimeHorizon:         f.Int(validation.FieldYears, DefaultTimeHorizon),
		InitialValue:        f.Float(validation.FieldInitialValue, 0),
		MonthlyContribution: f.Float(validation.FieldMonthlyContribution, 0),
		StockPercent:        stockPct,
		BondPercent:         bondPct,
		StockMean:           rateFloat(f, validation.FieldStockReturn, stocks.ExpectedReturn*100),
		StockVolatility:     rateFloat(f, validation.FieldStockVolatility, stocks.Volatility*100),
		BondMean:            rateFloat(f, validation.FieldBondReturn, bonds.ExpectedReturn*100),
		BondVolatility:      rateFloat(f, validation.FieldBondVolatility, bonds.Volatility*100),
		Correlation:         f.Float(validation.FieldCorrelation, m.StockBondCorrelation),
		WithdrawalRate:      rateFloat(f, validation.FieldWithdrawalRate, 4),
		GoalAnnualIncome:    f.Float(validation.FieldGoalAnnualIncome, 0),
		Seed:                int64(f.Int(validation.FieldSeed, 0)),
	}
}

// OptionStrategyFromFields binds the options fields. Spreads take their
// second leg from secondStrike and secondPremium.
func OptionStrategyFromFields(f numeric.Fields) domain.OptionStrategy {
	kind := domain.StrategyKind(strings.ToLower(f.String(validation.FieldStrategy, string(domain.StrategyLongCall))))
	legs := []domain.OptionLeg{{
		Strike:  f.Float(validation.FieldStrike, 0),
		Premium: f.Float(validation.FieldPremium, 0),
	}}
	if f.Has(validation.FieldSecondStrike) {
		legs = append(legs, domain.OptionLeg{
			Strike:  f.Float(validation.FieldSecondStrike, 0),
			Premium: f.Float(validation.FieldSecondPremium, 0),
		})
	}
	return domain.OptionStrategy{
		Kind: kind,
		Legs: legs,
		Market: domain.MarketParams{
			Spot:              f.Float(validation.FieldSpotPrice, 0),
			DaysToExpiration:  f.Int(validation.FieldDaysToExpiration, 0),
			ImpliedVolatility: rateFloat(f, validation.FieldImpliedVolatility, 0),
			RiskFreeRate:      rateFloat(f, validation.FieldRiskFreeRate, 0),
			DividendYield:     rateFloat(f, validation.FieldDividendYield, 0),
			Contracts:         f.Int(validation.FieldContracts, 1),
		},
	}
}

// CreditProfileFromFields binds a profile; prefix selects the target profile
// ("target.") and def supplies values for fields that are absent.
func CreditProfileFromFields(f numeric.Fields, prefix string, def domain.CreditProfile) domain.CreditProfile {
	name := func(field string) string { return prefix + field }
	return domain.CreditProfile{
		PaymentHistory:    f.Float(name(validation.FieldPaymentHistory), def.PaymentHistory),
		CreditUtilization: f.Float(name(validation.FieldCreditUtilization), def.CreditUtilization),
		CreditAgeYears:    f.Float(name(validation.FieldCreditAge), def.CreditAgeYears),
		CreditMix:         f.Float(name(validation.FieldCreditMix), def.CreditMix),
		NewInquiries:      f.Int(name(validation.FieldNewInquiries), def.NewInquiries),
	}
}

// BudgetInputFromFields binds the budget fields.
func BudgetInputFromFields(f numeric.Fields) domain.BudgetInput {
	return domain.BudgetInput{
		MonthlyIncome: f.Decimal(validation.FieldMonthlyIncome, decimal.Zero),
		Needs:         f.Decimal(validation.FieldNeeds, decimal.Zero),
		Wants:         f.Decimal(validation.FieldWants, decimal.Zero),
		Savings:       f.Decimal(validation.FieldSavings, decimal.Zero),
	}
}

// ValuationInputFromFields binds the valuation fields. Cash flows are a list
// or a comma separated string.
func ValuationInputFromFields(f numeric.Fields) domain.ValuationInput {
	var flows []decimal.Decimal
	for _, cf := range f.Floats(validation.FieldCashFlows) {
		flows = append(flows, decimal.NewFromFloat(cf))
	}
	return domain.ValuationInput{
		CashFlows:       flows,
		DiscountRate:    rate(f, validation.FieldDiscountRate, 0),
		TerminalGrowth:  rate(f, validation.FieldTerminalGrowth, 0),
		Revenue:         f.Decimal(validation.FieldRevenue, decimal.Zero),
		RevenueMultiple: f.Decimal(validation.FieldRevenueMultiple, decimal.Zero),
		EBITDA:          f.Decimal(validation.FieldEBITDA, decimal.Zero),
		EBITDAMultiple:  f.Decimal(validation.FieldEBITDAMultiple, decimal.Zero),
		NetDebt:         f.Decimal(validation.FieldNetDebt, decimal.Zero),
		Shares:          f.Decimal(validation.FieldShares, decimal.Zero),
	}
}

// CryptoInputFromFields binds the crypto fields. Individual positions in
// cryptoPositions take precedence over the cryptoHoldings total.
func CryptoInputFromFields(f numeric.Fields) domain.CryptoInput {
	in := domain.CryptoInput{
		PortfolioValue: f.Decimal(validation.FieldPortfolioValue, decimal.Zero),
		RiskTolerance:  domain.RiskTolerance(strings.ToLower(f.String(validation.FieldRiskTolerance, string(domain.RiskModerate)))),
	}
	if f.Has(validation.FieldCryptoPositions) {
		in.CryptoHoldings = ParseHoldings(f[validation.FieldCryptoPositions])
		for i := range in.CryptoHoldings {
			in.CryptoHoldings[i].AssetClass = domain.AssetCrypto
		}
	} else if f.Has(validation.FieldCryptoHoldings) {
		in.CryptoHoldings = []domain.Holding{{
			Symbol:     "CRYPTO",
			Value:      f.Decimal(validation.FieldCryptoHoldings, decimal.Zero),
			AssetClass: domain.AssetCrypto,
		}}
	}
	return in
}

// PortfolioInputFromFields binds the holdings, targets and rebalance fields.
// Absent rebalance fields leave the engine defaults in effect.
func PortfolioInputFromFields(f numeric.Fields) domain.PortfolioInput {
	in := domain.PortfolioInput{
		Holdings: ParseHoldings(f[validation.FieldHoldings]),
		Targets:  ParseAllocation(f[validation.FieldTargets]),
	}
	if threshold, ok := rebalanceField(f, validation.FieldRebalanceThreshold); ok {
		in.Rebalance.ThresholdPercent = &threshold
	}
	if _, ok := rebalanceField(f, validation.FieldMinimumTrade); ok {
		minimum := f.Decimal(validation.FieldMinimumTrade, decimal.Zero)
		in.Rebalance.MinimumTrade = &minimum
	}
	return in
}

// rebalanceField reports a present, parseable, non-negative field. Anything
// else leaves the engine default in place.
func rebalanceField(f numeric.Fields, name string) (float64, bool) {
	if !f.Has(name) {
		return 0, false
	}
	if s, isString := f[name].(string); isString {
		v, ok := numeric.ParseAmountOK(s)
		return v, ok && v >= 0
	}
	v := f.Float(name, 0)
	return v, v >= 0
}

// ParseHoldings accepts a list of objects (as decoded from JSON, YAML or TOML) or
// text of the form "SYMBOL:VALUE[:CLASS[:SECTOR[:REGION]]]" with entries
// separated by semicolons or newlines.
func ParseHoldings(v any) []domain.Holding {
	var holdings []domain.Holding
	switch x := v.(type) {
	case []domain.Holding:
		return x
	case []any:
		for _, item := range x {
			if m, ok := item.(map[string]any); ok {
				holdings = append(holdings, holdingFromMap(m))
			}
		}
	case []map[string]any:
		// TOML arrays of tables
		for _, m := range x {
			holdings = append(holdings, holdingFromMap(m))
		}
	case string:
		entries := strings.FieldsFunc(x, func(r rune) bool { return r == ';' || r == '\n' })
		for _, entry := range entries {
			parts := strings.Split(strings.TrimSpace(entry), ":")
			if len(parts) < 2 {
				continue
			}
			h := domain.Holding{Symbol: strings.TrimSpace(parts[0]), Value: numeric.ParseDecimal(parts[1])}
			if len(parts) > 2 {
				h.AssetClass = domain.AssetClass(strings.ToLower(strings.TrimSpace(parts[2])))
			}
			if len(parts) > 3 {
				h.Sector = strings.TrimSpace(parts[3])
			}
			if len(parts) > 4 {
				h.Region = strings.TrimSpace(parts[4])
			}
			holdings = append(holdings, h)
		}
	}
	return holdings
}

func holdingFromMap(m map[string]any) domain.Holding {
	hf := numeric.Fields(m)
	return domain.Holding{
		Symbol:     hf.String("symbol", ""),
		Value:      hf.Decimal("value", decimal.Zero),
		AssetClass: domain.AssetClass(strings.ToLower(firstNonEmpty(hf.String("assetClass", ""), hf.String("asset_class", "")))),
		Sector:     hf.String("sector", ""),
		Region:     hf.String("region", ""),
	}
}

// ParseAllocation accepts a bucket-to-percent map or "bucket=percent" pairs
// separated by commas.
func ParseAllocation(v any) domain.Allocation {
	var alloc domain.Allocation
	switch x := v.(type) {
	case domain.Allocation:
		return x
	case map[string]any:
		for bucket, pct := range x {
			alloc = append(alloc, domain.AllocationEntry{Bucket: strings.ToLower(bucket), Percent: numeric.Coerce(pct)})
		}
	case string:
		for _, pair := range strings.Split(x, ",") {
			bucket, pct, ok := strings.Cut(pair, "=")
			if !ok {
				continue
			}
			alloc = append(alloc, domain.AllocationEntry{
				Bucket:  strings.ToLower(strings.TrimSpace(bucket)),
				Percent: numeric.ParseAmount(pct),
			})
		}
	}
	sort.SliceStable(alloc, func(i, j int) bool { return alloc[i].Bucket < alloc[j].Bucket })
	return alloc
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Evaluation is the result of running a calculator over a field bag.
// Validation problems are reported alongside the result; the calculator
// still runs with invalid fields read as zero or their default.
type Evaluation struct {
	Calculator string            `json:"calculator"`
	Validation validation.Result `json:"validation"`
	Result     any               `json:"result"`
}

// Calculators lists the names Evaluate accepts, in display order.
var Calculators = []string{
	"paycheck", "growth", "mortgage", "retirement", "portfolio", "montecarlo",
	"options", "credit", "budget", "valuation", "crypto",
}

// Evaluate validates the fields against the calculator's schema, binds them
// and runs the calculator.
func (e *Engine) Evaluate(ctx context.Context, calculator string, f numeric.Fields) (*Evaluation, error) {
	name := strings.ToLower(strings.TrimSpace(calculator))
	schema, ok := validation.Schemas[name]
	if !ok {
		return nil, &CalculationError{Operation: "evaluate", Message: fmt.Sprintf("unknown calculator %q", calculator)}
	}

	ev := &Evaluation{Calculator: name, Validation: validation.ValidateFields(f.Strings(), schema)}
	if !ev.Validation.IsValid {
		e.logger().Warnf("%s: invalid fields %v", name, ev.Validation.Fields())
	}

	switch name {
	case "paycheck":
		ev.Result = e.CalculatePaycheck(PaycheckInputFromFields(f))
	case "growth":
		ev.Result = e.CompoundInterest(CompoundInterestInputFromFields(f))
	case "mortgage":
		ev.Result = e.CalculateMortgage(MortgageInputFromFields(f))
	case "retirement":
		ev.Result = e.ProjectRetirement(e.RetirementInputFromFields(f))
	case "portfolio":
		ev.Result = e.AnalyzePortfolio(PortfolioInputFromFields(f))
	case "montecarlo":
		res, err := e.RunMonteCarlo(ctx, e.SimulationParamsFromFields(f))
		if err != nil {
			return nil, err
		}
		ev.Result = res
	case "options":
		res, err := e.AnalyzeStrategy(OptionStrategyFromFields(f))
		if err != nil {
			return nil, err
		}
		ev.Result = res
	case "credit":
		current := CreditProfileFromFields(f, "", domain.CreditProfile{})
		target := CreditProfileFromFields(f, validation.TargetField(""), current)
		ev.Result = e.CompareCreditProfiles(current, target)
	case "budget":
		ev.Result = e.AnalyzeBudget(BudgetInputFromFields(f))
	case "valuation":
		ev.Result = e.ValueBusiness(ValuationInputFromFields(f))
	case "crypto":
		ev.Result = e.RecommendCryptoAllocation(CryptoInputFromFields(f))
	}
	return ev, nil
}
