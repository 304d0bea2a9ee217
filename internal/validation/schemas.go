package validation

// Field names shared by the CLI flags, HTTP bodies and input files.
const (
	FieldGrossPay              = "grossPay"
	FieldPayFrequency          = "payFrequency"
	FieldFilingStatus          = "filingStatus"
	FieldState                 = "state"
	FieldHealthInsurance       = "healthInsurance"
	FieldRetirementPercent     = "retirement401kPercent"
	FieldAdditionalWithholding = "additionalWithholding"
	FieldItemizedDeductions    = "itemizedDeductions"

	FieldPrincipal           = "principal"
	FieldAnnualRate          = "annualRate"
	FieldYears               = "years"
	FieldCompoundsPerYear    = "compoundsPerYear"
	FieldMonthlyContribution = "monthlyContribution"

	FieldHomePrice          = "homePrice"
	FieldDownPaymentPercent = "downPaymentPercent"
	FieldInterestRate       = "interestRate"
	FieldTermYears          = "termYears"
	FieldPropertyTaxRate    = "propertyTaxRate"
	FieldHomeInsurance      = "homeInsurance"
	FieldExtraPayment       = "extraPayment"

	FieldCurrentAge           = "currentAge"
	FieldRetirementAge        = "retirementAge"
	FieldCurrentSavings       = "currentSavings"
	FieldExpectedReturn       = "expectedReturn"
	FieldInflationRate        = "inflationRate"
	FieldDesiredMonthlyIncome = "desiredMonthlyIncome"

	FieldInitialValue     = "initialValue"
	FieldStockAllocation  = "stockAllocation"
	FieldBondAllocation   = "bondAllocation"
	FieldStockReturn      = "stockReturn"
	FieldStockVolatility  = "stockVolatility"
	FieldBondReturn       = "bondReturn"
	FieldBondVolatility   = "bondVolatility"
	FieldCorrelation      = "correlation"
	FieldTrials           = "trials"
	FieldWithdrawalRate   = "withdrawalRate"
	FieldGoalAnnualIncome = "goalAnnualIncome"
	FieldSeed             = "seed"

	FieldStrategy          = "strategy"
	FieldSpotPrice         = "stockPrice"
	FieldStrike            = "strike"
	FieldPremium           = "premium"
	FieldSecondStrike      = "secondStrike"
	FieldSecondPremium     = "secondPremium"
	FieldDaysToExpiration  = "daysToExpiration"
	FieldImpliedVolatility = "impliedVolatility"
	FieldRiskFreeRate      = "riskFreeRate"
	FieldDividendYield     = "dividendYield"
	FieldContracts         = "contracts"

	FieldPaymentHistory    = "paymentHistory"
	FieldCreditUtilization = "creditUtilization"
	FieldCreditAge         = "creditAge"
	FieldCreditMix         = "creditMix"
	FieldNewInquiries      = "newInquiries"

	FieldMonthlyIncome = "monthlyIncome"
	FieldNeeds         = "needs"
	FieldWants         = "wants"
	FieldSavings       = "savings"

	FieldCashFlows       = "cashFlows"
	FieldDiscountRate    = "discountRate"
	FieldTerminalGrowth  = "terminalGrowth"
	FieldRevenue         = "revenue"
	FieldRevenueMultiple = "revenueMultiple"
	FieldEBITDA          = "ebitda"
	FieldEBITDAMultiple  = "ebitdaMultiple"
	FieldNetDebt         = "netDebt"
	FieldShares          = "sharesOutstanding"

	FieldPortfolioValue     = "portfolioValue"
	FieldCryptoHoldings     = "cryptoHoldings"
	FieldRiskTolerance      = "riskTolerance"
	FieldRebalanceThreshold = "rebalanceThreshold"
	FieldMinimumTrade       = "minimumTrade"
	FieldCryptoPositions    = "cryptoPositions"
	FieldHoldings           = "holdings"
	FieldTargets            = "targets"
)

// TargetField prefixes a credit field for the target profile.
func TargetField(name string) string {
	return "target." + name
}

var PaycheckSchema = Schema{
	FieldGrossPay:              {Label: "Gross pay", Required: true, Type: TypeCurrency, Min: Bound(0), Max: Bound(10_000_000)},
	FieldPayFrequency:          {Label: "Pay periods per year", Type: TypeInteger, Min: Bound(1), Max: Bound(365)},
	FieldHealthInsurance:       {Label: "Health insurance", Type: TypeCurrency, Min: Bound(0)},
	FieldRetirementPercent:     {Label: "401(k) contribution", Type: TypePercentage, Max: Bound(75)},
	FieldAdditionalWithholding: {Label: "Additional withholding", Type: TypeCurrency, Min: Bound(0)},
	FieldItemizedDeductions:    {Label: "Itemized deductions", Type: TypeCurrency, Min: Bound(0)},
}

var CompoundInterestSchema = Schema{
	FieldPrincipal:           {Label: "Initial investment", Required: true, Type: TypeCurrency, Min: Bound(0)},
	FieldAnnualRate:          {Label: "Annual interest rate", Required: true, Type: TypePercentage, Max: Bound(50)},
	FieldYears:               {Label: "Years", Required: true, Type: TypeInteger, Min: Bound(1), Max: Bound(100)},
	FieldCompoundsPerYear:    {Label: "Compounding frequency", Type: TypeInteger, Min: Bound(1), Max: Bound(365)},
	FieldMonthlyContribution: {Label: "Monthly contribution", Type: TypeCurrency, Min: Bound(0)},
}

var MortgageSchema = Schema{
	FieldHomePrice:          {Label: "Home price", Required: true, Type: TypeCurrency, Min: Bound(1000)},
	FieldDownPaymentPercent: {Label: "Down payment", Required: true, Type: TypePercentage},
	FieldInterestRate:       {Label: "Interest rate", Required: true, Type: TypePercentage, Max: Bound(30)},
	FieldTermYears:          {Label: "Loan term", Required: true, Type: TypeInteger, Min: Bound(1), Max: Bound(50)},
	FieldPropertyTaxRate:    {Label: "Property tax rate", Type: TypePercentage, Max: Bound(10)},
	FieldHomeInsurance:      {Label: "Home insurance", Type: TypeCurrency, Min: Bound(0)},
	FieldExtraPayment:       {Label: "Extra monthly payment", Type: TypeCurrency, Min: Bound(0)},
}

var RetirementSchema = Schema{
	FieldCurrentAge:           {Label: "Current age", Required: true, Type: TypeInteger, Min: Bound(16), Max: Bound(100)},
	FieldRetirementAge:        {Label: "Retirement age", Required: true, Type: TypeInteger, Min: Bound(30), Max: Bound(100)},
	FieldCurrentSavings:       {Label: "Current savings", Type: TypeCurrency, Min: Bound(0)},
	FieldMonthlyContribution:  {Label: "Monthly contribution", Type: TypeCurrency, Min: Bound(0)},
	FieldExpectedReturn:       {Label: "Expected return", Required: true, Type: TypePercentage, Max: Bound(20)},
	FieldInflationRate:        {Label: "Inflation rate", Type: TypePercentage, Max: Bound(15)},
	FieldDesiredMonthlyIncome: {Label: "Desired monthly income", Type: TypeCurrency, Min: Bound(0)},
}

var MonteCarloSchema = Schema{
	FieldInitialValue:        {Label: "Initial portfolio value", Required: true, Type: TypeCurrency, Min: Bound(0)},
	FieldMonthlyContribution: {Label: "Monthly contribution", Type: TypeCurrency, Min: Bound(0)},
	FieldYears:               {Label: "Time horizon", Required: true, Type: TypeInteger, Min: Bound(1), Max: Bound(100)},
	FieldStockAllocation:     {Label: "Stock allocation", Type: TypePercentage},
	FieldBondAllocation:      {Label: "Bond allocation", Type: TypePercentage},
	FieldStockReturn:         {Label: "Stock return", Type: TypeNumber, Min: Bound(-50), Max: Bound(50)},
	FieldStockVolatility:     {Label: "Stock volatility", Type: TypePercentage},
	FieldBondReturn:          {Label: "Bond return", Type: TypeNumber, Min: Bound(-50), Max: Bound(50)},
	FieldBondVolatility:      {Label: "Bond volatility", Type: TypePercentage},
	FieldCorrelation:         {Label: "Correlation", Type: TypeNumber, Min: Bound(-1), Max: Bound(1)},
	FieldTrials:              {Label: "Simulations", Type: TypeInteger, Min: Bound(1), Max: Bound(50_000)},
	FieldWithdrawalRate:      {Label: "Withdrawal rate", Type: TypePercentage},
	FieldGoalAnnualIncome:    {Label: "Annual income goal", Type: TypeCurrency, Min: Bound(0)},
}

var OptionsSchema = Schema{
	FieldSpotPrice:         {Label: "Stock price", Required: true, Type: TypeCurrency, Min: Bound(0.01)},
	FieldStrike:            {Label: "Strike price", Required: true, Type: TypeCurrency, Min: Bound(0.01)},
	FieldPremium:           {Label: "Premium", Type: TypeCurrency, Min: Bound(0)},
	FieldSecondStrike:      {Label: "Second strike", Type: TypeCurrency, Min: Bound(0.01)},
	FieldSecondPremium:     {Label: "Second premium", Type: TypeCurrency, Min: Bound(0)},
	FieldDaysToExpiration:  {Label: "Days to expiration", Required: true, Type: TypeInteger, Min: Bound(0), Max: Bound(3650)},
	FieldImpliedVolatility: {Label: "Implied volatility", Required: true, Type: TypeNumber, Min: Bound(1), Max: Bound(300)},
	FieldRiskFreeRate:      {Label: "Risk-free rate", Type: TypePercentage, Max: Bound(20)},
	FieldDividendYield:     {Label: "Dividend yield", Type: TypePercentage, Max: Bound(20)},
	FieldContracts:         {Label: "Contracts", Type: TypeInteger, Min: Bound(1), Max: Bound(10_000)},
}

// CreditProfileSchema validates one credit profile; CreditComparisonSchema
// validates the current and target profiles side by side.
var CreditProfileSchema = Schema{
	FieldPaymentHistory:    {Label: "On-time payment history", Required: true, Type: TypePercentage},
	FieldCreditUtilization: {Label: "Credit utilization", Required: true, Type: TypePercentage},
	FieldCreditAge:         {Label: "Average credit age", Required: true, Type: TypeNumber, Min: Bound(0), Max: Bound(80)},
	FieldCreditMix:         {Label: "Credit mix score", Type: TypePercentage},
	FieldNewInquiries:      {Label: "New inquiries", Type: TypeInteger, Min: Bound(0), Max: Bound(50)},
}

var CreditComparisonSchema = func() Schema {
	s := Schema{}
	for name, rule := range CreditProfileSchema {
		s[name] = rule
		target := rule
		target.Label = "Target " + lowerFirst(rule.Label)
		target.Required = false
		s[TargetField(name)] = target
	}
	return s
}()

var BudgetSchema = Schema{
	FieldMonthlyIncome: {Label: "Monthly income", Required: true, Type: TypeCurrency, Min: Bound(0)},
	FieldNeeds:         {Label: "Needs spending", Type: TypeCurrency, Min: Bound(0)},
	FieldWants:         {Label: "Wants spending", Type: TypeCurrency, Min: Bound(0)},
	FieldSavings:       {Label: "Savings", Type: TypeCurrency, Min: Bound(0)},
}

var ValuationSchema = Schema{
	FieldDiscountRate:    {Label: "Discount rate", Required: true, Type: TypePercentage, Min: Bound(0.1), Max: Bound(50)},
	FieldTerminalGrowth:  {Label: "Terminal growth", Type: TypeNumber, Min: Bound(-5), Max: Bound(10)},
	FieldRevenue:         {Label: "Revenue", Type: TypeCurrency, Min: Bound(0)},
	FieldRevenueMultiple: {Label: "Revenue multiple", Type: TypeNumber, Min: Bound(0), Max: Bound(100)},
	FieldEBITDA:          {Label: "EBITDA", Type: TypeCurrency},
	FieldEBITDAMultiple:  {Label: "EBITDA multiple", Type: TypeNumber, Min: Bound(0), Max: Bound(100)},
	FieldNetDebt:         {Label: "Net debt", Type: TypeCurrency},
	FieldShares:          {Label: "Shares outstanding", Type: TypeNumber, Min: Bound(0)},
}

var CryptoSchema = Schema{
	FieldPortfolioValue: {Label: "Total portfolio value", Required: true, Type: TypeCurrency, Min: Bound(0)},
	FieldCryptoHoldings: {Label: "Current crypto holdings", Type: TypeCurrency, Min: Bound(0)},
}

var PortfolioSchema = Schema{
	FieldRebalanceThreshold: {Label: "Rebalance threshold", Type: TypePercentage, Max: Bound(50)},
	FieldMinimumTrade:       {Label: "Minimum trade", Type: TypeCurrency, Min: Bound(0)},
}

// Schemas indexes every calculator schema by calculator name.
var Schemas = map[string]Schema{
	"paycheck":   PaycheckSchema,
	"growth":     CompoundInterestSchema,
	"mortgage":   MortgageSchema,
	"retirement": RetirementSchema,
	"montecarlo": MonteCarloSchema,
	"options":    OptionsSchema,
	"credit":     CreditComparisonSchema,
	"budget":     BudgetSchema,
	"valuation":  ValuationSchema,
	"crypto":     CryptoSchema,
	"portfolio":  PortfolioSchema,
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
