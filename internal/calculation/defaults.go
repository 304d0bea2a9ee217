package calculation

import (
	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/shopspring/decimal"
)

// RULES ASSUMPTIONS:
//
// 1. Federal brackets and standard deductions are illustrative 2024 values and
//    are not indexed for later years.
// 2. State income tax is a single flat rate per state applied to federal
//    taxable income. Progressive state schedules are not modelled.
// 3. State disability insurance is a flat employee rate for the states that
//    run a program; wage caps are ignored.

var federalRates = []float64{0.10, 0.12, 0.22, 0.24, 0.32, 0.35, 0.37}

// schedule builds contiguous brackets from upper bounds. The last rate gets an
// unbounded bracket.
func schedule(upper []int64, rates []float64) []domain.TaxBracket {
	brackets := make([]domain.TaxBracket, 0, len(rates))
	lower := decimal.Zero
	for i, rate := range rates {
		b := domain.TaxBracket{Min: lower, Rate: decimal.NewFromFloat(rate)}
		if i < len(upper) {
			b.Max = decimal.NewFromInt(upper[i])
			lower = b.Max
		}
		brackets = append(brackets, b)
	}
	return brackets
}

// DefaultRules returns the compiled-in tax tables and market assumptions.
func DefaultRules() *domain.Rules {
	return &domain.Rules{
		Metadata: domain.RulesMetadata{
			DataYear:    2024,
			Description: "Illustrative federal, payroll and flat state rates",
		},
		FederalTax: domain.FederalTaxRules{
			StandardDeduction: domain.StandardDeductions{
				Single:               decimal.NewFromInt(14600),
				MarriedFilingJointly: decimal.NewFromInt(29200),
				HeadOfHousehold:      decimal.NewFromInt(21900),
			},
			BracketsSingle:          schedule([]int64{11600, 47150, 100525, 191950, 243725, 609350}, federalRates),
			BracketsMFJ:             schedule([]int64{23200, 94300, 201050, 383900, 487450, 731200}, federalRates),
			BracketsHeadOfHousehold: schedule([]int64{16550, 63100, 100500, 191950, 243700, 609350}, federalRates),
		},
		FICA: domain.FICARules{
			SocialSecurityRate:     decimal.NewFromFloat(0.062),
			SocialSecurityWageBase: decimal.NewFromInt(168600),
			MedicareRate:           decimal.NewFromFloat(0.0145),
		},
		States: defaultStates(),
		Market: DefaultMarketAssumptions(),
	}
}

func defaultStates() map[string]domain.StateRules {
	state := func(name string, rate, disability float64) domain.StateRules {
		return domain.StateRules{
			Name:           name,
			IncomeTaxRate:  decimal.NewFromFloat(rate),
			DisabilityRate: decimal.NewFromFloat(disability),
		}
	}
	return map[string]domain.StateRules{
		"AK": state("Alaska", 0, 0),
		"AZ": state("Arizona", 0.025, 0),
		"CA": state("California", 0.05, 0.009),
		"CO": state("Colorado", 0.044, 0),
		"FL": state("Florida", 0, 0),
		"GA": state("Georgia", 0.0549, 0),
		"HI": state("Hawaii", 0.064, 0.005),
		"IL": state("Illinois", 0.0495, 0),
		"IN": state("Indiana", 0.0305, 0),
		"MA": state("Massachusetts", 0.05, 0),
		"MI": state("Michigan", 0.0425, 0),
		"MN": state("Minnesota", 0.0535, 0),
		"NC": state("North Carolina", 0.045, 0),
		"NH": state("New Hampshire", 0, 0),
		"NJ": state("New Jersey", 0.0525, 0.0009),
		"NV": state("Nevada", 0, 0),
		"NY": state("New York", 0.055, 0.005),
		"OH": state("Ohio", 0.035, 0),
		"OR": state("Oregon", 0.0875, 0),
		"PA": state("Pennsylvania", 0.0307, 0),
		"RI": state("Rhode Island", 0.0475, 0.011),
		"SD": state("South Dakota", 0, 0),
		"TN": state("Tennessee", 0, 0),
		"TX": state("Texas", 0, 0),
		"UT": state("Utah", 0.0465, 0),
		"VA": state("Virginia", 0.0575, 0),
		"WA": state("Washington", 0, 0),
		"WY": state("Wyoming", 0, 0),
	}
}

// DefaultMarketAssumptions are long-run nominal return and volatility figures.
func DefaultMarketAssumptions() domain.MarketAssumptions {
	return domain.MarketAssumptions{
		Assets: map[domain.AssetClass]domain.AssetAssumption{
			domain.AssetStocks:      {ExpectedReturn: 0.10, Volatility: 0.18},
			domain.AssetBonds:       {ExpectedReturn: 0.045, Volatility: 0.06},
			domain.AssetCash:        {ExpectedReturn: 0.02, Volatility: 0.01},
			domain.AssetRealEstate:  {ExpectedReturn: 0.08, Volatility: 0.15},
			domain.AssetCommodities: {ExpectedReturn: 0.05, Volatility: 0.20},
			domain.AssetCrypto:      {ExpectedReturn: 0.20, Volatility: 0.70},
		},
		StockBondCorrelation: 0.2,
		InflationRate:        0.03,
	}
}

// DefaultRebalanceSettings trade only when a bucket is more than five points
// off target and the move is at least $100.
func DefaultRebalanceSettings() domain.RebalanceSettings {
	return domain.RebalanceSettings{
		ThresholdPercent: 5,
		MinimumTrade:     decimal.NewFromInt(100),
	}
}
