package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/rgehrsitz/finlit/internal/numeric"
	"github.com/rgehrsitz/finlit/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_Paycheck(t *testing.T) {
	fields := numeric.Fields{
		validation.FieldGrossPay:          "$5,000",
		validation.FieldPayFrequency:      "12",
		validation.FieldFilingStatus:      "single",
		validation.FieldState:             "CA",
		validation.FieldHealthInsurance:   200,
		validation.FieldRetirementPercent: "5",
	}

	ev, err := NewEngine().Evaluate(context.Background(), "Paycheck", fields)
	require.NoError(t, err)
	assert.Equal(t, "paycheck", ev.Calculator)
	assert.True(t, ev.Validation.IsValid, "errors: %v", ev.Validation.Errors)

	result, ok := ev.Result.(domain.PaycheckResult)
	require.True(t, ok)
	assert.True(t, result.NetPay.Equal(dec("3575.16")), "got %s", result.NetPay)
}

func TestEvaluate_HugeExponentTreatedAsZero(t *testing.T) {
	for _, raw := range []string{"1e400", "1e900000000"} {
		t.Run(raw, func(t *testing.T) {
			ev, err := NewEngine().Evaluate(context.Background(), "paycheck", numeric.Fields{
				validation.FieldGrossPay: raw,
			})
			require.NoError(t, err)
			assert.False(t, ev.Validation.IsValid)
			assert.Contains(t, ev.Validation.Errors, validation.FieldGrossPay)

			result, ok := ev.Result.(domain.PaycheckResult)
			require.True(t, ok)
			assert.True(t, result.GrossPay.IsZero(), "got %s", result.GrossPay)
			assert.True(t, result.NetPay.IsZero(), "got %s", result.NetPay)
		})
	}
}

func TestEvaluate_InvalidFieldsStillRun(t *testing.T) {
	ev, err := NewEngine().Evaluate(context.Background(), "growth", numeric.Fields{
		validation.FieldPrincipal:  "10000",
		validation.FieldAnnualRate: "abc",
	})
	require.NoError(t, err)

	assert.False(t, ev.Validation.IsValid)
	assert.Contains(t, ev.Validation.Errors, validation.FieldAnnualRate)
	assert.Contains(t, ev.Validation.Errors, validation.FieldYears, "Missing required field")
	assert.IsType(t, domain.CompoundInterestResult{}, ev.Result)
}

func TestEvaluate_UnknownCalculator(t *testing.T) {
	_, err := NewEngine().Evaluate(context.Background(), "lottery", numeric.Fields{})
	var calcErr *CalculationError
	require.ErrorAs(t, err, &calcErr)
	assert.Equal(t, "evaluate", calcErr.Operation)
}

func TestEvaluate_EveryCalculator(t *testing.T) {
	engine := NewEngine()
	fields := numeric.Fields{
		validation.FieldTrials:    "50",
		validation.FieldYears:     "5",
		validation.FieldSeed:      "1",
		validation.FieldStrategy:  "long_call",
		validation.FieldSpotPrice: "100",
		validation.FieldStrike:    "100",
	}
	for _, name := range Calculators {
		t.Run(name, func(t *testing.T) {
			ev, err := engine.Evaluate(context.Background(), name, fields)
			require.NoError(t, err)
			assert.NotNil(t, ev.Result)
		})
	}
}

func TestEvaluate_MonteCarloCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().Evaluate(ctx, "montecarlo", numeric.Fields{validation.FieldTrials: "100"})
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestEvaluate_CreditTargetDefaultsToCurrent(t *testing.T) {
	fields := numeric.Fields{
		validation.FieldPaymentHistory:    "95",
		validation.FieldCreditUtilization: "30",
		validation.FieldCreditAge:         "8",
		validation.FieldCreditMix:         "60",
		validation.FieldNewInquiries:      "2",
	}
	fields[validation.TargetField(validation.FieldCreditUtilization)] = "10"

	ev, err := NewEngine().Evaluate(context.Background(), "credit", fields)
	require.NoError(t, err)

	c := ev.Result.(domain.CreditComparison)
	assert.Equal(t, 708, c.Current.Score)
	assert.Equal(t, 741, c.Target.Score, "Only utilization changes")
}

func TestSimulationParamsFromFields(t *testing.T) {
	engine := NewEngine()

	p := engine.SimulationParamsFromFields(numeric.Fields{})
	assert.Equal(t, 60.0, p.StockPercent)
	assert.Equal(t, 40.0, p.BondPercent)
	assert.InDelta(t, 0.10, p.StockMean, 1e-12)
	assert.InDelta(t, 0.04, p.WithdrawalRate, 1e-12)

	p = engine.SimulationParamsFromFields(numeric.Fields{validation.FieldStockAllocation: "80", validation.FieldStockReturn: "7"})
	assert.Equal(t, 80.0, p.StockPercent)
	assert.Equal(t, 20.0, p.BondPercent, "Bonds fill the rest of the allocation")
	assert.InDelta(t, 0.07, p.StockMean, 1e-12)
}

func TestOptionStrategyFromFields(t *testing.T) {
	s := OptionStrategyFromFields(numeric.Fields{
		validation.FieldStrategy:          "Bull_Call_Spread",
		validation.FieldStrike:            "100",
		validation.FieldPremium:           "6",
		validation.FieldSecondStrike:      "110",
		validation.FieldSecondPremium:     "2",
		validation.FieldImpliedVolatility: "25",
	})

	assert.Equal(t, domain.StrategyBullCallSpread, s.Kind)
	require.Len(t, s.Legs, 2)
	assert.Equal(t, 110.0, s.Legs[1].Strike)
	assert.InDelta(t, 0.25, s.Market.ImpliedVolatility, 1e-12)
	assert.Equal(t, 1, s.Market.Contracts)
}

func TestPortfolioInputFromFields_Rebalance(t *testing.T) {
	in := PortfolioInputFromFields(numeric.Fields{})
	assert.Nil(t, in.Rebalance.ThresholdPercent)
	assert.Nil(t, in.Rebalance.MinimumTrade)

	in = PortfolioInputFromFields(numeric.Fields{
		validation.FieldRebalanceThreshold: "0",
		validation.FieldMinimumTrade:       0,
	})
	require.NotNil(t, in.Rebalance.ThresholdPercent)
	assert.Zero(t, *in.Rebalance.ThresholdPercent)
	require.NotNil(t, in.Rebalance.MinimumTrade)
	assert.True(t, in.Rebalance.MinimumTrade.IsZero())

	settings := in.Rebalance.Apply(DefaultRebalanceSettings())
	assert.Zero(t, settings.ThresholdPercent)
	assert.True(t, settings.MinimumTrade.IsZero())

	for _, raw := range []string{"abc", "-3", "  "} {
		in = PortfolioInputFromFields(numeric.Fields{validation.FieldRebalanceThreshold: raw})
		assert.Nil(t, in.Rebalance.ThresholdPercent, raw)
	}
}

func TestEvaluate_PortfolioZeroThreshold(t *testing.T) {
	fields := numeric.Fields{
		validation.FieldHoldings:           "VTI:62000:stocks;BND:38000:bonds",
		validation.FieldTargets:            "stocks=60,bonds=40",
		validation.FieldRebalanceThreshold: "0",
	}
	ev, err := NewEngine().Evaluate(context.Background(), "portfolio", fields)
	require.NoError(t, err)
	analysis, ok := ev.Result.(domain.PortfolioAnalysis)
	require.True(t, ok)

	var actions []domain.RebalanceAction
	for _, trade := range analysis.Trades {
		actions = append(actions, trade.Action)
	}
	assert.ElementsMatch(t, []domain.RebalanceAction{domain.ActionSell, domain.ActionBuy}, actions)
}

func TestParseHoldings(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		h := ParseHoldings("VTI:$40,000:Stocks:technology:north_america; BND:25000:bonds\nbad;CASH:500")
		require.Len(t, h, 3)
		assert.Equal(t, "VTI", h[0].Symbol)
		assert.True(t, h[0].Value.Equal(dec("40000")))
		assert.Equal(t, domain.AssetStocks, h[0].AssetClass)
		assert.Equal(t, "north_america", h[0].Region)
		assert.Equal(t, domain.AssetBonds, h[1].AssetClass)
		assert.Empty(t, h[2].AssetClass)
	})

	t.Run("decoded json", func(t *testing.T) {
		h := ParseHoldings([]any{
			map[string]any{"symbol": "AAPL", "value": 1500.5, "assetClass": "stocks", "sector": "technology"},
			map[string]any{"symbol": "BND", "value": "2000", "asset_class": "Bonds"},
			"ignored",
		})
		require.Len(t, h, 2)
		assert.True(t, h[0].Value.Equal(dec("1500.5")))
		assert.Equal(t, domain.AssetBonds, h[1].AssetClass)
	})

	assert.Nil(t, ParseHoldings(nil))
	assert.Nil(t, ParseHoldings(42))
}

func TestParseAllocation(t *testing.T) {
	a := ParseAllocation("Stocks=60, bonds = 30,cash=10,junk")
	require.Len(t, a, 3)
	assert.Equal(t, "bonds", a[0].Bucket)
	assert.Equal(t, 60.0, a.Percent("stocks"))
	assert.InDelta(t, 100, a.Total(), 1e-9)

	a = ParseAllocation(map[string]any{"stocks": 70.0, "bonds": "30"})
	assert.Equal(t, domain.Allocation{{Bucket: "bonds", Percent: 30}, {Bucket: "stocks", Percent: 70}}, a)

	assert.Empty(t, ParseAllocation(nil))
}

func TestCryptoInputFromFields(t *testing.T) {
	in := CryptoInputFromFields(numeric.Fields{
		validation.FieldPortfolioValue: "100000",
		validation.FieldCryptoHoldings: "3000",
	})
	require.Len(t, in.CryptoHoldings, 1)
	assert.Equal(t, domain.RiskModerate, in.RiskTolerance)

	in = CryptoInputFromFields(numeric.Fields{
		validation.FieldPortfolioValue:  "100000",
		validation.FieldCryptoHoldings:  "3000",
		validation.FieldCryptoPositions: "BTC:2000;ETH:1000",
		validation.FieldRiskTolerance:   "Aggressive",
	})
	require.Len(t, in.CryptoHoldings, 2, "Positions take precedence over the total")
	assert.Equal(t, domain.AssetCrypto, in.CryptoHoldings[1].AssetClass)
	assert.Equal(t, domain.RiskAggressive, in.RiskTolerance)
}
