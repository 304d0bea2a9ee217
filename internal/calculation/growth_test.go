package calculation

import (
	"testing"

	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureValueAnnuity(t *testing.T) {
	tests := []struct {
		name         string
		principal    string
		rate         string
		periods      int
		contribution string
		expected     string
	}{
		{"zero rate is principal plus contributions", "1000", "0", 12, "100", "2200"},
		{"lump sum", "1000", "0.01", 12, "0", "1126.83"},
		{"contributions only", "0", "0.01", 12, "100", "1268.25"},
		{"negative periods count as zero", "1000", "0.05", -5, "100", "1000"},
		{"rate of -100% wipes out", "1000", "-1", 10, "100", "0"},
		{"negative amounts count as zero", "-1000", "0", 10, "-5", "0"},
		{"periods capped", "1", "0", 5000, "1", "1201"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fv := FutureValueAnnuity(dec(tt.principal), dec(tt.rate), tt.periods, dec(tt.contribution)).Round(2)
			assert.True(t, fv.Equal(dec(tt.expected)), "Expected %s, got %s", tt.expected, fv)
		})
	}
}

func TestFutureValueAnnuity_ZeroRateIdentity(t *testing.T) {
	for _, n := range []int{0, 1, 7, 120, 1200} {
		fv := FutureValueAnnuity(dec("2500"), decimal.Zero, n, dec("75"))
		want := dec("2500").Add(dec("75").Mul(decimal.NewFromInt(int64(n))))
		assert.True(t, fv.Equal(want), "n=%d: expected %s, got %s", n, want, fv)
	}
}

func TestFutureValueAnnuity_LongHorizonStaysFinite(t *testing.T) {
	fv := FutureValueAnnuity(dec("10000"), dec("0.01"), MaxGrowthMonths, dec("500"))
	assert.True(t, fv.GreaterThan(dec("10000")))
	// 1.01^1200 is about 1.5e5, so the balance is about 9.2e9
	assert.True(t, fv.GreaterThan(dec("9e9")), "got %s", fv)
	assert.True(t, fv.LessThan(dec("1e10")), "got %s", fv)
}

func TestAmortizedPayment(t *testing.T) {
	payment := AmortizedPayment(dec("200000"), dec("0.005"), 360).Round(2)
	assert.True(t, payment.Equal(dec("1199.10")), "Expected 1199.10, got %s", payment)

	assert.True(t, AmortizedPayment(dec("12000"), decimal.Zero, 12).Equal(dec("1000")))
	assert.True(t, AmortizedPayment(dec("12000"), dec("0.01"), 0).IsZero())
	assert.True(t, AmortizedPayment(dec("12000"), dec("0.01"), -3).IsZero())
	assert.True(t, AmortizedPayment(decimal.Zero, dec("0.01"), 12).IsZero())
}

func TestYearsToDouble(t *testing.T) {
	assert.True(t, YearsToDouble(dec("8")).Equal(dec("9")))
	assert.True(t, YearsToDouble(dec("7")).Equal(dec("10.29")))
	assert.True(t, YearsToDouble(decimal.Zero).IsZero())
	assert.True(t, YearsToDouble(dec("-3")).IsZero())
}

func TestPresentValue(t *testing.T) {
	pv := PresentValue(dec("121"), dec("0.10"), 2).Round(6)
	assert.True(t, pv.Equal(dec("100")), "got %s", pv)
	assert.True(t, PresentValue(dec("100"), dec("-1"), 3).IsZero())
}

func TestCompoundInterest(t *testing.T) {
	engine := NewEngine()

	t.Run("annual compounding", func(t *testing.T) {
		result := engine.CompoundInterest(domain.CompoundInterestInput{
			Principal:        dec("10000"),
			AnnualRate:       dec("0.05"),
			Years:            10,
			CompoundsPerYear: 1,
		})
		require.Len(t, result.Schedule, 10)
		assert.True(t, result.Schedule[0].Balance.Equal(dec("10500")), "got %s", result.Schedule[0].Balance)
		assert.True(t, result.FinalBalance.Equal(dec("16288.95")), "got %s", result.FinalBalance)
		assert.True(t, result.TotalInterest.Equal(dec("6288.95")), "got %s", result.TotalInterest)
		assert.True(t, result.YearsToDouble.Equal(dec("14.4")), "got %s", result.YearsToDouble)
	})

	t.Run("contributions without interest", func(t *testing.T) {
		result := engine.CompoundInterest(domain.CompoundInterestInput{
			Principal:           dec("1000"),
			Years:               2,
			MonthlyContribution: dec("100"),
		})
		assert.True(t, result.FinalBalance.Equal(dec("3400")), "got %s", result.FinalBalance)
		assert.True(t, result.TotalContributions.Equal(dec("3400")))
		assert.True(t, result.TotalInterest.IsZero())
	})

	t.Run("balances never decrease with a positive rate", func(t *testing.T) {
		result := engine.CompoundInterest(domain.CompoundInterestInput{
			Principal:           dec("500"),
			AnnualRate:          dec("0.07"),
			Years:               40,
			CompoundsPerYear:    365,
			MonthlyContribution: dec("50"),
		})
		prev := decimal.Zero
		for _, row := range result.Schedule {
			assert.True(t, row.Balance.GreaterThan(prev), "year %d", row.Year)
			assert.True(t, row.Interest.GreaterThanOrEqual(decimal.Zero), "year %d", row.Year)
			prev = row.Balance
		}
	})

	t.Run("no years", func(t *testing.T) {
		result := engine.CompoundInterest(domain.CompoundInterestInput{Principal: dec("1000"), AnnualRate: dec("0.05")})
		assert.Empty(t, result.Schedule)
		assert.True(t, result.FinalBalance.Equal(dec("1000")))
	})
}

func TestCalculateMortgage(t *testing.T) {
	engine := NewEngine()

	t.Run("twenty percent down", func(t *testing.T) {
		result := engine.CalculateMortgage(domain.MortgageInput{
			HomePrice:          dec("250000"),
			DownPaymentPercent: dec("20"),
			InterestRate:       dec("0.06"),
			TermYears:          30,
			PropertyTaxRate:    dec("0.012"),
			HomeInsurance:      dec("1200"),
		})
		assert.True(t, result.LoanAmount.Equal(dec("200000")))
		assert.True(t, result.PrincipalAndInterest.Equal(dec("1199.10")), "got %s", result.PrincipalAndInterest)
		assert.True(t, result.MonthlyPMI.IsZero())
		assert.True(t, result.MonthlyPropertyTax.Equal(dec("250")))
		assert.True(t, result.MonthlyInsurance.Equal(dec("100")))
		assert.True(t, result.TotalMonthlyPayment.Equal(dec("1549.10")), "got %s", result.TotalMonthlyPayment)
		assert.InDelta(t, 360, result.Schedule.PayoffMonth, 1)
		assert.InDelta(t, 231676, result.TotalInterest.InexactFloat64(), 10)

		rows := result.Schedule.Rows
		require.NotEmpty(t, rows)
		assert.True(t, rows[len(rows)-1].Balance.IsZero(), "Loan should be fully repaid")
		for i := 1; i < len(rows); i++ {
			assert.True(t, rows[i].Balance.LessThan(rows[i-1].Balance), "balance rose in month %d", rows[i].Month)
		}
	})

	t.Run("PMI below twenty percent down", func(t *testing.T) {
		result := engine.CalculateMortgage(domain.MortgageInput{
			HomePrice:          dec("250000"),
			DownPaymentPercent: dec("10"),
			InterestRate:       dec("0.06"),
			TermYears:          30,
		})
		assert.True(t, result.MonthlyPMI.Equal(dec("93.75")), "got %s", result.MonthlyPMI)
		assert.NotEmpty(t, result.Recommendations)
	})

	t.Run("extra payments save interest", func(t *testing.T) {
		in := domain.MortgageInput{
			HomePrice:          dec("250000"),
			DownPaymentPercent: dec("20"),
			InterestRate:       dec("0.06"),
			TermYears:          30,
			ExtraPayment:       dec("200"),
		}
		result := engine.CalculateMortgage(in)
		assert.Greater(t, result.MonthsSaved, 0)
		assert.True(t, result.InterestSaved.GreaterThan(decimal.Zero))
		assert.Less(t, result.Schedule.PayoffMonth, 360)
	})

	t.Run("zero rate", func(t *testing.T) {
		result := engine.CalculateMortgage(domain.MortgageInput{
			HomePrice:          dec("120000"),
			DownPaymentPercent: dec("20"),
			TermYears:          10,
		})
		assert.True(t, result.PrincipalAndInterest.Equal(dec("800")), "got %s", result.PrincipalAndInterest)
		assert.True(t, result.TotalInterest.IsZero())
		assert.Equal(t, 120, result.Schedule.PayoffMonth)
	})

	t.Run("paid in cash", func(t *testing.T) {
		result := engine.CalculateMortgage(domain.MortgageInput{HomePrice: dec("300000"), DownPaymentPercent: dec("100")})
		assert.True(t, result.LoanAmount.IsZero())
		assert.True(t, result.PrincipalAndInterest.IsZero())
		assert.Empty(t, result.Schedule.Rows)
	})
}

func TestBuildAmortizationSchedule_PaymentBelowInterest(t *testing.T) {
	sched := BuildAmortizationSchedule(dec("100000"), dec("0.01"), dec("500"), decimal.Zero)
	assert.Empty(t, sched.Rows, "A payment that never covers interest produces no schedule")
}

func TestProjectRetirement(t *testing.T) {
	engine := NewEngine()

	base := domain.RetirementInput{
		CurrentAge:           55,
		RetirementAge:        65,
		CurrentSavings:       dec("100000"),
		MonthlyContribution:  dec("1000"),
		DesiredMonthlyIncome: dec("1000"),
	}

	t.Run("shortfall", func(t *testing.T) {
		result := engine.ProjectRetirement(base)
		assert.Equal(t, 10, result.YearsToRetirement)
		assert.True(t, result.ProjectedSavings.Equal(dec("220000")), "got %s", result.ProjectedSavings)
		assert.True(t, result.InflationAdjusted.Equal(dec("220000")))
		assert.True(t, result.SustainableMonthly.Equal(dec("733.33")), "got %s", result.SustainableMonthly)
		assert.True(t, result.RequiredSavings.Equal(dec("300000")))
		assert.True(t, result.Shortfall.Equal(dec("80000")))
		assert.True(t, result.RequiredMonthlySavings.Equal(dec("1666.67")), "got %s", result.RequiredMonthlySavings)
		assert.False(t, result.OnTrack)
	})

	t.Run("on track", func(t *testing.T) {
		in := base
		in.DesiredMonthlyIncome = dec("500")
		result := engine.ProjectRetirement(in)
		assert.True(t, result.OnTrack)
		assert.True(t, result.Shortfall.IsZero())
		assert.True(t, result.RequiredMonthlySavings.IsZero())
	})

	t.Run("inflation lowers the real value", func(t *testing.T) {
		in := base
		in.ExpectedReturn = dec("0.06")
		in.InflationRate = dec("0.03")
		result := engine.ProjectRetirement(in)
		assert.True(t, result.ProjectedSavings.GreaterThan(dec("220000")))
		assert.True(t, result.InflationAdjusted.LessThan(result.ProjectedSavings))
	})

	t.Run("already retired", func(t *testing.T) {
		in := base
		in.CurrentAge = 70
		result := engine.ProjectRetirement(in)
		assert.Equal(t, 0, result.YearsToRetirement)
		assert.True(t, result.ProjectedSavings.Equal(dec("100000")))
	})
}

func TestRequiredContribution(t *testing.T) {
	assert.True(t, RequiredContribution(dec("1000"), decimal.Zero, decimal.Zero, 10).Equal(dec("100")))
	assert.True(t, RequiredContribution(dec("1000"), dec("2000"), dec("0.01"), 10).IsZero())
	assert.True(t, RequiredContribution(dec("1000"), decimal.Zero, decimal.Zero, 0).Equal(dec("1000")))

	// contributing the solved amount reaches the target
	c := RequiredContribution(dec("50000"), dec("1000"), dec("0.005"), 120)
	fv := FutureValueAnnuity(dec("1000"), dec("0.005"), 120, c).Round(2)
	assert.True(t, fv.Equal(dec("50000")), "got %s", fv)
}
