package calculation

import (
	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/shopspring/decimal"
)

// DiscountedCashFlow discounts each year's free cash flow and adds a Gordon
// growth terminal value on the last flow. The terminal value is omitted when
// the discount rate does not exceed the growth rate.
func DiscountedCashFlow(flows []decimal.Decimal, rate, growth decimal.Decimal) (pv, terminal, pvTerminal decimal.Decimal) {
	if len(flows) == 0 || rate.LessThanOrEqual(one.Neg()) {
		return decimal.Zero, decimal.Zero, decimal.Zero
	}
	for i, cf := range flows {
		pv = pv.Add(PresentValue(cf, rate, i+1))
	}
	if rate.GreaterThan(growth) {
		last := flows[len(flows)-1]
		terminal = last.Mul(one.Add(growth)).Div(rate.Sub(growth))
		pvTerminal = PresentValue(terminal, rate, len(flows))
	}
	return pv, terminal, pvTerminal
}

// ValueBusiness combines DCF and trading-multiple valuations. The blended
// enterprise value averages whichever methods have positive inputs.
func (e *Engine) ValueBusiness(in domain.ValuationInput) domain.ValuationResult {
	var result domain.ValuationResult

	pv, tv, pvTV := DiscountedCashFlow(in.CashFlows, in.DiscountRate, in.TerminalGrowth)
	result.PresentValueOfCashFlows = cents(pv)
	result.TerminalValue = cents(tv)
	result.PresentTerminalValue = cents(pvTV)
	result.DCFEnterpriseValue = cents(pv.Add(pvTV))

	switch {
	case len(in.CashFlows) == 0:
		result.Warnings.Add(domain.WarnInvalidInput, "no cash flows; DCF value is zero")
	case !in.DiscountRate.GreaterThan(in.TerminalGrowth):
		result.Warnings.Add(domain.WarnInvalidInput, "discount rate must exceed terminal growth; terminal value omitted")
	}

	if in.Revenue.GreaterThan(decimal.Zero) && in.RevenueMultiple.GreaterThan(decimal.Zero) {
		result.RevenueMultipleValue = cents(in.Revenue.Mul(in.RevenueMultiple))
	}
	if in.EBITDA.GreaterThan(decimal.Zero) && in.EBITDAMultiple.GreaterThan(decimal.Zero) {
		result.EBITDAMultipleValue = cents(in.EBITDA.Mul(in.EBITDAMultiple))
	}
	if in.EBITDA.GreaterThan(decimal.Zero) && tv.GreaterThan(decimal.Zero) {
		result.ImpliedEBITDAMultiple = tv.Div(in.EBITDA).Round(2)
	}

	var methods []decimal.Decimal
	for _, v := range []decimal.Decimal{result.DCFEnterpriseValue, result.RevenueMultipleValue, result.EBITDAMultipleValue} {
		if v.GreaterThan(decimal.Zero) {
			methods = append(methods, v)
		}
	}
	if len(methods) > 0 {
		result.BlendedEnterpriseValue = cents(decimal.Avg(methods[0], methods[1:]...))
	}
	result.EquityValue = result.BlendedEnterpriseValue.Sub(in.NetDebt)
	if in.Shares.GreaterThan(decimal.Zero) {
		result.PerShareValue = cents(result.EquityValue.Div(in.Shares))
	}

	e.logger().Debugf("valuation: dcf=%s blended=%s equity=%s", result.DCFEnterpriseValue.StringFixed(2),
		result.BlendedEnterpriseValue.StringFixed(2), result.EquityValue.StringFixed(2))
	return result
}
