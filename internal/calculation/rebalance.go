package calculation

import (
	"math"
	"sort"

	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/shopspring/decimal"
)

// RebalanceAction decides a single bucket. The trade is only worth making
// when the deviation exceeds threshold percentage points and the dollar move
// is at least minimum; overweight buckets are sold.
func RebalanceAction(current, target, threshold float64, minimum, total decimal.Decimal) (domain.RebalanceAction, decimal.Decimal) {
	deviation := current - target
	amount := cents(decimal.NewFromFloat(math.Abs(deviation)).Div(hundred).Mul(nonNegative(total)))
	if math.Abs(deviation) <= threshold || amount.LessThan(minimum) {
		return domain.ActionHold, decimal.Zero
	}
	if deviation > 0 {
		return domain.ActionSell, amount
	}
	return domain.ActionBuy, amount
}

// PlanRebalance compares every bucket in either allocation and returns one
// trade per bucket, largest deviation first.
func PlanRebalance(current, targets domain.Allocation, total decimal.Decimal, settings domain.RebalanceSettings) []domain.RebalanceTrade {
	seen := make(map[string]bool)
	var buckets []string
	for _, a := range [...]domain.Allocation{targets, current} {
		for _, e := range a {
			if !seen[e.Bucket] {
				seen[e.Bucket] = true
				buckets = append(buckets, e.Bucket)
			}
		}
	}

	trades := make([]domain.RebalanceTrade, 0, len(buckets))
	for _, b := range buckets {
		cur, tgt := current.Percent(b), targets.Percent(b)
		action, amount := RebalanceAction(cur, tgt, settings.ThresholdPercent, settings.MinimumTrade, total)
		trades = append(trades, domain.RebalanceTrade{
			Bucket:         b,
			CurrentPercent: math.Round(cur*100) / 100,
			TargetPercent:  tgt,
			Deviation:      math.Round((cur-tgt)*100) / 100,
			Amount:         amount,
			Action:         action,
		})
	}
	sort.SliceStable(trades, func(i, j int) bool {
		return math.Abs(trades[i].Deviation) > math.Abs(trades[j].Deviation)
	})
	return trades
}
