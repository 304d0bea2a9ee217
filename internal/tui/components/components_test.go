package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/rgehrsitz/finlit/internal/tui/tuistyles"
)

func TestBandChart(t *testing.T) {
	bands := []domain.PercentileBand{
		{Year: 0, P10: 100000, P25: 100000, P50: 100000, P75: 100000, P90: 100000},
		{Year: 1, P10: 90000, P25: 98000, P50: 106000, P75: 114000, P90: 125000},
		{Year: 2, P10: 85000, P25: 99000, P50: 112000, P75: 128000, P90: 150000},
	}
	out := NewBandChart(bands).WithSize(40, 8).Render()

	assert.Contains(t, out, "year 0")
	assert.Contains(t, out, "year 2")
	assert.Contains(t, out, "$150K", "Top of the axis is the highest 90th percentile")
	assert.Contains(t, out, "median")
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 8+2)
}

func TestBandChart_TooFewPoints(t *testing.T) {
	out := NewBandChart([]domain.PercentileBand{{Year: 0}}).Render()
	assert.Contains(t, out, "Not enough data")
}

func TestMetricRow(t *testing.T) {
	cards := []*MetricCard{
		NewMetricCard("Success rate", "92.0%").WithTone(tuistyles.ToneGood),
		NewMetricCard("Median", "$1.2M"),
		NewMetricCard("P10", "$400K"),
	}
	out := MetricRow(cards, 2)
	assert.Contains(t, out, "Success rate")
	assert.Contains(t, out, "$400K")
	assert.Empty(t, MetricRow(nil, 2))
}

func TestCompactCurrency(t *testing.T) {
	assert.Equal(t, "$950", tuistyles.CompactCurrency(950))
	assert.Equal(t, "$12K", tuistyles.CompactCurrency(12_400))
	assert.Equal(t, "$1.2M", tuistyles.CompactCurrency(1_234_567))
	assert.Equal(t, "-$3K", tuistyles.CompactCurrency(-3_000))
}
