package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finlit/internal/tui/tuistyles"
)

// MetricCard is a bordered label and value.
type MetricCard struct {
	Label string
	Value string
	Tone  tuistyles.Tone
	Width int
}

// NewMetricCard creates a neutral card.
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: 18}
}

// WithTone colours the value.
func (m *MetricCard) WithTone(t tuistyles.Tone) *MetricCard {
	m.Tone = t
	return m
}

// Render returns the styled card.
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.ValueStyle(m.Tone).Render(m.Value)
	return tuistyles.CardStyle.Width(m.Width).Render(content)
}

// MetricRow lays cards out side by side, wrapping after columns cards.
func MetricRow(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = len(cards)
	}
	var rows []string
	var row []string
	for i, card := range cards {
		row = append(row, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
