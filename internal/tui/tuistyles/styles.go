// Package tuistyles holds the palette and styles shared by the TUI and its
// components.
package tuistyles

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorAccent  = lipgloss.Color("#F25D94")
	ColorSuccess = lipgloss.Color("#04B575")
	ColorDanger  = lipgloss.Color("#FF4672")
	ColorWarning = lipgloss.Color("#FFB347")

	ColorForeground = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FAFAFA"}
	ColorMuted      = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}

	// Percentile band lines, outer to inner
	ColorBandOuter  = lipgloss.Color("#5A9BD5")
	ColorBandMedian = lipgloss.Color("#F4D03F")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Width(26)

	FocusedLabelStyle = LabelStyle.Foreground(ColorPrimary).Bold(true)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)

	GoodStyle    = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	BadStyle     = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorDanger)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2)
)

// Tone picks a value style for a metric.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneGood
	ToneBad
)

// ValueStyle returns the style for a metric value of the given tone.
func ValueStyle(t Tone) lipgloss.Style {
	switch t {
	case ToneGood:
		return GoodStyle
	case ToneBad:
		return BadStyle
	default:
		return MetricValueStyle
	}
}

// CompactCurrency formats dollars as $950, $12K or $1.2M.
func CompactCurrency(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	switch {
	case value >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, value/1_000_000)
	case value >= 1_000:
		return fmt.Sprintf("%s$%.0fK", sign, math.Round(value/1_000))
	default:
		return fmt.Sprintf("%s$%.0f", sign, value)
	}
}
