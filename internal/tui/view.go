package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finlit/internal/tui/components"
	"github.com/rgehrsitz/finlit/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.phase {
	case PhaseForm:
		content = m.renderForm()
	case PhaseRunning:
		content = m.renderRunning()
	case PhaseDone:
		content = m.renderResults()
	case PhaseCancelled:
		content = m.renderCancelled()
	}

	title := tuistyles.TitleStyle.Render("finlit · Monte Carlo")
	crumb := tuistyles.SubtitleStyle.Render(m.phase.String())
	return lipgloss.JoinVertical(lipgloss.Left,
		title+" "+crumb,
		"",
		content,
		"",
		m.help.View(m.keys),
	)
}

func (m Model) renderForm() string {
	var b strings.Builder
	for i, f := range formFields {
		label := tuistyles.LabelStyle
		if i == m.focus {
			label = tuistyles.FocusedLabelStyle
		}
		b.WriteString(label.Render(f.label))
		b.WriteString(m.inputs[i].View())
		if msg, ok := m.formErrors[f.name]; ok {
			b.WriteString("  " + tuistyles.ErrorStyle.Render(msg))
		}
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n" + tuistyles.ErrorStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	return b.String()
}

func (m Model) renderRunning() string {
	status := fmt.Sprintf("%s Simulating %d of %d trials", m.spinner.View(), m.done, m.total)
	if m.cancelling {
		status = tuistyles.WarningStyle.Render("Cancelling after the current batch...")
	}
	return status + "\n\n" + m.progress.View()
}

func (m Model) renderCancelled() string {
	return tuistyles.WarningStyle.Render(fmt.Sprintf("Simulation cancelled after %d of %d trials.", m.done, m.total)) +
		"\n" + tuistyles.InfoStyle.Render("Partial results are discarded.")
}

func (m Model) renderResults() string {
	if m.err != nil {
		return tuistyles.ErrorStyle.Render("Error: " + m.err.Error())
	}
	r := m.result
	if r == nil {
		return tuistyles.InfoStyle.Render("No results")
	}

	tone := tuistyles.ToneBad
	switch {
	case r.SuccessRate >= 80:
		tone = tuistyles.ToneGood
	case r.SuccessRate >= 60:
		tone = tuistyles.ToneNeutral
	}
	cards := []*components.MetricCard{
		components.NewMetricCard("Success rate", fmt.Sprintf("%.1f%%", r.SuccessRate)).WithTone(tone),
		components.NewMetricCard("Median final", tuistyles.CompactCurrency(r.MedianFinalValue)),
		components.NewMetricCard("10th pct", tuistyles.CompactCurrency(r.Final.P10)),
		components.NewMetricCard("90th pct", tuistyles.CompactCurrency(r.Final.P90)),
	}
	columns := max(1, m.width/22)

	chartWidth := max(30, min(90, m.width-2))
	chartHeight := max(6, min(14, m.height-22))
	chart := components.NewBandChart(r.Bands).WithSize(chartWidth, chartHeight).Render()

	var notes []string
	for _, w := range r.Warnings {
		notes = append(notes, tuistyles.WarningStyle.Render(fmt.Sprintf("[%s] %s", w.Code, w.Message)))
	}
	for _, insight := range r.Insights {
		notes = append(notes, "• "+insight)
	}

	summary := tuistyles.SubtitleStyle.Render(fmt.Sprintf("%d trials over %d years, contributed %s",
		r.Trials, r.TimeHorizon, tuistyles.CompactCurrency(r.TotalContributed)))

	return lipgloss.JoinVertical(lipgloss.Left,
		components.MetricRow(cards, columns),
		summary,
		"",
		chart,
		"",
		strings.Join(notes, "\n"),
	)
}
