package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finlit/internal/validation"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(10, min(60, msg.Width-10))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m.handleKeyPress(msg)

	case BatchDoneMsg:
		return m.handleBatch(msg)

	case spinner.TickMsg:
		if m.phase != PhaseRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		if p, ok := pm.(progress.Model); ok {
			m.progress = p
		}
		return m, cmd
	}

	if m.phase == PhaseForm {
		return m.updateFocusedInput(msg)
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case PhaseForm:
		switch {
		case msg.Type == tea.KeyEsc:
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.start()
		case key.Matches(msg, m.keys.Next):
			return m.moveFocus(1), nil
		case key.Matches(msg, m.keys.Prev):
			return m.moveFocus(-1), nil
		}
		return m.updateFocusedInput(msg)

	case PhaseRunning:
		if key.Matches(msg, m.keys.Cancel) {
			// takes effect when the in-flight batch reports back
			m.cancelling = true
		}
		return m, nil

	default:
		switch {
		case key.Matches(msg, m.keys.Rerun):
			m.phase = PhaseForm
			m.cancelling = false
			return m, m.inputs[m.focus].Focus()
		case key.Matches(msg, m.keys.Cancel):
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) moveFocus(delta int) Model {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// start validates the form and launches the first batch.
func (m Model) start() (tea.Model, tea.Cmd) {
	fields := m.fields()
	res := validation.ValidateFields(fields.Strings(), validation.MonteCarloSchema)
	m.formErrors = res.Errors
	m.err = nil
	if !res.IsValid {
		return m, nil
	}

	m.sim = m.engine.NewSimulation(m.engine.SimulationParamsFromFields(fields))
	m.run++
	m.done = 0
	m.total = m.sim.Params().Trials
	m.cancelling = false
	m.result = nil
	m.phase = PhaseRunning
	m.inputs[m.focus].Blur()
	return m, tea.Batch(m.spinner.Tick, m.progress.SetPercent(0), stepCmd(m.sim, m.run))
}

func (m Model) handleBatch(msg BatchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Run != m.run || m.phase != PhaseRunning {
		return m, nil
	}
	if msg.Err != nil {
		m.err = msg.Err
		m.phase = PhaseForm
		return m, m.inputs[m.focus].Focus()
	}

	m.done, m.total = msg.Done, msg.Total
	if msg.Complete {
		res, err := m.sim.Result()
		m.result, m.err = res, err
		m.phase = PhaseDone
		return m, m.progress.SetPercent(1)
	}
	if m.cancelling {
		m.sim.Cancel()
		m.phase = PhaseCancelled
		return m, nil
	}
	return m, tea.Batch(m.progress.SetPercent(float64(m.done)/float64(max(1, m.total))), stepCmd(m.sim, m.run))
}
