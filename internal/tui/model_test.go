package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/finlit/internal/calculation"
	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/rgehrsitz/finlit/internal/numeric"
	"github.com/rgehrsitz/finlit/internal/validation"
)

func newTestModel(trials string) Model {
	return NewModel(calculation.NewEngine(), numeric.Fields{
		validation.FieldTrials: trials,
		validation.FieldYears:  "5",
		validation.FieldSeed:   "7",
	})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

// nextBatch runs the pending batch the way the program would.
func nextBatch(m Model) tea.Msg {
	return stepCmd(m.sim, m.run)()
}

func TestRunToCompletion(t *testing.T) {
	m := send(t, newTestModel("100"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, PhaseRunning, m.Phase())
	assert.Equal(t, 100, m.total)

	m = send(t, m, nextBatch(m))
	assert.Equal(t, PhaseRunning, m.Phase())
	assert.Equal(t, 50, m.done)

	m = send(t, m, nextBatch(m))
	require.Equal(t, PhaseDone, m.Phase())
	require.NotNil(t, m.Result())
	assert.Equal(t, 100, m.Result().Trials)
	assert.Len(t, m.Result().Bands, 6)
	assert.Contains(t, m.View(), "Success rate")
}

func TestCancelBetweenBatches(t *testing.T) {
	m := send(t, newTestModel("200"), tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, nextBatch(m))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, m.cancelling)
	assert.Equal(t, PhaseRunning, m.Phase(), "The in-flight batch finishes first")
	assert.Contains(t, m.View(), "Cancelling")

	m = send(t, m, nextBatch(m))
	require.Equal(t, PhaseCancelled, m.Phase())
	assert.Equal(t, 100, m.done)
	assert.Equal(t, domain.SimulationCancelled, m.sim.State())
	assert.Nil(t, m.Result())
	assert.Contains(t, m.View(), "cancelled after 100 of 200")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, PhaseForm, m.Phase())
}

func TestStaleBatchIgnored(t *testing.T) {
	m := send(t, newTestModel("100"), tea.KeyMsg{Type: tea.KeyEnter})
	stale := BatchDoneMsg{Run: m.run - 1, Done: 100, Total: 100, Complete: true}
	m = send(t, m, stale)
	assert.Equal(t, PhaseRunning, m.Phase())
	assert.Zero(t, m.done)
}

func TestFormValidation(t *testing.T) {
	m := newTestModel("abc")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, PhaseForm, m.Phase())
	assert.Contains(t, m.formErrors, validation.FieldTrials)
	assert.Nil(t, m.sim)
	assert.Contains(t, m.View(), "Simulations must be a valid whole number")
}

func TestFormFocusWraps(t *testing.T) {
	m := newTestModel("100")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, len(formFields)-1, m.focus)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.focus)
}

func TestBatchErrorReturnsToForm(t *testing.T) {
	m := send(t, newTestModel("100"), tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, BatchDoneMsg{Run: m.run, Err: assert.AnError})
	assert.Equal(t, PhaseForm, m.Phase())
	assert.ErrorIs(t, m.Err(), assert.AnError)
}

func TestQuitKeys(t *testing.T) {
	_, cmd := newTestModel("100").Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = newTestModel("100").Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestDefaultsPrefillForm(t *testing.T) {
	m := NewModel(nil, nil)
	assert.Equal(t, "100000", m.inputs[0].Value())
	f := m.fields()
	assert.Equal(t, "1000", f[validation.FieldTrials])
}
