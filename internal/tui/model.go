// Package tui is an interactive Monte Carlo runner built on Bubble Tea.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finlit/internal/calculation"
	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/rgehrsitz/finlit/internal/numeric"
	"github.com/rgehrsitz/finlit/internal/tui/tuistyles"
	"github.com/rgehrsitz/finlit/internal/validation"
)

// formField is one editable simulation parameter.
type formField struct {
	name  string
	label string
	def   string
}

var formFields = []formField{
	{validation.FieldInitialValue, "Initial portfolio ($)", "100000"},
	{validation.FieldMonthlyContribution, "Monthly contribution ($)", "500"},
	{validation.FieldStockAllocation, "Stock allocation (%)", "60"},
	{validation.FieldYears, "Years", "30"},
	{validation.FieldTrials, "Simulations", "1000"},
	{validation.FieldWithdrawalRate, "Withdrawal rate (%)", "4"},
	{validation.FieldGoalAnnualIncome, "Annual income goal ($)", "40000"},
	{validation.FieldSeed, "Seed (0 = random)", "0"},
}

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
	Rerun  key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Rerun, k.Cancel, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev, k.Submit}, {k.Rerun, k.Cancel, k.Quit}}
}

func defaultKeys() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Cancel: key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q/esc", "cancel")),
		Rerun:  key.NewBinding(key.WithKeys("r", "enter"), key.WithHelp("r", "new run")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// Model is the runner's state.
type Model struct {
	engine *calculation.Engine
	phase  Phase

	inputs     []textinput.Model
	focus      int
	formErrors map[string]string

	sim        *calculation.Simulator
	run        int
	done       int
	total      int
	cancelling bool
	result     *domain.SimulationResult
	err        error

	spinner  spinner.Model
	progress progress.Model
	keys     keyMap
	help     help.Model

	width  int
	height int
}

// NewModel creates the runner. Values in defaults pre-fill the form; the
// engine supplies market assumptions for anything the form does not ask.
func NewModel(engine *calculation.Engine, defaults numeric.Fields) Model {
	if engine == nil {
		engine = calculation.NewEngine()
	}

	inputs := make([]textinput.Model, len(formFields))
	for i, f := range formFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 16
		ti.Width = 16
		ti.Placeholder = f.def
		ti.SetValue(defaults.String(f.name, f.def))
		inputs[i] = ti
	}
	inputs[0].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tuistyles.GoodStyle

	return Model{
		engine:     engine,
		phase:      PhaseForm,
		inputs:     inputs,
		formErrors: map[string]string{},
		spinner:    sp,
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(50)),
		keys:       defaultKeys(),
		help:       help.New(),
		width:      80,
		height:     24,
	}
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Phase reports the current screen.
func (m Model) Phase() Phase { return m.phase }

// Result is the last completed simulation, or nil.
func (m Model) Result() *domain.SimulationResult { return m.result }

// Err is the last error, or nil.
func (m Model) Err() error { return m.err }

// fields collects the form into a field bag.
func (m Model) fields() numeric.Fields {
	f := numeric.Fields{}
	for i, ff := range formFields {
		f[ff.name] = m.inputs[i].Value()
	}
	return f
}
