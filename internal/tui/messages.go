package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finlit/internal/calculation"
)

// Phase is the screen the runner is on.
type Phase int

const (
	PhaseForm Phase = iota
	PhaseRunning
	PhaseDone
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseForm:
		return "Parameters"
	case PhaseRunning:
		return "Running"
	case PhaseDone:
		return "Results"
	case PhaseCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// BatchDoneMsg reports that one batch of trials finished. Run identifies the
// simulation so messages from an abandoned run are ignored.
type BatchDoneMsg struct {
	Run      int
	Done     int
	Total    int
	Complete bool
	Err      error
}

// stepCmd runs the next batch off the update loop. The simulator is only
// touched by one command at a time: the next step is not scheduled until
// this one's message has been handled.
func stepCmd(sim *calculation.Simulator, run int) tea.Cmd {
	return func() tea.Msg {
		complete, err := sim.Step()
		return BatchDoneMsg{
			Run:      run,
			Done:     sim.Completed(),
			Total:    sim.Params().Trials,
			Complete: complete,
			Err:      err,
		}
	}
}
