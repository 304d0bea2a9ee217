package calculation

import "errors"

// CalculationError reports a calculator that refused its input.
type CalculationError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *CalculationError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *CalculationError) Unwrap() error {
	return e.Cause
}

var (
	// ErrNotComplete is returned when a simulation result is read early.
	ErrNotComplete = errors.New("simulation has not completed")
	// ErrCancelled is returned after a simulation was abandoned.
	ErrCancelled = errors.New("simulation was cancelled")
)
