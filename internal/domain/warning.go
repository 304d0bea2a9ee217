package domain

// Warning is a non-fatal note attached to a result: the calculation still
// completed, but the caller should know something looked off.
type Warning struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Warning codes
const (
	WarnDeductionsExceedGross = "W1001"
	WarnUnknownState          = "W1002"
	WarnInvalidInput          = "W1003"

	WarnAllocationTotal     = "W2001"
	WarnConcentratedHolding = "W2002"
	WarnEmptyPortfolio      = "W2003"

	WarnSimulationDepleted = "W3001"

	WarnDegenerateOption = "W4001"
	WarnUnlimitedRisk    = "W4002"
)

// Warnings is a helper for accumulating warnings.
type Warnings []Warning

// Add appends a warning.
func (w *Warnings) Add(code, message string) {
	*w = append(*w, Warning{Code: code, Message: message})
}

// Has reports whether a warning with the code is present.
func (w Warnings) Has(code string) bool {
	for _, x := range w {
		if x.Code == code {
			return true
		}
	}
	return false
}
