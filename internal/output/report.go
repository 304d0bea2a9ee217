package output

import (
	"strings"

	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/shopspring/decimal"
)

// Row is a labelled value in a report summary.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section is a titled table.
type Section struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Report is the presentation form of a calculator result. Formatters render
// it; Result keeps the typed value for JSON output.
type Report struct {
	Title           string           `json:"title"`
	Summary         []Row            `json:"summary"`
	Sections        []Section        `json:"sections,omitempty"`
	Warnings        []domain.Warning `json:"warnings,omitempty"`
	Recommendations []string         `json:"recommendations,omitempty"`
	Notes           []string         `json:"notes,omitempty"`
	Result          any              `json:"result,omitempty"`
}

// AddRow appends a summary line.
func (r *Report) AddRow(label, value string) {
	r.Summary = append(r.Summary, Row{Label: label, Value: value})
}

// AddSection appends a table. Empty tables are skipped.
func (r *Report) AddSection(title string, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	r.Sections = append(r.Sections, Section{Title: title, Headers: headers, Rows: rows})
}

// FormatCurrency formats a decimal as currency with thousands separators
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	sign := ""
	if amount.IsNegative() && !amount.Round(2).IsZero() {
		sign = "-"
	}
	return sign + "$" + groupThousands(whole) + "." + frac
}

// FormatFloatCurrency formats a float as currency
func FormatFloatCurrency(amount float64) string {
	return FormatCurrency(decimal.NewFromFloat(amount))
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatFloatPercentage formats a float already in percent
func FormatFloatPercentage(amount float64) string {
	return FormatPercentage(decimal.NewFromFloat(amount))
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
