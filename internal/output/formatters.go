package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Formatter renders a report.
type Formatter interface {
	Name() string
	Format(r *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(r *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string                     { return f.ID }
func (f FormatterFunc) Format(r *Report) ([]byte, error) { return f.F(r) }

const ruleWidth = 72

// TableFormatter formats a report as a console table
type TableFormatter struct{}

func (tf TableFormatter) Name() string { return "table" }

// Format renders the summary as aligned label/value pairs followed by each
// section as a padded table.
func (tf TableFormatter) Format(r *Report) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString(strings.ToUpper(r.Title) + "\n")
	sb.WriteString(strings.Repeat("=", ruleWidth) + "\n")

	labelWidth := 0
	for _, row := range r.Summary {
		labelWidth = max(labelWidth, utf8.RuneCountInString(row.Label))
	}
	for _, row := range r.Summary {
		sb.WriteString(fmt.Sprintf("%-*s  %s\n", labelWidth+1, row.Label+":", row.Value))
	}

	for _, s := range r.Sections {
		sb.WriteString("\n" + strings.ToUpper(s.Title) + "\n")
		sb.WriteString(strings.Repeat("-", ruleWidth) + "\n")
		tf.writeTable(&sb, s)
	}

	if len(r.Warnings) > 0 {
		sb.WriteString("\nWARNINGS\n")
		sb.WriteString(strings.Repeat("-", ruleWidth) + "\n")
		for _, w := range r.Warnings {
			sb.WriteString(fmt.Sprintf("[%s] %s\n", w.Code, w.Message))
		}
	}

	if len(r.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", ruleWidth) + "\n")
		for _, rec := range r.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	for _, note := range r.Notes {
		sb.WriteString("\nNote: " + note + "\n")
	}
	return []byte(sb.String()), nil
}

// writeTable left-aligns the first column and right-aligns the rest.
func (tf TableFormatter) writeTable(sb *strings.Builder, s Section) {
	widths := make([]int, len(s.Headers))
	for i, h := range s.Headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range s.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	line := func(cells []string) {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i == 0 {
				parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
			} else {
				parts[i] = fmt.Sprintf("%*s", widths[i], cell)
			}
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, "  "), " ") + "\n")
	}
	line(s.Headers)
	for _, row := range s.Rows {
		line(row)
	}
}

// CSVFormatter formats a report as CSV: the summary as label,value rows,
// then each section under a blank line with its header row.
type CSVFormatter struct{}

func (cf CSVFormatter) Name() string { return "csv" }

func (cf CSVFormatter) Format(r *Report) ([]byte, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	if err := writer.Write([]string{"Field", "Value"}); err != nil {
		return nil, err
	}
	for _, row := range r.Summary {
		if err := writer.Write([]string{row.Label, row.Value}); err != nil {
			return nil, err
		}
	}
	for _, s := range r.Sections {
		writer.Flush()
		sb.WriteString("\n")
		if err := writer.Write(s.Headers); err != nil {
			return nil, err
		}
		for _, row := range s.Rows {
			if err := writer.Write(row); err != nil {
				return nil, err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// JSONFormatter formats a report as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (jf JSONFormatter) Name() string { return "json" }

// Format emits the typed result when the report carries one, otherwise the
// report itself.
func (jf JSONFormatter) Format(r *Report) ([]byte, error) {
	var v any = r
	if r.Result != nil {
		v = struct {
			Title  string `json:"title"`
			Result any    `json:"result"`
		}{r.Title, r.Result}
	}
	if jf.Pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

var formatters = map[string]Formatter{
	"table":   TableFormatter{},
	"console": TableFormatter{},
	"text":    TableFormatter{},
	"csv":     CSVFormatter{},
	"json":    JSONFormatter{Pretty: true},
}

// GetFormatterByName returns the formatter for a name or alias, or nil.
func GetFormatterByName(name string) Formatter {
	return formatters[strings.ToLower(strings.TrimSpace(name))]
}

// AvailableFormatAliases lists every accepted format name, sorted.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders the report into a timestamped file in the working
// directory and returns its name.
func WriteFormatted(f Formatter, r *Report, ext string) (string, error) {
	data, err := f.Format(r)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", f.Name(), err)
	}
	filename := fmt.Sprintf("finlit_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
