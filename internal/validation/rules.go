package validation

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/finlit/internal/numeric"
)

// FieldType selects how a raw field value is interpreted.
type FieldType string

const (
	TypeNumber     FieldType = "number"
	TypeCurrency   FieldType = "currency"
	TypePercentage FieldType = "percentage"
	TypeInteger    FieldType = "integer"
)

// Error codes attached to each failed field.
const (
	CodeRequired = "VALIDATION_REQUIRED"
	CodeType     = "VALIDATION_TYPE"
	CodeRange    = "VALIDATION_RANGE"
	CodeCustom   = "VALIDATION_CUSTOM"
)

// Rule declares the constraints for one input field.
type Rule struct {
	Label    string
	Required bool
	Type     FieldType
	Min      *float64
	Max      *float64
	// Custom runs after the built-in checks and returns a message, or "" when valid.
	Custom func(value float64) string
}

// Schema maps field names to their rules.
type Schema map[string]Rule

// Result is the outcome of validating a set of fields.
type Result struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]string `json:"errors"`
	Codes   map[string]string `json:"codes,omitempty"`
}

// Bound returns a pointer for use as Rule.Min or Rule.Max.
func Bound(v float64) *float64 {
	return &v
}

// ValidateField checks a raw value against a rule and returns the error
// message, or "" when the value is acceptable.
func ValidateField(raw string, rule Rule) string {
	_, msg := check(raw, rule)
	return msg
}

func check(raw string, rule Rule) (code, msg string) {
	label := rule.Label
	if label == "" {
		label = "Value"
	}

	if strings.TrimSpace(raw) == "" {
		if rule.Required {
			return CodeRequired, fmt.Sprintf("%s is required", label)
		}
		return "", ""
	}

	value, ok := numeric.ParseAmountOK(raw)
	if !ok {
		return CodeType, fmt.Sprintf("%s must be a valid %s", label, typeNoun(rule.Type))
	}

	switch rule.Type {
	case TypeInteger:
		if value != math.Trunc(value) {
			return CodeType, fmt.Sprintf("%s must be a whole number", label)
		}
	case TypePercentage:
		if value < 0 || value > 100 {
			return CodeRange, fmt.Sprintf("%s must be between 0 and 100", label)
		}
	}

	if rule.Min != nil && value < *rule.Min {
		return CodeRange, fmt.Sprintf("%s must be at least %s", label, formatBound(*rule.Min, rule.Type))
	}
	if rule.Max != nil && value > *rule.Max {
		return CodeRange, fmt.Sprintf("%s must be at most %s", label, formatBound(*rule.Max, rule.Type))
	}

	if rule.Custom != nil {
		if msg := rule.Custom(value); msg != "" {
			return CodeCustom, msg
		}
	}
	return "", ""
}

// ValidateFields validates every field the schema names. Fields missing from
// values are treated as empty.
func ValidateFields(values map[string]string, schema Schema) Result {
	result := Result{IsValid: true, Errors: map[string]string{}, Codes: map[string]string{}}
	for name, rule := range schema {
		code, msg := check(values[name], rule)
		if msg == "" {
			continue
		}
		result.IsValid = false
		result.Errors[name] = msg
		result.Codes[name] = code
	}
	return result
}

// Fields returns the failing field names in sorted order.
func (r Result) Fields() []string {
	names := make([]string, 0, len(r.Errors))
	for name := range r.Errors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func typeNoun(t FieldType) string {
	switch t {
	case TypeCurrency:
		return "amount"
	case TypePercentage:
		return "percentage"
	case TypeInteger:
		return "whole number"
	default:
		return "number"
	}
}

func formatBound(v float64, t FieldType) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	switch t {
	case TypeCurrency:
		return "$" + s
	case TypePercentage:
		return s + "%"
	default:
		return s
	}
}
