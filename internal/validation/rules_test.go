package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateField(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		rule    Rule
		wantMsg string
	}{
		{"empty optional is valid", "", Rule{Label: "Bonus", Type: TypeCurrency}, ""},
		{"empty required", "  ", Rule{Label: "Salary", Required: true, Type: TypeCurrency}, "Salary is required"},
		{"not a number", "abc", Rule{Label: "Salary", Type: TypeCurrency}, "Salary must be a valid amount"},
		{"currency formatting accepted", "$1,200.50", Rule{Label: "Salary", Type: TypeCurrency, Min: Bound(0)}, ""},
		{"below min", "-5", Rule{Label: "Salary", Type: TypeCurrency, Min: Bound(0)}, "Salary must be at least $0"},
		{"above max", "120", Rule{Label: "Age", Type: TypeInteger, Max: Bound(100)}, "Age must be at most 100"},
		{"fractional integer", "2.5", Rule{Label: "Years", Type: TypeInteger}, "Years must be a whole number"},
		{"percentage above 100 without max", "150", Rule{Label: "Rate", Type: TypePercentage}, "Rate must be between 0 and 100"},
		{"percentage below 0", "-1", Rule{Label: "Rate", Type: TypePercentage}, "Rate must be between 0 and 100"},
		{"percentage with sign", "45%", Rule{Label: "Rate", Type: TypePercentage}, ""},
		{"percentage respects tighter max", "60", Rule{Label: "Rate", Type: TypePercentage, Max: Bound(50)}, "Rate must be at most 50%"},
		{"default label", "x", Rule{Type: TypeNumber}, "Value must be a valid number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, ValidateField(tt.raw, tt.rule))
		})
	}
}

func TestValidateField_Custom(t *testing.T) {
	rule := Rule{
		Label: "Retirement age",
		Type:  TypeInteger,
		Custom: func(v float64) string {
			if v < 55 {
				return "Retirement age should be 55 or later"
			}
			return ""
		},
	}
	assert.Equal(t, "Retirement age should be 55 or later", ValidateField("50", rule))
	assert.Equal(t, "", ValidateField("62", rule))
	assert.Equal(t, "Retirement age must be a whole number", ValidateField("62.5", rule), "Built-in checks run before custom ones")
}

func TestValidateFields(t *testing.T) {
	values := map[string]string{
		FieldGrossPay:          "5000",
		FieldRetirementPercent: "110",
		FieldHealthInsurance:   "",
	}
	result := ValidateFields(values, PaycheckSchema)

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "401(k) contribution must be between 0 and 100", result.Errors[FieldRetirementPercent])
	assert.Equal(t, CodeRange, result.Codes[FieldRetirementPercent])
	assert.Equal(t, []string{FieldRetirementPercent}, result.Fields())
}

func TestValidateFields_MissingRequired(t *testing.T) {
	result := ValidateFields(map[string]string{}, PaycheckSchema)

	assert.False(t, result.IsValid)
	assert.Equal(t, "Gross pay is required", result.Errors[FieldGrossPay])
	assert.Equal(t, CodeRequired, result.Codes[FieldGrossPay])
}

func TestValidateFields_AllValid(t *testing.T) {
	values := map[string]string{
		FieldPaymentHistory:    "98",
		FieldCreditUtilization: "12",
		FieldCreditAge:         "8",
		FieldCreditMix:         "70",
		FieldNewInquiries:      "1",
	}
	result := ValidateFields(values, CreditProfileSchema)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestCreditComparisonSchema(t *testing.T) {
	rule, ok := CreditComparisonSchema[TargetField(FieldCreditUtilization)]
	require.True(t, ok, "Target fields should be derived from the profile schema")
	assert.Equal(t, "Target credit utilization", rule.Label)
	assert.False(t, rule.Required)
	assert.Len(t, CreditComparisonSchema, 2*len(CreditProfileSchema))
}

func TestSchemasRegistry(t *testing.T) {
	for name, schema := range Schemas {
		t.Run(name, func(t *testing.T) {
			assert.NotEmpty(t, schema)
			for field, rule := range schema {
				assert.NotEmpty(t, rule.Label, "Field %s should have a label", field)
				if rule.Min != nil && rule.Max != nil {
					assert.LessOrEqual(t, *rule.Min, *rule.Max, "Field %s has inverted bounds", field)
				}
			}
		})
	}
}
