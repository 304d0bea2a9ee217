package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

var paycheckArgs = []string{
	"paycheck",
	"--grossPay", "$5,000",
	"--payFrequency", "12",
	"--filingStatus", "single",
	"--state", "CA",
	"--healthInsurance", "200",
	"--retirement401kPercent", "5",
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "finlit", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{
		"paycheck", "growth", "mortgage", "retirement", "portfolio", "montecarlo",
		"options", "credit", "budget", "valuation", "crypto",
		"validate", "rules", "version",
	}
	cmd := newRootCmd()
	for _, name := range expected {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestPaycheck_Table(t *testing.T) {
	out, err := execute(t, paycheckArgs...)
	require.NoError(t, err)
	assert.Contains(t, out, "PAYCHECK\n")
	assert.Contains(t, out, "$3,575.16")
	assert.Contains(t, out, "DEDUCTIONS")
}

func TestPaycheck_JSON(t *testing.T) {
	out, err := execute(t, append(paycheckArgs, "--format", "json")...)
	require.NoError(t, err)

	var body struct {
		Title  string         `json:"title"`
		Result map[string]any `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "Paycheck", body.Title)
	assert.Equal(t, "3575.16", body.Result["netPay"])
}

func TestInputFileWithOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.yaml")
	require.NoError(t, os.WriteFile(path, []byte("monthlyIncome: 5000\nneeds: 2500\nwants: 1500\nsavings: 1000\n"), 0o644))

	out, err := execute(t, "budget", "--input", path, "--wants", "1000", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Field,Value")
	assert.Contains(t, out, `Surplus,$500.00`)
}

func TestSetFlag(t *testing.T) {
	out, err := execute(t, "growth", "--set", "principal=10000", "--set", "annualRate=5", "--set", "years=10")
	require.NoError(t, err)
	assert.Contains(t, out, "COMPOUND INTEREST")

	_, err = execute(t, "growth", "--set", "principal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected name=value")
}

func TestInvalidFields(t *testing.T) {
	out, err := execute(t, "paycheck", "--grossPay=-5")
	require.NoError(t, err, "Invalid fields fall back to defaults")
	assert.Contains(t, out, "grossPay:")

	_, err = execute(t, "paycheck", "--grossPay=-5", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grossPay")
}

func TestUnknownFormat(t *testing.T) {
	_, err := execute(t, append(paycheckArgs, "--format", "xml")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestSave(t *testing.T) {
	t.Chdir(t.TempDir())
	out, err := execute(t, append(paycheckArgs, "--save")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to finlit_report_")

	matches, err := filepath.Glob("finlit_report_*.txt")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "paycheck", "--set", "grossPay=5000")
	require.NoError(t, err)
	assert.Contains(t, out, "All paycheck fields are valid")

	out, err = execute(t, "validate", "paycheck", "--set", "grossPay=abc")
	require.Error(t, err)
	assert.Contains(t, out, "grossPay:")
	assert.Contains(t, out, "VALIDATION_TYPE")

	_, err = execute(t, "validate", "lottery")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown calculator")
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "built-in rules: valid")
	assert.Contains(t, out, "CA")

	_, err = execute(t, "rules", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRulesFlag_BadFile(t *testing.T) {
	_, err := execute(t, append(paycheckArgs, "--rules", filepath.Join(t.TempDir(), "missing.yaml"))...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load rules")
}

func TestDebugFlag(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"paycheck", "--grossPay=-5", "--debug"})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, errOut.String(), "invalid fields")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "finlit dev (commit none, built unknown)")
}
