package calculation

import (
	"testing"

	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	require.NotNil(t, engine, "Should create engine")
	require.NotNil(t, engine.Rules, "Should load default rules")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.Equal(t, DefaultScoreWeights, engine.ScoreWeights)
	assert.Equal(t, 5.0, engine.Rebalance.ThresholdPercent)
	assert.Len(t, engine.Rules.FederalTax.BracketsSingle, 7)
}

func TestNewEngineWithRules(t *testing.T) {
	rules := DefaultRules()
	rules.FICA.MedicareRate = decimal.NewFromFloat(0.02)

	engine := NewEngineWithRules(rules)
	assert.Same(t, rules, engine.Rules)

	engine = NewEngineWithRules(nil)
	require.NotNil(t, engine.Rules, "Nil rules should fall back to the defaults")
	assert.True(t, engine.Rules.FICA.MedicareRate.Equal(decimal.NewFromFloat(0.0145)))
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.CalculatePaycheck(domain.PaycheckInput{GrossPay: decimal.NewFromInt(5000), State: "TX"})
	assert.NotEmpty(t, customLogger.messages, "Calculators should log through the engine logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestEngine_ZeroValueIsUsable(t *testing.T) {
	engine := &Engine{Rules: DefaultRules()}

	assert.NotPanics(t, func() {
		engine.CalculatePaycheck(domain.PaycheckInput{GrossPay: decimal.NewFromInt(1000)})
	})
}

func TestCalculationError(t *testing.T) {
	cause := assert.AnError
	err := &CalculationError{Operation: "monte carlo", Message: "bad input", Cause: cause}

	assert.Equal(t, "monte carlo: bad input: "+cause.Error(), err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "options: unknown", (&CalculationError{Operation: "options", Message: "unknown"}).Error())
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...any) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...any) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...any) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...any) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
