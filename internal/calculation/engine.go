package calculation

import (
	"github.com/rgehrsitz/finlit/internal/domain"
)

// Logger is the logging surface the calculators write to.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// Engine binds the calculators to a rules set. It holds no per-call state
// and is safe for concurrent use once configured.
type Engine struct {
	Rules        *domain.Rules
	ScoreWeights domain.ScoreWeights
	Rebalance    domain.RebalanceSettings
	Logger       Logger
}

// NewEngine creates an engine with the compiled-in rules.
func NewEngine() *Engine {
	return NewEngineWithRules(DefaultRules())
}

// NewEngineWithRules creates an engine with caller-supplied rules. Nil rules
// fall back to the defaults.
func NewEngineWithRules(rules *domain.Rules) *Engine {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Engine{
		Rules:        rules,
		ScoreWeights: DefaultScoreWeights,
		Rebalance:    DefaultRebalanceSettings(),
		Logger:       NopLogger{},
	}
}

// SetLogger replaces the logger; nil installs NopLogger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

func (e *Engine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}
