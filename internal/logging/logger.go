// Package logging builds the zap loggers used by the commands and adapts
// them to the calculation engine's printf-style Logger.
package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogLevel = "info"

// Level parses a level name, falling back to info for empty or unknown names.
func Level(name string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil || strings.TrimSpace(name) == "" {
		_ = lvl.UnmarshalText([]byte(defaultLogLevel))
	}
	return lvl
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey: "message",
		TimeKey:    "timestamp",
		LevelKey:   "severity",
		NameKey:    "logger",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
		EncodeDuration: zapcore.StringDurationEncoder,
		CallerKey:      "caller",
		EncodeCaller:   zapcore.ShortCallerEncoder,
		StacktraceKey:  "stacktrace",
	}
}

// NewLogger constructs a JSON logger on stderr at the level named by the
// LOG_LEVEL environment variable.
func NewLogger() (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(Level(os.Getenv("LOG_LEVEL")))
	cfg := zap.Config{
		Level:             level,
		Encoding:          "json",
		EncoderConfig:     encoderConfig(),
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}
	return cfg.Build()
}

// NewConsoleLogger writes human-readable lines to w. The CLI uses it for
// --debug output so logs stay off stdout, where reports go.
func NewConsoleLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	enc := encoderConfig()
	enc.TimeKey = ""
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

// EngineLogger adapts zap to the calculation engine's Logger interface.
type EngineLogger struct {
	logger *zap.SugaredLogger
}

// NewEngineLogger wraps logger; nil yields a no-op logger.
func NewEngineLogger(logger *zap.Logger) EngineLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return EngineLogger{logger: logger.Sugar()}
}

func (a EngineLogger) Debugf(format string, args ...any) { a.logger.Debugf(format, args...) }
func (a EngineLogger) Infof(format string, args ...any)  { a.logger.Infof(format, args...) }
func (a EngineLogger) Warnf(format string, args ...any)  { a.logger.Warnf(format, args...) }
func (a EngineLogger) Errorf(format string, args ...any) { a.logger.Errorf(format, args...) }

type ctxKey struct{}

// WithLogger stores logger on the context.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the context's logger, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return zap.NewNop()
}
