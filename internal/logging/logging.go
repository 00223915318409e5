// Package logging builds the zap logger used by the commands and defines the
// small Logger interface the search packages depend on.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging surface injected into the engine packages. A
// *zap.SugaredLogger satisfies it.
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

// NoOpLogger discards everything.
type NoOpLogger struct{}

func (NoOpLogger) Debugf(string, ...any) {}
func (NoOpLogger) Infof(string, ...any)  {}
func (NoOpLogger) Warnf(string, ...any)  {}
func (NoOpLogger) Errorf(string, ...any) {}

// Nop returns a Logger that does nothing.
func Nop() Logger { return NoOpLogger{} }

// New builds a production zap logger, lowered to debug level when verbose.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Sugar adapts a zap logger to the Logger interface. A nil logger yields Nop.
func Sugar(l *zap.Logger) Logger {
	if l == nil {
		return Nop()
	}
	return l.Sugar()
}
