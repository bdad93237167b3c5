package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging surface used by solvers, readers and commands.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// Sublogger returns a child logger named "<parent>.<subname>".
	Sublogger(subname string) Logger
	SetLevel(level zapcore.Level)
	GetLevel() zapcore.Level
	Desugar() *zap.Logger
	Sync() error
}

type impl struct {
	*zap.SugaredLogger
	level zap.AtomicLevel
}

// FromZapCompatible wraps an existing sugared logger. The level reported by the result is fixed at
// debug since the wrapped core decides what is actually written.
func FromZapCompatible(logger *zap.SugaredLogger) Logger {
	return &impl{logger, zap.NewAtomicLevelAt(zapcore.DebugLevel)}
}

func (imp *impl) Sublogger(subname string) Logger {
	return &impl{imp.SugaredLogger.Named(subname), imp.level}
}

func (imp *impl) SetLevel(level zapcore.Level) {
	imp.level.SetLevel(level)
}

func (imp *impl) GetLevel() zapcore.Level {
	return imp.level.Level()
}
