// Package logging contains the zap-backed logger used across chainik.
package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newConfig is zap's development config with stacktraces off, colored levels, UTC timestamps and
// output on stderr so command output on stdout stays machine readable.
func newConfig(level zapcore.Level) zap.Config {
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     utcTime,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

func utcTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	zapcore.ISO8601TimeEncoder(t.UTC(), enc)
}

// NewLogger returns a logger writing Info+ to stderr.
func NewLogger(name string) Logger {
	return newFromConfig(name, zapcore.InfoLevel)
}

// NewDebugLogger returns a logger writing Debug+ to stderr.
func NewDebugLogger(name string) Logger {
	return newFromConfig(name, zapcore.DebugLevel)
}

// NewBlankLogger returns a logger that discards everything.
func NewBlankLogger(name string) Logger {
	return FromZapCompatible(zap.NewNop().Sugar().Named(name))
}

func newFromConfig(name string, level zapcore.Level) Logger {
	config := newConfig(level)
	return &impl{zap.Must(config.Build()).Sugar().Named(name), config.Level}
}
