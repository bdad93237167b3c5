package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewFileLogger returns a logger appending to path in addition to stderr. The file is rotated
// once it reaches 10 megabytes and the three newest rotations are kept, gzipped. Close the
// returned closer once the logger is no longer used.
func NewFileLogger(name, path string, level zapcore.Level) (Logger, io.Closer) {
	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		Compress:   true,
	}
	config := newConfig(level)
	fileEncoding := config.EncoderConfig
	fileEncoding.EncodeLevel = zapcore.CapitalLevelEncoder

	stderr, _, err := zap.Open(config.OutputPaths...)
	if err != nil {
		stderr = zapcore.Lock(zapcore.AddSync(io.Discard))
	}
	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(config.EncoderConfig), stderr, config.Level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(fileEncoding), zapcore.AddSync(sink), config.Level),
	)
	return &impl{zap.New(core, zap.AddCaller()).Sugar().Named(name), config.Level}, sink
}
