// Package logging builds the zap loggers used across rigidsim.
package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// NewLoggerConfig returns the console configuration shared by every logger:
// no stacktraces, colored levels, ISO8601 timestamps.
func NewLoggerConfig(level zapcore.Level) zap.Config {
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
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// NewLogger returns a logger that writes Info+ to stderr.
func NewLogger(name string) *zap.SugaredLogger {
	return build(name, zapcore.InfoLevel)
}

// NewDebugLogger returns a logger that writes Debug+ to stderr.
func NewDebugLogger(name string) *zap.SugaredLogger {
	return build(name, zapcore.DebugLevel)
}

func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// NewTestLogger routes Debug+ output through tb.
func NewTestLogger(tb testing.TB) *zap.SugaredLogger {
	return zaptest.NewLogger(tb, zaptest.Level(zapcore.DebugLevel)).Sugar()
}

// NewObservedTestLogger is like NewTestLogger but also keeps every entry in
// memory for assertions.
func NewObservedTestLogger(tb testing.TB) (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	testCore := zaptest.NewLogger(tb, zaptest.Level(zapcore.DebugLevel)).Core()
	return zap.New(zapcore.NewTee(testCore, core)).Sugar(), logs
}

func build(name string, level zapcore.Level) *zap.SugaredLogger {
	logger, err := NewLoggerConfig(level).Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger.Named(name).Sugar()
}
