// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package log provides leveled logging for paper-scout. Output goes to
// stderr: stdout is reserved for CLI output and the MCP stdio transport.
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level names accepted by SetLevel.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var zapLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

var logger = zap.New(
	zapcore.NewCore(
		zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "lvl",
			MessageKey:     "message",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
		}),
		zapcore.AddSync(os.Stderr),
		zapLevel,
	),
).Sugar()

// SetLevel sets the logging threshold. Unrecognized names fall back to
// info.
func SetLevel(level string) {
	switch level {
	case LevelDebug:
		zapLevel.SetLevel(zapcore.DebugLevel)
	case LevelInfo:
		zapLevel.SetLevel(zapcore.InfoLevel)
	case LevelWarn:
		zapLevel.SetLevel(zapcore.WarnLevel)
	case LevelError:
		zapLevel.SetLevel(zapcore.ErrorLevel)
	default:
		zapLevel.SetLevel(zapcore.InfoLevel)
	}
}

// Debugf logs at DEBUG level. Arguments are handled in the manner of
// fmt.Printf.
func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

// Infof logs at INFO level.
func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

// Warnf logs at WARN level.
func Warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}

// Errorf logs at ERROR level.
func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}
