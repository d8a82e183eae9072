// Package logging provides structured, leveled logging for every other
// package in the module. It wraps go.uber.org/zap rather than hand-rolling a
// writer-based logger: every component below the CLI layer logs through a
// *Logger, and the CLI decides (via NewRoot) whether that ends up as
// human-readable console output or JSON.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewRoot creates the root logger for a process at the specified level. If
// level is LevelDisabled, the returned Logger discards everything. When json
// is true, output is encoded as JSON lines (suitable for piping into another
// process' event sink); otherwise a human-readable console encoding is used.
func NewRoot(level Level, json bool) *Logger {
	if level == LevelDisabled {
		return &Logger{sugar: zap.NewNop().Sugar()}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if json {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(os.Stderr)), level.zapLevel())
	return &Logger{sugar: zap.New(core).Sugar()}
}
