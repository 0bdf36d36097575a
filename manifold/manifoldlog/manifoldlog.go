// Package manifoldlog builds the zap.Logger configurations used across the
// module: a development console logger for tests and tools, and a
// rotating-file production logger backed by lumberjack, mirroring how the
// teacher wires its own logging sinks.
package manifoldlog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig configures the rotating log file a production logger writes
// to.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Development returns a human-readable logger suitable for tests and
// command-line tools, equivalent to zap.NewDevelopment but without the
// panic-on-error construction path.
func Development() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// Production returns a structured JSON logger that writes to a rotating
// file via lumberjack alongside stderr, per spec.md §A's logging
// requirements.
func Production(fc FileConfig) *zap.Logger {
	sink := &lumberjack.Logger{
		Filename:   fc.Path,
		MaxSize:    fc.MaxSizeMB,
		MaxBackups: fc.MaxBackups,
		MaxAge:     fc.MaxAgeDays,
		Compress:   fc.Compress,
	}

	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	fileCore := zapcore.NewCore(encoder, zapcore.AddSync(sink), zap.InfoLevel)
	consoleCore := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(os.Stderr)), zap.WarnLevel)

	return zap.New(zapcore.NewTee(fileCore, consoleCore))
}
