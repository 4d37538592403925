package config

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the diagnostics logger. The console core writes to
// stderr at Info, or Debug when verbose. When logFile is non-empty a
// second core writes everything at Debug to that file, truncating any
// previous run's log.
func NewLogger(verbose bool, logFile string) (*zap.Logger, error) {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if UseColorStderr() {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	consoleLevel := zap.InfoLevel
	if verbose {
		consoleLevel = zap.DebugLevel
	}
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(ec),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(consoleLevel),
	)

	fileCore := zapcore.NewNopCore()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, err
		}
		fileCore = zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(f),
			zap.NewAtomicLevelAt(zap.DebugLevel),
		)
	}

	return zap.New(zapcore.NewTee(consoleCore, fileCore)).Named("pkgdocs"), nil
}

// UseColorStderr reports whether stderr should carry ANSI colors.
func UseColorStderr() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
