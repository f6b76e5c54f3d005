// Package logging provides the structured INFO/DEBUG/ERROR diagnostic
// surface the bake engine needs, with an optional per-run log file mirror.
// The bake engine takes an explicit *zap.Logger rather than reaching for a
// package-level singleton; the IK solver (ik.Step) does no logging.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console logger at the given level ("debug", "info", "error").
// When mirrorPath is non-empty, console output is additionally written to
// that file as well (see MirrorPath for how callers derive it from the
// output motion path).
func New(level string, mirrorPath string) (*zap.Logger, error) {
	lvl := parseLevel(level)

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	console := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(zapcore.AddSync(zapOut)), lvl)

	if mirrorPath == "" {
		return zap.New(console), nil
	}

	mirrorSync, closeFn, err := fileSync(mirrorPath)
	if err != nil {
		return nil, err
	}
	fileCfg := zap.NewProductionEncoderConfig()
	fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	mirror := zapcore.NewCore(zapcore.NewConsoleEncoder(fileCfg), mirrorSync, lvl)

	logger := zap.New(zapcore.NewTee(console, mirror))
	_ = closeFn // the file sync is closed by the process exiting; kept for symmetry with future Close() support.
	return logger, nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
