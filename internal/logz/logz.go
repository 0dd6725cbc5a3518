// Package logz sets up the process-wide zap logger.
package logz

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init builds a JSON logger at the given level and installs it as zap's
// global logger. Output goes to file, since the terminal UI owns stdout and
// stderr; an empty file disables logging. name is attached to every entry.
func Init(level, name, file string) error {
	if file == "" {
		zap.ReplaceGlobals(zap.NewNop())
		return nil
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{file}
	cfg.ErrorOutputPaths = []string{file}
	cfg.InitialFields = map[string]any{"app": name}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// ParseLevel maps a level name to a zap level, case-insensitively.
func ParseLevel(level string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return lvl, fmt.Errorf("invalid log level %q", level)
	}
	return lvl, nil
}

// NewLogger returns the global logger.
func NewLogger() *zap.Logger {
	return zap.L()
}

// Drop flushes buffered entries.
func Drop() {
	_ = zap.L().Sync()
}

// NewConsole builds a human-readable logger on stderr, for commands that do
// not run the terminal UI.
func NewConsole(level string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}
