package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the process logger. The TUI owns the terminal, so when
// toTerminal is false logs go to cfg.LogFile, or nowhere if it is unset.
func newLogger(cfg cliConfig, toTerminal bool) (*zap.Logger, error) {
	if !toTerminal && cfg.LogFile == "" {
		return zap.NewNop(), nil
	}

	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	if toTerminal {
		config.OutputPaths = []string{"stderr"}
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		config.OutputPaths = []string{cfg.LogFile}
	}
	config.ErrorOutputPaths = config.OutputPaths

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
