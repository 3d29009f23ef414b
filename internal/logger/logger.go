// Package logger installs the process-wide zap logger.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init builds a development logger at the given level and installs it with
// zap.ReplaceGlobals. When path is set, output goes to that file instead of
// stderr. The returned func flushes the logger.
func Init(level, path string) (func(), error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level.SetLevel(parseLevel(level))
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}

	lgr, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	undo := zap.ReplaceGlobals(lgr)
	return func() {
		_ = lgr.Sync()
		undo()
	}, nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
