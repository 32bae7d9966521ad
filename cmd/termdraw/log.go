package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with timestamp formatting
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "termdraw",
	})
}

// setupLogging opens the log destination
// Full-screen frames would be torn by interleaved stderr, so a log file is preferred when given
// The returned file is nil when logging goes to stderr
func setupLogging(verbose bool, path string) (*log.Logger, *os.File, error) {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	if path == "" {
		return newLogger(os.Stderr, level), nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return newLogger(f, level), f, nil
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to log.Default()
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
