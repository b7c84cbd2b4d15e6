// Package util provides small ambient helpers shared across the agent.
package util

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu       sync.RWMutex
	logLevel = new(slog.LevelVar)
	logger   *slog.Logger
)

func init() {
	logLevel.Set(slog.LevelInfo)
	logger = slog.New(newHandler(os.Stderr, logLevel))
}

func newHandler(w *os.File, level *slog.LevelVar) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(interface{ Format(string) string }); ok {
					return slog.String(slog.TimeKey, t.Format("2006-01-02 15:04:05"))
				}
			}
			return a
		},
	})
}

// Configure wires the package logger according to the CLI's global flags.
// verbose sets debug-level logging. silent redirects the handler to logPath
// and suppresses nothing else — callers are responsible for not writing
// console output themselves when silent is set.
func Configure(verbose, silent bool, logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if verbose {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}

	out := os.Stderr
	if silent {
		if logPath == "" {
			return fmt.Errorf("silent logging requires a log file path")
		}
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = f
	}

	logger = slog.New(newHandler(out, logLevel))
	return nil
}

// Debug logs a debug message using the package logger.
func Debug(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Debug(fmt.Sprintf(format, args...))
}

// Info logs an info message using the package logger.
func Info(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Info(fmt.Sprintf(format, args...))
}

// Warn logs a warning message using the package logger.
func Warn(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Warn(fmt.Sprintf(format, args...))
}

// Error logs an error message using the package logger.
func Error(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Error(fmt.Sprintf(format, args...))
}

// Slog returns the underlying slog.Logger for structured, key-value logging.
func Slog() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// With returns a logger with additional structured attributes attached.
func With(args ...any) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger.With(args...)
}
