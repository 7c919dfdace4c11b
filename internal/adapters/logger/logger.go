// Package logger implements a logging adapter using log/slog with a
// charmbracelet/log handler.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/tangle/internal/core/ports"
)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger. Output goes to stderr unless redirected.
type Logger struct {
	mu      sync.RWMutex
	handler *log.Logger
	logger  *slog.Logger
}

// New creates a Logger writing info and above to stderr.
func New() *Logger {
	l := &Logger{}
	l.SetOutput(os.Stderr)
	return l
}

// SetOutput replaces the output destination, keeping the current level.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	level := log.InfoLevel
	if l.handler != nil {
		level = l.handler.GetLevel()
	}
	l.handler = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
	l.logger = slog.New(l.handler)
}

// SetLevel changes the minimum level that is written.
func (l *Logger) SetLevel(level domain.LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch level {
	case domain.LogLevelDebug:
		l.handler.SetLevel(log.DebugLevel)
	case domain.LogLevelWarn:
		l.handler.SetLevel(log.WarnLevel)
	case domain.LogLevelError:
		l.handler.SetLevel(log.ErrorLevel)
	default:
		l.handler.SetLevel(log.InfoLevel)
	}
}

// Debug logs a debug message with key-value pairs.
func (l *Logger) Debug(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg, args...)
}

// Info logs an informational message with key-value pairs.
func (l *Logger) Info(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg, args...)
}

// Warn logs a warning message with key-value pairs.
func (l *Logger) Warn(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg, args...)
}

// Error logs an error.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", "error", err)
}
