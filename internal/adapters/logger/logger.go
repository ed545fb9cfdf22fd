// Package logger implements a logging adapter using charmbracelet/log.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"go.trai.ch/imprint/internal/core/ports"
)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using charmbracelet/log.
type Logger struct {
	logger *log.Logger
}

// New creates a Logger writing to stderr.
func New() *Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a Logger writing to w.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{
		logger: log.NewWithOptions(w, log.Options{
			Prefix: "imprint",
			Level:  log.InfoLevel,
		}),
	}
}

// SetVerbose toggles debug output.
func (l *Logger) SetVerbose(enabled bool) {
	if enabled {
		l.logger.SetLevel(log.DebugLevel)
		return
	}
	l.logger.SetLevel(log.InfoLevel)
}

// Debug logs a diagnostic message, shown only in verbose mode.
func (l *Logger) Debug(msg string) {
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.logger.Warn(msg)
}

// Error logs an error message.
func (l *Logger) Error(err error) {
	l.logger.Error("operation failed", "err", err)
}
