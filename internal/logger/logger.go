// Package logger wraps logrus with component-scoped structured entries.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is a thin wrapper around a logrus entry carrying a component field.
type Logger struct {
	entry *logrus.Entry
}

// Init configures the global logrus instance: JSON output on stderr at the
// given level. Unknown level names fall back to info. Call once from main.
func Init(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	logrus.SetOutput(os.Stderr)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) { logrus.SetOutput(w) }

// New creates a Logger scoped to a component name.
func New(component string) *Logger {
	return &Logger{entry: logrus.WithField("component", component)}
}

// WithFields returns a Logger with additional structured fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	return &Logger{entry: l.entry.WithFields(fields)}
}

// Debug logs at debug level.
func (l *Logger) Debug(message string) { l.entry.Debug(message) }

// Info logs at info level.
func (l *Logger) Info(message string) { l.entry.Info(message) }

// Warn logs at warning level.
func (l *Logger) Warn(message string) { l.entry.Warn(message) }

// Error logs at error level.
func (l *Logger) Error(message string) { l.entry.Error(message) }
