package logger

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// debugLevel is the logr verbosity used for Debug events.
const debugLevel = 1

// Logger is the logging interface used by the library.
type Logger interface {
	Info(msg string, obj any)
	Warn(msg string, obj any)
	Debug(msg string, obj any)
	Error(msg string, obj any)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Info(string, any)  {}
func (NopLogger) Warn(string, any)  {}
func (NopLogger) Debug(string, any) {}
func (NopLogger) Error(string, any) {}

type logrLogger struct {
	l logr.Logger
}

// NewWriterLogger builds a logger that writes one line per event to w.
func NewWriterLogger(w io.Writer) Logger {
	if w == nil {
		return NopLogger{}
	}
	sink := funcr.New(func(prefix, args string) {
		if prefix != "" {
			_, _ = fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		_, _ = fmt.Fprintln(w, args)
	}, funcr.Options{
		LogTimestamp:    true,
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
		Verbosity:       debugLevel,
	})
	return FromLogr(sink)
}

// FromLogr adapts an existing logr.Logger.
func FromLogr(l logr.Logger) Logger {
	return logrLogger{l: l}
}

func (l logrLogger) write(level int, severity, msg string, obj any) {
	kv := []any{"severity", severity}
	if obj != nil {
		kv = append(kv, "obj", obj)
	}
	l.l.V(level).Info(msg, kv...)
}

func (l logrLogger) Info(msg string, obj any)  { l.write(0, "INFO", msg, obj) }
func (l logrLogger) Warn(msg string, obj any)  { l.write(0, "WARN", msg, obj) }
func (l logrLogger) Debug(msg string, obj any) { l.write(debugLevel, "DEBUG", msg, obj) }

func (l logrLogger) Error(msg string, obj any) {
	if obj == nil {
		l.l.Error(nil, msg)
		return
	}
	l.l.Error(nil, msg, "obj", obj)
}

// Debug writes a debug log when enabled and logger is non-nil.
func Debug(enabled bool, logger Logger, msg string, obj any) {
	if !enabled || logger == nil {
		return
	}
	logger.Debug(msg, obj)
}

// Info writes an info log when logger is non-nil.
func Info(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Info(msg, obj)
}

// Warn writes a warning log when logger is non-nil.
func Warn(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, obj)
}

// Error writes an error log when logger is non-nil.
func Error(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Error(msg, obj)
}
