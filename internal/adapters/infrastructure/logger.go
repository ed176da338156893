package infrastructure

import (
	"log/slog"

	"cropcast.app/internal/ports"
	"cropcast.app/pkg/logger"
)

// SlogLoggerAdapter implements the Logger port using slog.
// The zero value logs through slog's process-wide default.
type SlogLoggerAdapter struct {
	logger *slog.Logger
}

// NewSlogLoggerAdapter binds the adapter to a specific logger
func NewSlogLoggerAdapter(l *logger.Logger) *SlogLoggerAdapter {
	if l == nil {
		return &SlogLoggerAdapter{}
	}
	return &SlogLoggerAdapter{logger: l.Logger}
}

func (l *SlogLoggerAdapter) target() *slog.Logger {
	if l.logger != nil {
		return l.logger
	}
	return slog.Default()
}

func toArgs(fields []ports.Field) []interface{} {
	args := make([]interface{}, 0, len(fields)*2)
	for _, field := range fields {
		value := field.Value
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		args = append(args, field.Key, value)
	}
	return args
}

// Debug logs a debug message
func (l *SlogLoggerAdapter) Debug(msg string, fields ...ports.Field) {
	l.target().Debug(msg, toArgs(fields)...)
}

// Info logs an info message
func (l *SlogLoggerAdapter) Info(msg string, fields ...ports.Field) {
	l.target().Info(msg, toArgs(fields)...)
}

// Warn logs a warning message
func (l *SlogLoggerAdapter) Warn(msg string, fields ...ports.Field) {
	l.target().Warn(msg, toArgs(fields)...)
}

// Error logs an error message
func (l *SlogLoggerAdapter) Error(msg string, fields ...ports.Field) {
	l.target().Error(msg, toArgs(fields)...)
}

// TeeLogger fans every entry out to several loggers
type TeeLogger struct {
	loggers []ports.Logger
}

// NewTeeLogger creates a logger writing to all of the given loggers
func NewTeeLogger(loggers ...ports.Logger) *TeeLogger {
	return &TeeLogger{loggers: loggers}
}

func (t *TeeLogger) Debug(msg string, fields ...ports.Field) {
	for _, l := range t.loggers {
		l.Debug(msg, fields...)
	}
}

func (t *TeeLogger) Info(msg string, fields ...ports.Field) {
	for _, l := range t.loggers {
		l.Info(msg, fields...)
	}
}

func (t *TeeLogger) Warn(msg string, fields ...ports.Field) {
	for _, l := range t.loggers {
		l.Warn(msg, fields...)
	}
}

func (t *TeeLogger) Error(msg string, fields ...ports.Field) {
	for _, l := range t.loggers {
		l.Error(msg, fields...)
	}
}
