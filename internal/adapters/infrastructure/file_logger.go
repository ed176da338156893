package infrastructure

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

// FileLoggerAdapter writes one JSON object per line to an append-only file
type FileLoggerAdapter struct {
	file  *os.File
	out   io.Writer
	clock clockwork.Clock
	mutex sync.Mutex
}

// NewFileLoggerAdapter opens (creating if needed) the log file at logPath
func NewFileLoggerAdapter(logPath string) (*FileLoggerAdapter, error) {
	return NewFileLoggerAdapterWithClock(logPath, clockwork.NewRealClock())
}

// NewFileLoggerAdapterWithClock is NewFileLoggerAdapter with an injectable clock
func NewFileLoggerAdapterWithClock(logPath string, clock clockwork.Clock) (*FileLoggerAdapter, error) {
	if logPath == "" {
		return nil, errors.NewConfigurationError("log file path cannot be empty", nil)
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, errors.NewConfigurationError("failed to create log directory", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.NewConfigurationError("failed to open log file", err)
	}

	return &FileLoggerAdapter{file: file, out: file, clock: clock}, nil
}

// Debug logs a debug message to file
func (f *FileLoggerAdapter) Debug(msg string, fields ...ports.Field) {
	f.writeLogEntry("DEBUG", msg, fields...)
}

// Info logs an info message to file
func (f *FileLoggerAdapter) Info(msg string, fields ...ports.Field) {
	f.writeLogEntry("INFO", msg, fields...)
}

// Warn logs a warning message to file
func (f *FileLoggerAdapter) Warn(msg string, fields ...ports.Field) {
	f.writeLogEntry("WARN", msg, fields...)
}

// Error logs an error message to file
func (f *FileLoggerAdapter) Error(msg string, fields ...ports.Field) {
	f.writeLogEntry("ERROR", msg, fields...)
}

// Close flushes and closes the underlying file
func (f *FileLoggerAdapter) Close() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	f.out = io.Discard
	return err
}

func (f *FileLoggerAdapter) writeLogEntry(level, msg string, fields ...ports.Field) {
	entry := map[string]interface{}{
		"timestamp": f.clock.Now().UTC().Format(time.RFC3339),
		"level":     level,
		"message":   msg,
	}
	for _, field := range fields {
		if err, ok := field.Value.(error); ok {
			entry[field.Key] = err.Error()
			continue
		}
		entry[field.Key] = field.Value
	}

	line, err := json.Marshal(entry)
	if err != nil {
		line, _ = json.Marshal(map[string]string{
			"timestamp": entry["timestamp"].(string),
			"level":     "ERROR",
			"message":   "failed to marshal log entry: " + err.Error(),
		})
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	if _, err := f.out.Write(append(line, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log entry: %v\n", err)
	}
}
