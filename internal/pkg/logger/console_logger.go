package logger

import (
	"log/slog"
	"os"
)

// ConsoleLogger is an implementation of Logger that logs text lines to stderr,
// leaving stdout to command output.
type ConsoleLogger struct {
	slogLogger
}

// NewConsoleLogger creates a new console logger with the specified log level.
func NewConsoleLogger(level string) Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	handler := slog.NewTextHandler(os.Stderr, opts)

	return &ConsoleLogger{slogLogger{logger: slog.New(handler)}}
}
