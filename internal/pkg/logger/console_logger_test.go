//go:build unit
// +build unit

package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuvedam/openenclave/internal/pkg/config"
)

func newBufferedConsoleLogger(buf *bytes.Buffer, level slog.Level) *ConsoleLogger {
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})
	return &ConsoleLogger{slogLogger{logger: slog.New(handler)}}
}

func TestConsoleLogger_LogsToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedConsoleLogger(&buf, slog.LevelInfo)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestConsoleLogger_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedConsoleLogger(&buf, slog.LevelDebug)

	logger.Debug("imported key ", 42)

	assert.Contains(t, buf.String(), "imported key 42")
}

func TestConsoleLogger_Panic(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedConsoleLogger(&buf, slog.LevelInfo)

	assert.PanicsWithValue(t, "boom", func() {
		logger.Panic("boom")
	})
	assert.Contains(t, buf.String(), "boom")
}

func TestNewConsoleLogger(t *testing.T) {
	logger := NewConsoleLogger(config.LogLevelInfo)
	require.NotNil(t, logger)

	require.NotPanics(t, func() {
		logger.Debug("test")
		logger.Info("test")
		logger.Warn("test")
		logger.Error("test")
	})
}
