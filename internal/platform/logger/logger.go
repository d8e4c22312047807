// Package logger provides structured logging setup for the application.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/notewire/notewire/internal/config"
)

// Setup builds a structured JSON logger at the configured level, sets it
// as the process default and returns it.
func Setup(cfg config.LoggingConfig) *slog.Logger {
	return setup(cfg, os.Stdout)
}

func setup(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		// Config validation should have caught this; fall back rather
		// than fail at the very first log line.
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
