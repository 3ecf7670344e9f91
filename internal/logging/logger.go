package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Init configures the global structured logger. Accepted levels are debug,
// info, warn, and error; anything else falls back to info.
func Init(level string) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	slog.Default().Debug(msg, args...)
}

// Info logs an info message.
func Info(msg string, args ...any) {
	slog.Default().Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	slog.Default().Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	slog.Default().Error(msg, args...)
}
