// Package logger provides structured logging setup for CodeBridge.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/Strob0t/CodeBridge/internal/config"
)

// New creates a *slog.Logger from the given Logging config. Output is
// JSON to stderr with a "service" attribute on every record; stdout is
// reserved for the language server transport. The returned Closer
// flushes pending records when async logging is enabled.
func New(cfg config.Logging) (*slog.Logger, Closer) {
	level := parseLevel(cfg.Level)

	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	closer := Closer(nopCloser{})
	if cfg.Async {
		async := NewAsyncHandler(handler, 1024, 1)
		handler = async
		closer = async
	}

	return slog.New(handler).With("service", cfg.Service), closer
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
