// Package logging builds the application's structured loggers on log/slog.
//
// Example usage:
//
//	logger := logging.NewLogger()
//	logger.Info("server starting", slog.String("addr", ":5000"))
//
//	func handle(ctx context.Context) {
//	    logging.WithRequestID(ctx, logger).Warn("sentiment analysis failed")
//	}
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"sentiment-analyzer/internal/handler/http/requestid"
)

// Output formats understood by New.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// NewLogger creates a logger writing to stdout, configured from LOG_LEVEL
// (debug, info, warn, error; default info) and LOG_FORMAT (json or text; default json).
func NewLogger() *slog.Logger {
	return New(os.Stdout, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// New creates a logger writing to w with the given level and format names.
// Unknown names fall back to info and JSON.
func New(w io.Writer, level, format string) *slog.Logger {
	logLevel := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: logLevel,
		// Source locations are only worth their cost when debugging.
		AddSource: logLevel <= slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), FormatText) {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// WithRequestID returns a logger that includes the request ID from the context.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With(slog.String("request_id", reqID))
}
