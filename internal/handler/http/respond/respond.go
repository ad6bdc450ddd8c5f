// Package respond writes HTTP responses in the formats the analyzer serves:
// plain text and HTML fragments for the browser page, JSON for operational endpoints.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"
)

// Text writes msg as a plain-text body with the given status code.
func Text(w http.ResponseWriter, code int, msg string) {
	write(w, code, contentTypeText, msg)
}

// HTML writes an already escaped HTML fragment with the given status code.
func HTML(w http.ResponseWriter, code int, fragment string) {
	write(w, code, contentTypeHTML, fragment)
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent, so the failure can only be logged.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

func write(w http.ResponseWriter, code int, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Default().Debug("failed to write response body",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}
