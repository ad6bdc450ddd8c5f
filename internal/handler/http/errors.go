package http

import (
	"net/http"

	"sentiment-analyzer/internal/handler/http/respond"
)

// Fixed plain-text bodies for requests that reach no handler or crash one.
const (
	MessageNotFound      = "Page not found"
	MessageInternalError = "Internal server error"
)

// NotFound answers every unmatched path with 404 "Page not found".
func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.Text(w, http.StatusNotFound, MessageNotFound)
	})
}
