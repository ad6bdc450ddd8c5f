// Package http provides the server-wide HTTP handlers and middleware of the
// sentiment analyzer: health and liveness probes, metrics, request logging,
// panic recovery, per-client rate limiting and the 404 fallback.
package http

import (
	"net/http"
	"strings"
	"time"

	"sentiment-analyzer/internal/handler/http/respond"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339, UTC
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// CredentialChecker reports which upstream settings are missing.
// *config.SentimentConfig satisfies it.
type CredentialChecker interface {
	MissingCredentials() []string
}

// HealthHandler reports whether the server can serve analyses.
//
// Only configuration is inspected; the upstream is never called. The service
// is unhealthy when credentials are missing.
type HealthHandler struct {
	Sentiment   CredentialChecker
	RateLimiter *ClientRateLimiter // optional
	Version     string
}

// ServeHTTP returns 200 with status "healthy", or 503 with "unhealthy".
// @Summary      Health check
// @Description  Reports whether the sentiment service is configured, plus rate limiter state
// @Tags         operations
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus)

	sentimentCheck := h.checkSentiment()
	checks["sentiment_service"] = sentimentCheck

	if h.RateLimiter != nil {
		checks["rate_limiter"] = CheckStatus{
			Status:  "healthy",
			Details: map[string]any{"active_clients": h.RateLimiter.ActiveClients()},
		}
	}

	status := "healthy"
	statusCode := http.StatusOK
	if sentimentCheck.Status != "healthy" {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkSentiment() CheckStatus {
	if h.Sentiment == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}
	if missing := h.Sentiment.MissingCredentials(); len(missing) > 0 {
		return CheckStatus{
			Status:  "unhealthy",
			Message: "missing " + strings.Join(missing, ", "),
		}
	}
	return CheckStatus{Status: "healthy"}
}

// LiveHandler answers liveness probes.
type LiveHandler struct{}

// ServeHTTP always returns 200 {"status":"alive"}.
// @Summary      Liveness probe
// @Tags         operations
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /live [get]
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "alive"})
}
