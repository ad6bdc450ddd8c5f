// Package sentiment serves the text analysis endpoint used by the index page.
package sentiment

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"

	"sentiment-analyzer/internal/domain/entity"
	"sentiment-analyzer/internal/handler/http/respond"
	"sentiment-analyzer/internal/observability/logging"
	sentimentUC "sentiment-analyzer/internal/usecase/sentiment"
)

// MessageInvalidInput is the body of every 400 and 500 answer. Upstream details
// never reach the browser.
const MessageInvalidInput = "Invalid input! Try again."

const resultTemplate = "The given text has been identified as <strong style='color: red;'>%s</strong>" +
	" with a score of <strong style='color: red;'>%s</strong> out of 100."

// Service is the use case the handler depends on.
type Service interface {
	Analyze(ctx context.Context, text string) (entity.SentimentResult, error)
}

// AnalyzeHandler handles GET /sentimentAnalyzer.
type AnalyzeHandler struct {
	Svc    Service
	Logger *slog.Logger
}

// ServeHTTP analyzes the textToAnalyze query parameter.
// @Summary      Analyze sentiment
// @Description  Classifies the sentiment of the given text and returns an HTML fragment with label and score (0-100)
// @Tags         sentiment
// @Produce      html
// @Param        textToAnalyze query string true "Text to analyze"
// @Success      200 {string} string "The given text has been identified as <strong>positive</strong> with a score of <strong>91.24</strong> out of 100."
// @Failure      400 {string} string "Invalid input! Try again."
// @Failure      429 {string} string "Too many requests"
// @Failure      500 {string} string "Invalid input! Try again."
// @Router       /sentimentAnalyzer [get]
func (h AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get(entity.TextField)

	result, err := h.Svc.Analyze(r.Context(), text)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, entity.ErrInvalidInput) {
			code = http.StatusBadRequest
		}
		respond.Text(w, code, MessageInvalidInput)
		return
	}

	sentiment, ok := result.Sentiment()
	if !ok {
		category, _ := result.Failure()
		h.logger(r.Context()).Info("sentiment analysis unavailable",
			slog.String("category", category.String()))
		respond.Text(w, http.StatusInternalServerError, MessageInvalidInput)
		return
	}

	respond.HTML(w, http.StatusOK, RenderResult(sentiment))
}

func (h AnalyzeHandler) logger(ctx context.Context) *slog.Logger {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return logging.WithRequestID(ctx, logger)
}

// RenderResult formats a classification as the HTML fragment shown on the page.
// The label is escaped; the score has two decimals.
func RenderResult(s entity.Sentiment) string {
	return fmt.Sprintf(resultTemplate, html.EscapeString(s.Label), sentimentUC.FormatScore(s.Score))
}

// Register mounts the analysis endpoint on mux. limit wraps the handler when
// non-nil, typically with a per-client rate limiter.
func Register(mux *http.ServeMux, svc Service, limit func(http.Handler) http.Handler, logger *slog.Logger) {
	var h http.Handler = AnalyzeHandler{Svc: svc, Logger: logger}
	if limit != nil {
		h = limit(h)
	}
	mux.Handle("GET /sentimentAnalyzer", h)
}
