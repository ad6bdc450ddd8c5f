package sentiment_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"sentiment-analyzer/internal/domain/entity"
	"sentiment-analyzer/internal/handler/http/sentiment"
	sentimentUC "sentiment-analyzer/internal/usecase/sentiment"
)

/* ───────── stubs ───────── */

type stubAnalyzer struct {
	result entity.SentimentResult
	calls  atomic.Int32
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ string) entity.SentimentResult {
	s.calls.Add(1)
	return s.result
}

func newHandler(result entity.SentimentResult) (http.Handler, *stubAnalyzer) {
	stub := &stubAnalyzer{result: result}
	mux := http.NewServeMux()
	sentiment.Register(mux, &sentimentUC.Service{Analyzer: stub}, nil, nil)
	return mux, stub
}

func get(h http.Handler, rawQuery string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/sentimentAnalyzer?"+rawQuery, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

/* ───────── tests ───────── */

func TestAnalyzeHandler_Success(t *testing.T) {
	h, stub := newHandler(entity.Succeeded("positive", 91.2363))

	rec := get(h, "textToAnalyze="+url.QueryEscape("I love this new technology."))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t,
		"The given text has been identified as <strong style='color: red;'>positive</strong> with a score of <strong style='color: red;'>91.24</strong> out of 100.",
		rec.Body.String())
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestAnalyzeHandler_NormalizesLabel(t *testing.T) {
	h, _ := newHandler(entity.Succeeded("SENT_NEGATIVE", 50))

	rec := get(h, "textToAnalyze=awful")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ">negative<")
	assert.Contains(t, rec.Body.String(), ">50.00<")
}

func TestAnalyzeHandler_EscapesLabel(t *testing.T) {
	h, _ := newHandler(entity.Succeeded("<script>alert(1)</script>", 10))

	rec := get(h, "textToAnalyze=x")

	assert.NotContains(t, rec.Body.String(), "<script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}

func TestAnalyzeHandler_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
	}{
		{name: "missing parameter", rawQuery: ""},
		{name: "empty", rawQuery: "textToAnalyze="},
		{name: "whitespace", rawQuery: "textToAnalyze=" + url.QueryEscape("   \t\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, stub := newHandler(entity.Succeeded("positive", 90))

			rec := get(h, tt.rawQuery)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, sentiment.MessageInvalidInput, rec.Body.String())
			assert.Equal(t, int32(0), stub.calls.Load(), "analyzer must not be called")
		})
	}
}

func TestAnalyzeHandler_AnalysisFailure(t *testing.T) {
	categories := []entity.FailureCategory{
		entity.FailureConfiguration,
		entity.FailureConnection,
		entity.FailureTimeout,
		entity.FailureHTTPStatus,
		entity.FailureParse,
		entity.FailureUnknown,
	}

	for _, category := range categories {
		t.Run(category.String(), func(t *testing.T) {
			h, stub := newHandler(entity.Failed(category))

			rec := get(h, "textToAnalyze=hello")

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Equal(t, sentiment.MessageInvalidInput, rec.Body.String())
			assert.NotContains(t, rec.Body.String(), category.String())
			assert.Equal(t, int32(1), stub.calls.Load())
		})
	}
}

func TestAnalyzeHandler_MethodNotAllowed(t *testing.T) {
	h, _ := newHandler(entity.Succeeded("positive", 90))

	req := httptest.NewRequest(http.MethodPost, "/sentimentAnalyzer?textToAnalyze=x", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRegister_AppliesLimiter(t *testing.T) {
	stub := &stubAnalyzer{result: entity.Succeeded("positive", 90)}
	mux := http.NewServeMux()
	blocked := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	sentiment.Register(mux, &sentimentUC.Service{Analyzer: stub}, blocked, nil)

	rec := get(mux, "textToAnalyze=x")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, int32(0), stub.calls.Load())
}

func TestRenderResult(t *testing.T) {
	got := sentiment.RenderResult(entity.Sentiment{Label: "neutral", Score: 0})
	assert.Equal(t,
		"The given text has been identified as <strong style='color: red;'>neutral</strong> with a score of <strong style='color: red;'>0.00</strong> out of 100.",
		got)
}
