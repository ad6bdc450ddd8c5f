// Package nlu is the client for the IBM Watson Natural Language Understanding
// v1 analyze endpoint, restricted to document-level sentiment.
package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"sentiment-analyzer/internal/config"
	"sentiment-analyzer/internal/domain/entity"
	"sentiment-analyzer/internal/observability/logging"
	"sentiment-analyzer/internal/observability/tracing"
)

const (
	apiKeyUser = "apikey"

	labelPath = "sentiment.document.label"
	scorePath = "sentiment.document.score"

	// maxResponseBytes bounds how much of an upstream body is read.
	maxResponseBytes = 1 << 20
	// maxLoggedBodyBytes bounds how much of an error body is logged.
	maxLoggedBodyBytes = 512
)

// Client calls Watson NLU. It holds only immutable configuration and a shared
// *http.Client, so one Client serves all requests concurrently.
type Client struct {
	cfg        config.SentimentConfig
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    MetricsRecorder
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithMetricsRecorder replaces the Prometheus recorder.
func WithMetricsRecorder(m MetricsRecorder) Option {
	return func(c *Client) {
		if m == nil {
			m = noopMetrics{}
		}
		c.metrics = m
	}
}

// NewClient creates a client for cfg. Missing credentials are accepted here and
// reported by every Analyze call as a configuration failure.
func NewClient(cfg config.SentimentConfig, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		cfg:        cfg,
		endpoint:   buildEndpoint(cfg.Endpoint, cfg.Version),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		metrics:    NewPrometheusMetrics(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// analyzeRequest is the JSON body sent to the analyze endpoint.
type analyzeRequest struct {
	Text     string          `json:"text"`
	Features analyzeFeatures `json:"features"`
}

type analyzeFeatures struct {
	Sentiment sentimentFeature `json:"sentiment"`
}

type sentimentFeature struct {
	Document bool `json:"document"`
}

// Analyze classifies text with exactly one upstream call and never returns an error:
// every failure is logged once and reported as a failed result.
func (c *Client) Analyze(ctx context.Context, text string) entity.SentimentResult {
	start := time.Now()

	ctx, span := tracing.GetTracer().Start(ctx, "nlu.Analyze", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	logger := logging.WithRequestID(ctx, c.logger)
	logger.Debug("analyzing sentiment",
		slog.Int("text_length", len(text)),
		slog.String("text", text))

	var result entity.SentimentResult
	sentiment, err := c.analyze(ctx, text)
	if err != nil {
		var aerr *AnalysisError
		if !errors.As(err, &aerr) {
			aerr = newError(entity.FailureUnknown, err)
		}
		c.logFailure(logger, aerr, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, aerr.Category.String())
		if aerr.StatusCode != 0 {
			span.SetAttributes(attribute.Int("http.status_code", aerr.StatusCode))
		}
		result = entity.Failed(aerr.Category)
	} else {
		result = entity.Succeeded(sentiment.Label, sentiment.Score)
		span.SetAttributes(
			attribute.String("sentiment.label", sentiment.Label),
			attribute.Float64("sentiment.score", sentiment.Score),
		)
	}

	duration := time.Since(start)
	span.SetAttributes(attribute.String("sentiment.outcome", result.Outcome()))
	c.metrics.RecordOutcome(result.Outcome())
	c.metrics.RecordDuration(duration)

	if result.OK() {
		logger.Debug("sentiment analysis succeeded",
			slog.String("label", sentiment.Label),
			slog.Float64("score", sentiment.Score),
			slog.Duration("duration", duration))
	}

	return result
}

func (c *Client) analyze(ctx context.Context, text string) (entity.Sentiment, error) {
	if missing := c.cfg.MissingCredentials(); len(missing) > 0 {
		return entity.Sentiment{}, newError(entity.FailureConfiguration,
			fmt.Errorf("missing %s", strings.Join(missing, ", ")))
	}

	payload, err := json.Marshal(analyzeRequest{
		Text:     text,
		Features: analyzeFeatures{Sentiment: sentimentFeature{Document: true}},
	})
	if err != nil {
		return entity.Sentiment{}, newError(entity.FailureUnknown, fmt.Errorf("marshal request: %w", err))
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return entity.Sentiment{}, newError(entity.FailureConfiguration, fmt.Errorf("create http request: %w", err))
	}
	req.SetBasicAuth(apiKeyUser, c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entity.Sentiment{}, newError(classifyTransportError(err), fmt.Errorf("execute http request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return entity.Sentiment{}, newError(classifyTransportError(err), fmt.Errorf("read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return entity.Sentiment{}, &AnalysisError{
			Category:   entity.FailureHTTPStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s: %s", resp.Status, truncate(body, maxLoggedBodyBytes)),
		}
	}

	sentiment, err := parseSentiment(body)
	if err != nil {
		return entity.Sentiment{}, newError(entity.FailureParse, err)
	}
	return sentiment, nil
}

// parseSentiment extracts the document sentiment from an analyze response.
// The score is returned as |raw| * 100.
func parseSentiment(body []byte) (entity.Sentiment, error) {
	if !gjson.ValidBytes(body) {
		return entity.Sentiment{}, fmt.Errorf("response is not valid JSON: %s", truncate(body, maxLoggedBodyBytes))
	}

	label := gjson.GetBytes(body, labelPath)
	if label.Type != gjson.String || strings.TrimSpace(label.Str) == "" {
		return entity.Sentiment{}, fmt.Errorf("%s missing or not a non-empty string", labelPath)
	}

	score := gjson.GetBytes(body, scorePath)
	if score.Type != gjson.Number {
		return entity.Sentiment{}, fmt.Errorf("%s missing or not a number", scorePath)
	}
	raw := score.Num
	if math.IsNaN(raw) || raw < -1 || raw > 1 {
		return entity.Sentiment{}, fmt.Errorf("%s %v outside [-1, 1]", scorePath, raw)
	}

	return entity.Sentiment{Label: label.Str, Score: math.Abs(raw) * 100}, nil
}

func (c *Client) logFailure(logger *slog.Logger, aerr *AnalysisError, duration time.Duration) {
	attrs := []any{
		slog.String("category", aerr.Category.String()),
		slog.Any("error", aerr.Err),
		slog.Duration("duration", duration),
	}
	if aerr.StatusCode != 0 {
		attrs = append(attrs, slog.Int("status_code", aerr.StatusCode))
	}

	switch aerr.Category {
	case entity.FailureConfiguration:
		logger.Warn("sentiment service not configured", attrs...)
	case entity.FailureTimeout:
		attrs = append(attrs, slog.Duration("timeout", c.cfg.Timeout))
		logger.Error("sentiment service timeout", attrs...)
	default:
		logger.Error("sentiment analysis failed", attrs...)
	}
}

// classifyTransportError separates deadline failures from all other transport errors.
func classifyTransportError(err error) entity.FailureCategory {
	if errors.Is(err, context.DeadlineExceeded) {
		return entity.FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return entity.FailureTimeout
	}
	return entity.FailureConnection
}

// buildEndpoint appends the version query parameter, keeping any query already present.
func buildEndpoint(endpoint, version string) string {
	if endpoint == "" {
		return ""
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	q := u.Query()
	q.Set("version", version)
	u.RawQuery = q.Encode()
	return u.String()
}

func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "...(truncated)"
}
