package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"sentiment-analyzer/internal/config"
	"sentiment-analyzer/internal/infra/nlu"
	"sentiment-analyzer/internal/observability/logging"
	"sentiment-analyzer/internal/observability/tracing"
	sentimentUC "sentiment-analyzer/internal/usecase/sentiment"

	hhttp "sentiment-analyzer/internal/handler/http"
	"sentiment-analyzer/internal/handler/http/requestid"
	hsentiment "sentiment-analyzer/internal/handler/http/sentiment"
	"sentiment-analyzer/internal/handler/http/web"

	_ "sentiment-analyzer/docs" // swagger docs
)

// @title           Sentiment Analyzer API
// @version         1.0
// @description     Forwards text to IBM Watson Natural Language Understanding and renders the document sentiment.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:5000
// @BasePath  /

// traceSampleRatio samples every trace; no exporter is installed, so spans only
// feed trace IDs to the logs.
const traceSampleRatio = 1.0

func main() {
	dotenvErr := loadDotEnv()
	logger := initLogger()
	if dotenvErr != nil {
		logger.Warn("failed to load .env file", slog.Any("error", dotenvErr))
	}

	cfg := loadConfig(logger)

	shutdownTracing := tracing.Init(traceSampleRatio)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	components := setupServer(logger, cfg)
	runServer(logger, cfg, components)
}

// loadDotEnv seeds the environment from a .env file in the working directory.
// Variables already set in the environment win. A missing file is not an error.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// initLogger initializes the structured logger and installs it as the default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// loadConfig loads the configuration or exits. Missing Watson credentials are
// only a warning: the page stays up and every analysis reports a configuration failure.
func loadConfig(logger *slog.Logger) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	if missing := cfg.Sentiment.MissingCredentials(); len(missing) > 0 {
		logger.Warn("sentiment service is not configured; analyses will fail",
			slog.Any("missing", missing))
	}

	logger.Info("configuration loaded",
		slog.String("addr", cfg.Server.Addr),
		slog.String("watson_version", cfg.Sentiment.Version),
		slog.Duration("sentiment_timeout", cfg.Sentiment.Timeout),
		slog.Bool("rate_limit_enabled", cfg.RateLimit.Enabled))

	return cfg
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler     http.Handler
	RateLimiter *hhttp.ClientRateLimiter
}

// setupServer builds the sentiment pipeline, routes and middleware.
func setupServer(logger *slog.Logger, cfg *config.Config) *ServerComponents {
	client := nlu.NewClient(cfg.Sentiment, logger)
	svc := &sentimentUC.Service{Analyzer: client}

	var limiter *hhttp.ClientRateLimiter
	if cfg.RateLimit.Enabled {
		limiter = hhttp.NewClientRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		logger.Info("rate limiting initialized",
			slog.Float64("requests_per_second", cfg.RateLimit.RequestsPerSecond),
			slog.Int("burst", cfg.RateLimit.Burst))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	mux := setupRoutes(logger, cfg, svc, limiter)
	return &ServerComponents{
		Handler:     applyMiddleware(logger, mux),
		RateLimiter: limiter,
	}
}

// setupRoutes registers every route. Paths nothing else claims fall through to
// the 404 handler.
func setupRoutes(logger *slog.Logger, cfg *config.Config, svc hsentiment.Service, limiter *hhttp.ClientRateLimiter) *http.ServeMux {
	mux := http.NewServeMux()

	web.Register(mux, cfg.Server.Version, logger)

	var limit func(http.Handler) http.Handler
	if limiter != nil {
		limit = limiter.Limit
	}
	hsentiment.Register(mux, svc, limit, logger)

	mux.Handle("GET /health", &hhttp.HealthHandler{
		Sentiment:   &cfg.Sentiment,
		RateLimiter: limiter,
		Version:     cfg.Server.Version,
	})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	mux.Handle("/", hhttp.NotFound())

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID → Tracing → Logging → Metrics → Recovery → Security headers → Body limit.
// Recovery sits inside logging, metrics and tracing so a recovered panic is
// recorded as the 500 it produced.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	return hhttp.Chain(handler,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
		hhttp.Recover(logger),
		hhttp.SecurityHeaders,
		hhttp.LimitRequestBody(hhttp.MaxRequestBodyBytes),
	)
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg *config.Config, components *ServerComponents) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if components.RateLimiter != nil {
		go hhttp.StartRateLimitCleanup(ctx, components.RateLimiter,
			hhttp.DefaultRateLimitCleanupInterval, hhttp.DefaultRateLimitIdleTTL, logger)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		WriteTimeout:      cfg.Sentiment.Timeout + 10*time.Second,
		IdleTimeout:       2 * time.Minute,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("version", cfg.Server.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// Shut down first so in-flight analyses finish with their own contexts intact.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	cancel()
	logger.Info("server stopped")
}
