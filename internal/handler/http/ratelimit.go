package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"sentiment-analyzer/internal/handler/http/respond"
)

// Defaults for idle client eviction.
const (
	DefaultRateLimitCleanupInterval = 5 * time.Minute
	DefaultRateLimitIdleTTL         = 10 * time.Minute
)

// MessageRateLimited is the plain-text body of a 429 response.
const MessageRateLimited = "Too many requests. Please slow down."

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter keeps one token bucket per client IP. It is the only shared
// mutable state of the server and is guarded by a mutex.
type ClientRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientBucket
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

// NewClientRateLimiter creates a limiter allowing requestsPerSecond sustained
// and burst immediate requests per client.
//
//	limiter := NewClientRateLimiter(2, 10)
//	mux.Handle("GET /sentimentAnalyzer", limiter.Limit(handler))
func NewClientRateLimiter(requestsPerSecond float64, burst int) *ClientRateLimiter {
	return &ClientRateLimiter{
		clients: make(map[string]*clientBucket),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
		now:     time.Now,
	}
}

// Allow reports whether client may make a request now, consuming a token if so.
func (l *ClientRateLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.clients[client]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// Limit wraps next so that clients over their budget receive 429 with Retry-After.
func (l *ClientRateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			recordRateLimited(r.URL.Path)
			w.Header().Set("Retry-After", "1")
			respond.Text(w, http.StatusTooManyRequests, MessageRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Cleanup evicts clients idle for longer than ttl and returns how many were removed.
func (l *ClientRateLimiter) Cleanup(ttl time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-ttl)
	removed := 0
	for client, b := range l.clients {
		if b.lastSeen.Before(cutoff) {
			delete(l.clients, client)
			removed++
		}
	}
	return removed
}

// ActiveClients returns the number of clients currently tracked.
func (l *ClientRateLimiter) ActiveClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// StartRateLimitCleanup evicts idle clients every interval until ctx is canceled.
// It blocks and is meant to run in its own goroutine.
func StartRateLimitCleanup(ctx context.Context, l *ClientRateLimiter, interval, ttl time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("rate limit cleanup started",
		slog.Duration("interval", interval),
		slog.Duration("idle_ttl", ttl))

	for {
		select {
		case <-ctx.Done():
			logger.Info("rate limit cleanup stopped")
			return
		case <-ticker.C:
			removed := l.Cleanup(ttl)
			logger.Debug("rate limit cleanup completed",
				slog.Int("clients_removed", removed),
				slog.Int("active_clients", l.ActiveClients()))
		}
	}
}

// clientIP uses the TCP peer address. Forwarding headers are ignored because
// a client can set them to anything.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
