// Package middleware wires the rate limiter into the HTTP chain.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"supplierintake/internal/platform/metrics"
	"supplierintake/pkg/platform/httputil"
	"supplierintake/pkg/platform/middleware/metadata"
)

// Limiter is what the middleware needs from the rate limit service.
type Limiter interface {
	Allow(ctx context.Context, clientID string) bool
}

// Middleware applies per-client request limiting.
type Middleware struct {
	limiter Limiter
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates the rate limiting middleware.
func New(limiter Limiter, logger *slog.Logger, m *metrics.Metrics) *Middleware {
	return &Middleware{limiter: limiter, logger: logger, metrics: m}
}

// RateLimit denies clients that exceed their submission window with a 429.
// The client key comes from the metadata middleware, so this must be mounted
// after metadata.ClientMetadata.
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		clientID := metadata.GetClientIP(ctx)

		if !m.limiter.Allow(ctx, clientID) {
			m.logger.WarnContext(ctx, "rate limit exceeded", "client", clientID)
			if m.metrics != nil {
				m.metrics.IncrementRejected("rate_limited")
			}
			httputil.WriteJSON(w, http.StatusTooManyRequests, httputil.ErrorResponse{
				Error: "Too many requests. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
