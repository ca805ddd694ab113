// Package ratelimit throttles registration submissions per client identity
// using a sliding window. This is a soft, best-effort limit: a lost update
// under concurrent requests merely under-counts, and store failures never
// block a request.
package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// Defaults for the registration endpoint: five submissions per client per
// fifteen minutes.
const (
	DefaultLimit  = 5
	DefaultWindow = 15 * time.Minute
)

// WindowStore records request timestamps per key inside a trailing window.
// Allow prunes entries older than now-window, denies without recording when
// the remaining count has reached limit, and otherwise appends now.
type WindowStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// Limiter applies the configured limit to a client identity.
type Limiter struct {
	store  WindowStore
	logger *slog.Logger
	limit  int
	window time.Duration
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithLimit overrides the per-window request limit.
func WithLimit(limit int) Option {
	return func(l *Limiter) { l.limit = limit }
}

// WithWindow overrides the trailing window duration.
func WithWindow(window time.Duration) Option {
	return func(l *Limiter) { l.window = window }
}

// New creates a Limiter backed by the given window store.
func New(store WindowStore, logger *slog.Logger, opts ...Option) *Limiter {
	l := &Limiter{
		store:  store,
		logger: logger,
		limit:  DefaultLimit,
		window: DefaultWindow,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow reports whether the client may submit another request. Store errors
// fail open: the limiter is a throttle, not a security boundary, and a broken
// store must not take the intake endpoint down with it.
func (l *Limiter) Allow(ctx context.Context, clientID string) bool {
	allowed, err := l.store.Allow(ctx, clientID, l.limit, l.window)
	if err != nil {
		l.logger.ErrorContext(ctx, "rate limit check failed, allowing request",
			"error", err.Error(),
		)
		return true
	}
	return allowed
}
