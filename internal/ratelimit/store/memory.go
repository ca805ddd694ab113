// Package store provides the window stores behind the rate limiter: an
// in-memory sliding window for single-instance deployments and tests, and a
// Redis-backed window for deployments with more than one replica.
package store

import (
	"context"
	"sync"
	"time"
)

// InMemory implements ratelimit.WindowStore with a mutex-guarded map of
// timestamp slices. A sweep runs at most once per window and drops keys whose
// newest entry has aged out, so idle clients do not accumulate.
type InMemory struct {
	mu        sync.Mutex
	windows   map[string][]time.Time
	lastSweep time.Time
	now       func() time.Time
}

// MemoryOption configures an InMemory store.
type MemoryOption func(*InMemory)

// WithClock injects a clock, letting tests advance time deterministically.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *InMemory) { s.now = now }
}

// NewInMemory creates an empty in-memory window store.
func NewInMemory(opts ...MemoryOption) *InMemory {
	s := &InMemory{
		windows: make(map[string][]time.Time),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastSweep = s.now()
	return s
}

func (s *InMemory) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := s.now()
	cutoff := now.Add(-window)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(now, cutoff, window)

	timestamps := prune(s.windows[key], cutoff)

	if len(timestamps) >= limit {
		// Deny without recording: a blocked request must not extend the window.
		s.windows[key] = timestamps
		return false, nil
	}

	s.windows[key] = append(timestamps, now)
	return true, nil
}

// sweep evicts keys whose newest timestamp has left the window. Runs at most
// once per window duration so hot paths stay cheap. Caller holds s.mu.
func (s *InMemory) sweep(now, cutoff time.Time, window time.Duration) {
	if now.Sub(s.lastSweep) < window {
		return
	}
	s.lastSweep = now
	for key, timestamps := range s.windows {
		if len(timestamps) == 0 || !timestamps[len(timestamps)-1].After(cutoff) {
			delete(s.windows, key)
		}
	}
}

// prune drops timestamps at or before the cutoff, keeping order.
func prune(timestamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for ; i < len(timestamps); i++ {
		if timestamps[i].After(cutoff) {
			break
		}
	}
	return timestamps[i:]
}

// Len reports the number of tracked client keys. Test helper.
func (s *InMemory) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}
