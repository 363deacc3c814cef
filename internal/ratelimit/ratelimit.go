// Package ratelimit provides a keyed token-bucket limiter, used to keep one
// user from spamming roll commands faster than a human would.
package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// Limiter hands out one token bucket per key.
type Limiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	buckets  map[string]*rate.Limiter
	maxKeys  int
}

// New creates a Limiter allowing limit events per second with the given
// burst per key.
func New(limit rate.Limit, burst int) *Limiter {
	return &Limiter{
		limit:   limit,
		burst:   burst,
		buckets: make(map[string]*rate.Limiter),
		maxKeys: 10000,
	}
}

// Allow reports whether the event for key may proceed now.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		// Bounded reset: a community bot sees a small set of active users,
		// so dropping all buckets at the cap is cheaper than tracking age.
		if len(l.buckets) >= l.maxKeys {
			l.buckets = make(map[string]*rate.Limiter)
		}
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[key] = b
	}
	return b.Allow()
}
