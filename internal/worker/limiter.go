package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

const defaultBurst = 5

// Limiter keeps one token bucket per key. The pipeline keys buckets by
// scorer provider so each backend is throttled independently.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

// NewLimiter creates a limiter whose buckets refill at requestsPerSecond.
// A non-positive rate disables limiting.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = defaultBurst
	}

	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	return &Limiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   limit,
		burst:   burst,
	}
}

// Wait blocks until a call for key is allowed or ctx is done
func (l *Limiter) Wait(ctx context.Context, key string) error {
	return l.bucket(key).Wait(ctx)
}

func (l *Limiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[key] = b
	}
	return b
}
