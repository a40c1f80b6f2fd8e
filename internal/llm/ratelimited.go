package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/intentia/internal/model"
)

// Waiter blocks until a call for key may proceed
type Waiter interface {
	Wait(ctx context.Context, key string) error
}

// RateLimitedScorer throttles calls per provider name
type RateLimitedScorer struct {
	next    Scorer
	limiter Waiter
}

// WithRateLimit wraps next with limiter. A nil limiter returns next unchanged.
func WithRateLimit(next Scorer, limiter Waiter) Scorer {
	if limiter == nil {
		return next
	}
	return &RateLimitedScorer{next: next, limiter: limiter}
}

// Name returns the wrapped provider name
func (s *RateLimitedScorer) Name() string { return s.next.Name() }

// IsAvailable delegates to the wrapped scorer
func (s *RateLimitedScorer) IsAvailable(ctx context.Context) bool { return s.next.IsAvailable(ctx) }

// Score waits for the provider's bucket and then scores
func (s *RateLimitedScorer) Score(ctx context.Context, text string, vocabulary []string) ([]model.ClassificationLabel, error) {
	if err := s.limiter.Wait(ctx, s.next.Name()); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	return s.next.Score(ctx, text, vocabulary)
}
