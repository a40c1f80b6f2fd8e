package llm

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ppiankov/intentia/internal/cache"
	"github.com/ppiankov/intentia/internal/logging"
	"github.com/ppiankov/intentia/internal/model"
)

// CachedScorer memoizes label scores per utterance and vocabulary
type CachedScorer struct {
	next  Scorer
	cache cache.Cache
	ttl   time.Duration
}

// WithCache wraps next with c. A nil cache returns next unchanged.
func WithCache(next Scorer, c cache.Cache, ttl time.Duration) Scorer {
	if c == nil {
		return next
	}
	return &CachedScorer{next: next, cache: c, ttl: ttl}
}

// Name returns the wrapped provider name
func (s *CachedScorer) Name() string { return s.next.Name() }

// IsAvailable delegates to the wrapped scorer
func (s *CachedScorer) IsAvailable(ctx context.Context) bool { return s.next.IsAvailable(ctx) }

// Score returns cached labels when present and otherwise scores and stores
func (s *CachedScorer) Score(ctx context.Context, text string, vocabulary []string) ([]model.ClassificationLabel, error) {
	key := cache.Key(text, vocabulary)
	log := logging.Named("llm")

	if data, ok := s.cache.Get(key); ok {
		var labels []model.ClassificationLabel
		if err := json.Unmarshal(data, &labels); err == nil {
			log.Debug().Str("key", key).Msg("score cache hit")
			return labels, nil
		}
	}

	labels, err := s.next.Score(ctx, text, vocabulary)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(labels)
	if err == nil {
		err = s.cache.Set(key, data, s.ttl)
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("score cache write failed")
	}

	return labels, nil
}
