package pipeline

import (
	"fmt"

	"github.com/ppiankov/intentia/internal/cache"
	"github.com/ppiankov/intentia/internal/capability"
	"github.com/ppiankov/intentia/internal/llm"
	"github.com/ppiankov/intentia/internal/logging"
	"github.com/ppiankov/intentia/internal/model"
	"github.com/ppiankov/intentia/internal/resolve"
	"github.com/ppiankov/intentia/internal/worker"
)

// LoadRegistry loads the capability definition named by cfg and logs any
// skipped entries. A *capability.ConfigError is fatal for the caller.
func LoadRegistry(cfg model.CapabilitiesConfig) (*capability.Registry, error) {
	m, err := capability.LoadFile(cfg.Path, capability.Format(cfg.Format))
	if err != nil {
		return nil, err
	}

	log := logging.Named("capability")
	for _, w := range m.Warnings {
		log.Warn().Str("path", cfg.Path).Msg(w)
	}
	log.Info().
		Str("path", cfg.Path).
		Int("locations", len(m.Locations())).
		Int("commands", m.Len()).
		Msg("capabilities loaded")

	return capability.NewRegistry(m), nil
}

// NewScorer builds the configured scorer wrapped with rate limiting and
// caching. Cache hits do not consume rate-limit tokens.
func NewScorer(cfg *model.Config) (llm.Scorer, error) {
	scorer, err := llm.NewScorer(llm.ConfigFromModel(cfg.Scorer))
	if err != nil {
		return nil, fmt.Errorf("create scorer: %w", err)
	}

	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	scorer = llm.WithRateLimit(scorer, limiter)

	// ttl 0 lets each cache layer apply its own expiry
	return llm.WithCache(scorer, cache.New(cfg.Cache), 0), nil
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	registry, err := LoadRegistry(cfg.Capabilities)
	if err != nil {
		return nil, err
	}

	scorer, err := NewScorer(cfg)
	if err != nil {
		return nil, err
	}

	return New(registry, scorer, resolve.OptionsFromModel(cfg.Resolver)), nil
}
