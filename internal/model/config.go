package model

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all Intentia configuration
type Config struct {
	Capabilities CapabilitiesConfig `yaml:"capabilities" mapstructure:"capabilities"`
	Resolver     ResolverConfig     `yaml:"resolver" mapstructure:"resolver"`
	Scorer       ScorerConfig       `yaml:"scorer" mapstructure:"scorer"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	RateLimiting RateLimitConfig    `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
}

// CapabilitiesConfig locates the capability definition
type CapabilitiesConfig struct {
	Path   string `yaml:"path" mapstructure:"path" validate:"required"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=auto indent yaml"` // auto picks by file extension
}

// ResolverConfig tunes the acceptance policy
type ResolverConfig struct {
	Threshold         float64 `yaml:"threshold" mapstructure:"threshold" validate:"gte=0,lte=1"`
	QuestionThreshold float64 `yaml:"question_threshold" mapstructure:"question_threshold" validate:"gte=0,lte=1"`
	StrictSlots       bool    `yaml:"strict_slots" mapstructure:"strict_slots"` // reject slots that never saw a candidate
}

// ScorerConfig selects and configures the external classifier
type ScorerConfig struct {
	Provider   string `yaml:"provider" mapstructure:"provider" validate:"oneof=openai anthropic claude ollama zeroshot huggingface hf"`
	Model      string `yaml:"model" mapstructure:"model"`
	APIKey     string `yaml:"-" mapstructure:"-"` // environment only
	BaseURL    string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout    int    `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`                // seconds
	MaxRetries int    `yaml:"max_retries" mapstructure:"max_retries" validate:"gte=0,lte=10"` // 0 disables retries
	HTTPProxy  string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig controls caching of scored labels
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// RateLimitConfig bounds calls to the scorer
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second" validate:"gte=0"` // 0 disables
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size" validate:"gte=0"`
}

// ConcurrencyConfig sizes the batch worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers" validate:"gte=1"`
}

// LogConfig configures the root logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=console json"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Capabilities: CapabilitiesConfig{
			Path:   "capabilities.txt",
			Format: "auto",
		},
		Resolver: ResolverConfig{
			Threshold:         0.85,
			QuestionThreshold: 0.85,
		},
		Scorer: ScorerConfig{
			Provider:   "openai",
			Model:      "", // provider default
			Timeout:    30,
			MaxRetries: 2,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".intentia-cache",
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         4,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration for out-of-range values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
