package llm

import (
	"fmt"
	"strings"
)

// NewScorer creates a scorer based on configuration
func NewScorer(config Config) (Scorer, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIScorer(config)

	case "anthropic", "claude":
		return NewAnthropicScorer(config)

	case "ollama":
		return NewOllamaScorer(config)

	case "zeroshot", "huggingface", "hf":
		return NewZeroShotScorer(config)

	case "":
		return nil, fmt.Errorf("no scorer provider configured")

	default:
		return nil, fmt.Errorf("unknown scorer provider: %s (supported: openai, anthropic|claude, ollama, zeroshot|huggingface|hf)", config.Provider)
	}
}

// APIKeyEnv names the environment variable holding a provider's key
func APIKeyEnv(provider string) string {
	switch strings.ToLower(provider) {
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic", "claude":
		return "ANTHROPIC_API_KEY"
	case "zeroshot", "huggingface", "hf":
		return "HF_API_TOKEN"
	default:
		return ""
	}
}
