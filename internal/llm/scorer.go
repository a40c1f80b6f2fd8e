package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/intentia/internal/model"
)

// Scorer assigns an independent confidence to every vocabulary label for one
// utterance. Implementations must return labels in vocabulary order.
type Scorer interface {
	// Name returns the provider name
	Name() string

	// Score classifies text against the vocabulary
	Score(ctx context.Context, text string, vocabulary []string) ([]model.ClassificationLabel, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds scorer provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "zeroshot"
	Provider string

	// Model name (provider-specific, empty picks the provider default)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxRetries bounds retries of transient failures
	MaxRetries int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:   "openai",
		Timeout:    30,
		MaxRetries: 2,
	}
}

// ConfigFromModel converts model.ScorerConfig to llm.Config
func ConfigFromModel(c model.ScorerConfig) Config {
	return Config{
		Provider:   c.Provider,
		Model:      c.Model,
		APIKey:     c.APIKey,
		BaseURL:    c.BaseURL,
		Timeout:    c.Timeout,
		MaxRetries: c.MaxRetries,
		HTTPProxy:  c.HTTPProxy,
		HTTPSProxy: c.HTTPSProxy,
		NoProxy:    c.NoProxy,
	}
}

const systemPrompt = "You are a multi-label classifier for a home-automation voice assistant. You answer with JSON only."

// BuildPrompt constructs the classification prompt for chat-style providers
func BuildPrompt(text string, vocabulary []string) string {
	var b strings.Builder

	b.WriteString("Score how well each label describes the utterance below. ")
	b.WriteString("Labels are independent: several may apply at once, so do not normalize.\n\n")
	b.WriteString("Labels name an intent type (command or question), an action, a device or a room.\n\n")
	b.WriteString("Labels:\n")
	for _, label := range vocabulary {
		fmt.Fprintf(&b, "- %s\n", label)
	}
	fmt.Fprintf(&b, "\nUtterance: %q\n\n", text)
	b.WriteString(`Respond with {"scores": {"<label>": <number between 0 and 1>, ...}} and include every label exactly as written.`)

	return b.String()
}

// ParseScores decodes a model reply into labels in vocabulary order.
// It accepts {"scores": {...}} or a flat object, tolerates code fences and
// matches keys case-insensitively. Missing labels score 0; scores are
// clamped to [0, 1].
func ParseScores(content string, vocabulary []string) ([]model.ClassificationLabel, error) {
	body := extractJSONObject(content)
	if body == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal scores: %w", err)
	}

	if nested, ok := raw["scores"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(nested, &inner); err == nil {
			raw = inner
		}
	}

	scores := make(map[string]float64, len(raw))
	for k, v := range raw {
		var f float64
		if err := json.Unmarshal(v, &f); err != nil {
			continue
		}
		scores[strings.ToLower(strings.TrimSpace(k))] = f
	}

	return orderedLabels(vocabulary, scores), nil
}

// orderedLabels emits one label per vocabulary entry using scores keyed by
// lowercase label text
func orderedLabels(vocabulary []string, scores map[string]float64) []model.ClassificationLabel {
	labels := make([]model.ClassificationLabel, 0, len(vocabulary))
	for _, label := range vocabulary {
		labels = append(labels, model.ClassificationLabel{
			Text:  label,
			Score: clamp(scores[strings.ToLower(label)]),
		})
	}
	return labels
}

func extractJSONObject(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return ""
	}
	return s[start : end+1]
}

func clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
