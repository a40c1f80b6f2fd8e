package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/intentia/internal/logging"
	"github.com/ppiankov/intentia/internal/model"
)

const defaultAnthropicModel = "claude-3-5-haiku-20241022"

// AnthropicScorer scores labels with the Anthropic Messages API
type AnthropicScorer struct {
	apiKey  string
	baseURL string
	client  *http.Client
	config  Config
}

// Anthropic API structures
type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	System      string             `json:"system,omitempty"`
	Temperature float64            `json:"temperature"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	ID         string             `json:"id"`
	Content    []anthropicContent `json:"content"`
	Model      string             `json:"model"`
	StopReason string             `json:"stop_reason"`
}

// NewAnthropicScorer creates a new Anthropic scorer
func NewAnthropicScorer(config Config) (*AnthropicScorer, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}

	return &AnthropicScorer{
		apiKey:  config.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  newHTTPClient(config, 30*time.Second),
		config:  config,
	}, nil
}

// Name returns the provider name
func (s *AnthropicScorer) Name() string {
	return "anthropic"
}

// IsAvailable checks if the provider is properly configured
func (s *AnthropicScorer) IsAvailable(ctx context.Context) bool {
	req := anthropicRequest{
		Model:     s.model(),
		MaxTokens: 10,
		Messages:  []anthropicMessage{{Role: "user", Content: "Hi"}},
	}

	var resp anthropicResponse
	if err := postJSON(ctx, s.client, s.baseURL+"/v1/messages", s.headers(), req, &resp, 0); err != nil {
		logging.Named("llm").Warn().Err(err).Str("provider", s.Name()).Msg("availability check failed")
		return false
	}
	return true
}

// Score classifies text with a single message exchange
func (s *AnthropicScorer) Score(ctx context.Context, text string, vocabulary []string) ([]model.ClassificationLabel, error) {
	req := anthropicRequest{
		Model:     s.model(),
		MaxTokens: 64 + 16*len(vocabulary),
		System:    systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: BuildPrompt(text, vocabulary)},
		},
	}

	var resp anthropicResponse
	if err := postJSON(ctx, s.client, s.baseURL+"/v1/messages", s.headers(), req, &resp, s.config.MaxRetries); err != nil {
		return nil, fmt.Errorf("Anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no content in Anthropic response")
	}

	return ParseScores(resp.Content[0].Text, vocabulary)
}

func (s *AnthropicScorer) model() string {
	if s.config.Model != "" {
		return s.config.Model
	}
	return defaultAnthropicModel
}

func (s *AnthropicScorer) headers() map[string]string {
	return map[string]string{
		"x-api-key":         s.apiKey,
		"anthropic-version": "2023-06-01",
	}
}
