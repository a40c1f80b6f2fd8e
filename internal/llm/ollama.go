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

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "llama3.1:8b"
)

// OllamaScorer scores labels with a local Ollama model in JSON format mode
type OllamaScorer struct {
	baseURL string
	client  *http.Client
	config  Config
}

// Ollama API structures
type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	System  string        `json:"system,omitempty"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaScorer creates a new Ollama scorer
func NewOllamaScorer(config Config) (*OllamaScorer, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}

	return &OllamaScorer{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		// Local models can be slow to load
		client: newHTTPClient(config, 60*time.Second),
		config: config,
	}, nil
}

// Name returns the provider name
func (s *OllamaScorer) Name() string {
	return "ollama"
}

// IsAvailable checks if Ollama is running by listing models
func (s *OllamaScorer) IsAvailable(ctx context.Context) bool {
	if err := getOK(ctx, s.client, s.baseURL+"/api/tags", nil); err != nil {
		logging.Named("llm").Warn().Err(err).Str("provider", s.Name()).Str("url", s.baseURL).Msg("availability check failed")
		return false
	}
	return true
}

// Score classifies text with a single generate call
func (s *OllamaScorer) Score(ctx context.Context, text string, vocabulary []string) ([]model.ClassificationLabel, error) {
	modelName := s.config.Model
	if modelName == "" {
		modelName = defaultOllamaModel
	}

	req := ollamaRequest{
		Model:  modelName,
		Prompt: BuildPrompt(text, vocabulary),
		Stream: false,
		System: systemPrompt,
		Format: "json",
	}

	var resp ollamaResponse
	if err := postJSON(ctx, s.client, s.baseURL+"/api/generate", nil, req, &resp, s.config.MaxRetries); err != nil {
		return nil, fmt.Errorf("ollama API error: %w", err)
	}

	return ParseScores(resp.Response, vocabulary)
}
