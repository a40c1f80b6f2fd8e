package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/intentia/internal/logging"
	"github.com/ppiankov/intentia/internal/model"
)

// OpenAIScorer scores labels with OpenAI chat completions in JSON mode
type OpenAIScorer struct {
	client *openai.Client
	config Config
}

// NewOpenAIScorer creates a new OpenAI scorer
func NewOpenAIScorer(config Config) (*OpenAIScorer, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	clientConfig.HTTPClient = newHTTPClient(config, 30*time.Second)

	return &OpenAIScorer{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (s *OpenAIScorer) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (s *OpenAIScorer) IsAvailable(ctx context.Context) bool {
	if _, err := s.client.ListModels(ctx); err != nil {
		logging.Named("llm").Warn().Err(err).Str("provider", s.Name()).Msg("availability check failed")
		return false
	}
	return true
}

// Score classifies text with a single chat completion
func (s *OpenAIScorer) Score(ctx context.Context, text string, vocabulary []string) ([]model.ClassificationLabel, error) {
	modelName := s.config.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	req := openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(text, vocabulary)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0,
	}

	var resp openai.ChatCompletionResponse
	err := retry(ctx, s.config.MaxRetries, openAITemporary, func() error {
		var err error
		resp, err = s.client.CreateChatCompletion(ctx, req)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return ParseScores(strings.TrimSpace(resp.Choices[0].Message.Content), vocabulary)
}

func openAITemporary(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= 500
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
