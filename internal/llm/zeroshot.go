package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/intentia/internal/logging"
	"github.com/ppiankov/intentia/internal/model"
)

const zeroShotBaseURL = "https://api-inference.huggingface.co/models/"

const defaultZeroShotModel = "facebook/bart-large-mnli"

// ZeroShotScorer calls a hosted zero-shot classification endpoint that
// follows the Hugging Face inference API shape
type ZeroShotScorer struct {
	url    string
	apiKey string
	client *http.Client
	config Config
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	MultiLabel      bool     `json:"multi_label"`
}

type zeroShotResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

// zeroShotReply accepts either a single result or a one-element list
type zeroShotReply struct {
	zeroShotResponse
}

func (r *zeroShotReply) UnmarshalJSON(data []byte) error {
	var list []zeroShotResponse
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) == 0 {
			return fmt.Errorf("empty result list")
		}
		r.zeroShotResponse = list[0]
		return nil
	}
	return json.Unmarshal(data, &r.zeroShotResponse)
}

// NewZeroShotScorer creates a new zero-shot scorer. BaseURL overrides the
// full endpoint; otherwise Model selects the hosted model.
func NewZeroShotScorer(config Config) (*ZeroShotScorer, error) {
	url := config.BaseURL
	if url == "" {
		modelName := config.Model
		if modelName == "" {
			modelName = defaultZeroShotModel
		}
		url = zeroShotBaseURL + modelName
	}

	return &ZeroShotScorer{
		url:    strings.TrimSuffix(url, "/"),
		apiKey: config.APIKey,
		client: newHTTPClient(config, 30*time.Second),
		config: config,
	}, nil
}

// Name returns the provider name
func (s *ZeroShotScorer) Name() string {
	return "zeroshot"
}

// IsAvailable reports whether the endpoint answers
func (s *ZeroShotScorer) IsAvailable(ctx context.Context) bool {
	req := zeroShotRequest{
		Inputs:     "turn on the light",
		Parameters: zeroShotParameters{CandidateLabels: []string{"command"}, MultiLabel: true},
	}

	var reply zeroShotReply
	if err := postJSON(ctx, s.client, s.url, s.headers(), req, &reply, 0); err != nil {
		logging.Named("llm").Warn().Err(err).Str("provider", s.Name()).Str("url", s.url).Msg("availability check failed")
		return false
	}
	return true
}

// Score classifies text against every label independently
func (s *ZeroShotScorer) Score(ctx context.Context, text string, vocabulary []string) ([]model.ClassificationLabel, error) {
	if len(vocabulary) == 0 {
		return []model.ClassificationLabel{}, nil
	}

	req := zeroShotRequest{
		Inputs: text,
		Parameters: zeroShotParameters{
			CandidateLabels: vocabulary,
			MultiLabel:      true,
		},
	}

	var reply zeroShotReply
	if err := postJSON(ctx, s.client, s.url, s.headers(), req, &reply, s.config.MaxRetries); err != nil {
		return nil, fmt.Errorf("zero-shot API error: %w", err)
	}

	if len(reply.Labels) != len(reply.Scores) {
		return nil, fmt.Errorf("zero-shot response has %d labels and %d scores", len(reply.Labels), len(reply.Scores))
	}

	scores := make(map[string]float64, len(reply.Labels))
	for i, label := range reply.Labels {
		scores[strings.ToLower(label)] = reply.Scores[i]
	}

	return orderedLabels(vocabulary, scores), nil
}

func (s *ZeroShotScorer) headers() map[string]string {
	if s.apiKey == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + s.apiKey}
}
