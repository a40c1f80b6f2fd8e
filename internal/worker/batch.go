package worker

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/intentia/internal/model"
	"github.com/ppiankov/intentia/internal/util"
)

// Processor resolves a single utterance into exactly one outcome
type Processor interface {
	Process(ctx context.Context, utterance string) model.Outcome
}

// UtteranceJob resolves one utterance
type UtteranceJob struct {
	Utterance string
	Processor Processor
}

// Execute executes the job
func (j *UtteranceJob) Execute(ctx context.Context) Result {
	return &OutcomeResult{Outcome: j.Processor.Process(ctx, j.Utterance)}
}

// OutcomeResult wraps an outcome as a pool result
type OutcomeResult struct {
	Outcome model.Outcome
}

// GetError returns the failure as a *model.ResolutionError, or nil
func (r *OutcomeResult) GetError() error {
	if r.Outcome.Failure == nil {
		return nil
	}
	return &model.ResolutionError{Reason: *r.Outcome.Failure, Confidence: r.Outcome.Confidence}
}

// BatchProcessor resolves many utterances concurrently. Outcomes come back
// in input order.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessUtterances resolves all utterances. If ctx ends early the pool is
// shut down: utterances not yet started are dropped, in-flight ones finish,
// and their outcomes are returned in input order along with ctx's error.
func (b *BatchProcessor) ProcessUtterances(ctx context.Context, utterances []string) ([]model.Outcome, error) {
	if len(utterances) == 0 {
		return []model.Outcome{}, nil
	}

	pool := NewPool(b.concurrency)
	pool.Start()
	stop := context.AfterFunc(ctx, pool.Shutdown)
	defer stop()

	for _, u := range utterances {
		if ctx.Err() != nil {
			break
		}
		if !pool.Submit(&UtteranceJob{Utterance: u, Processor: b.processor}) {
			break
		}
	}

	results := pool.Wait()

	outcomes := make([]model.Outcome, len(results))
	for i, r := range results {
		outcomes[i] = r.(*OutcomeResult).Outcome
	}

	if len(outcomes) < len(utterances) {
		return outcomes, ctx.Err()
	}
	return outcomes, nil
}

// ProcessFile reads utterances from a file and resolves them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]model.Outcome, error) {
	utterances, err := ReadUtterancesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read utterances: %w", err)
	}

	return b.ProcessUtterances(ctx, utterances)
}

// ReadUtterancesFromFile reads one utterance per line, skipping blank lines
// and '#' comments. Repeated utterances are kept: each yields an outcome.
func ReadUtterancesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var utterances []string

	err = util.EachLine(file, func(line string) error {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			utterances = append(utterances, line)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return utterances, nil
}
