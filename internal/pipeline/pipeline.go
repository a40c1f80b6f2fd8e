package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ppiankov/intentia/internal/llm"
	"github.com/ppiankov/intentia/internal/logging"
	"github.com/ppiankov/intentia/internal/metrics"
	"github.com/ppiankov/intentia/internal/model"
	"github.com/ppiankov/intentia/internal/resolve"
)

// Pipeline turns utterances into outcomes: scorer, then resolver
type Pipeline struct {
	resolver   *resolve.Resolver
	scorer     llm.Scorer
	vocabulary []string
	log        *zerolog.Logger
}

// New creates a pipeline over registry. The vocabulary is fixed at
// construction since the registry is read-only after startup.
func New(registry resolve.Registry, scorer llm.Scorer, opts resolve.Options) *Pipeline {
	r := resolve.New(registry, opts)

	return &Pipeline{
		resolver:   r,
		scorer:     scorer,
		vocabulary: r.Vocabulary(),
		log:        logging.Named("pipeline"),
	}
}

// Vocabulary returns the labels sent to the scorer with every utterance
func (p *Pipeline) Vocabulary() []string {
	out := make([]string, len(p.vocabulary))
	copy(out, p.vocabulary)
	return out
}

// CheckScorer returns an error if the scorer backend does not answer
func (p *Pipeline) CheckScorer(ctx context.Context) error {
	if !p.scorer.IsAvailable(ctx) {
		return fmt.Errorf("scorer %s is not available", p.scorer.Name())
	}
	return nil
}

// Process resolves one utterance. It always returns exactly one outcome;
// scorer failures become FailureUnknown. The scorer call is not cancelled
// by ctx.
func (p *Pipeline) Process(ctx context.Context, utterance string) model.Outcome {
	start := time.Now()
	metrics.UtteranceReceived()

	outcome := p.resolve(ctx, utterance)
	metrics.Record(outcome)

	event := p.log.Debug().
		Str("utterance", utterance).
		Float64("confidence", outcome.Confidence).
		Dur("duration", time.Since(start))
	if outcome.Failure != nil {
		event = event.Str("failure", outcome.Failure.String())
	} else {
		event = event.Str("intent", outcome.Intent.String())
	}
	event.Msg("utterance resolved")

	return outcome
}

func (p *Pipeline) resolve(ctx context.Context, utterance string) model.Outcome {
	labels, err := p.scorer.Score(context.WithoutCancel(ctx), utterance, p.vocabulary)
	if err != nil {
		p.log.Warn().Err(err).Str("scorer", p.scorer.Name()).Str("utterance", utterance).Msg("scorer failed")
		return model.Failed(utterance, model.FailureUnknown, 0)
	}

	intent, confidence, err := p.resolver.Resolve(utterance, labels)
	if err != nil {
		return model.Failed(utterance, model.ReasonOf(err), confidence)
	}
	return model.Succeeded(utterance, intent, confidence)
}

// Run is the resolver worker: it consumes in strictly sequentially and
// sends one outcome per utterance to out, in arrival order. ctx is only
// observed between utterances. Run returns nil when in is closed and
// ctx.Err() on cancellation; it never closes out.
func (p *Pipeline) Run(ctx context.Context, in <-chan string, out chan<- model.Outcome) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case utterance, ok := <-in:
			if !ok {
				return nil
			}
			out <- p.Process(ctx, utterance)
		}
	}
}
