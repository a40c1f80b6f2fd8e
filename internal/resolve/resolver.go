// Package resolve decomposes scored labels into an Intent.
//
// One pass over the labels fills three slots (action, subject, location),
// each keeping the first label to reach its highest score. A "question"
// label above the question threshold short-circuits to a Question intent.
// Otherwise confidence is the minimum of the three slot scores, and the
// candidate command is accepted only if that minimum clears the threshold
// and the registry supports the triple.
package resolve

import (
	"github.com/ppiankov/intentia/internal/model"
	"github.com/ppiankov/intentia/internal/taxonomy"
)

// DefaultThreshold is the acceptance threshold used when none is configured
const DefaultThreshold = 0.85

// Registry is the support-check surface the resolver needs
type Registry interface {
	Supports(candidate model.Command) bool
	Locations() []model.Location
}

// Options tunes the acceptance policy
type Options struct {
	// Threshold is the minimum composite confidence for a command
	Threshold float64

	// QuestionThreshold is the score a "question" label must exceed
	QuestionThreshold float64

	// StrictSlots rejects decisions where a slot never saw a candidate
	// label, instead of falling back to the label at index 0
	StrictSlots bool
}

// DefaultOptions returns the documented acceptance policy
func DefaultOptions() Options {
	return Options{
		Threshold:         DefaultThreshold,
		QuestionThreshold: DefaultThreshold,
	}
}

// OptionsFromModel converts model.ResolverConfig to Options
func OptionsFromModel(cfg model.ResolverConfig) Options {
	return Options{
		Threshold:         cfg.Threshold,
		QuestionThreshold: cfg.QuestionThreshold,
		StrictSlots:       cfg.StrictSlots,
	}
}

// Resolver turns scored labels into an Intent. It holds only read-only
// state and is safe for concurrent use.
type Resolver struct {
	registry Registry
	opts     Options
}

// New creates a resolver over the given registry
func New(registry Registry, opts Options) *Resolver {
	return &Resolver{registry: registry, opts: opts}
}

// Vocabulary returns the label set the scorer must score for one utterance:
// intent types, actions, subjects, then the registry's locations
func (r *Resolver) Vocabulary() []string {
	return taxonomy.Vocabulary(r.registry.Locations())
}

// tracker is a best-so-far slot: strict > keeps the first maximum
type tracker struct {
	score  float64
	index  int
	filled bool
}

func (t *tracker) offer(score float64, index int) {
	if score > t.score {
		t.score = score
		t.index = index
		t.filled = true
	}
}

// Decision is the raw output of slot decomposition, before validation
type Decision struct {
	// Intent is a Question, or a Command wrapping Candidate
	Intent model.Intent

	// Candidate is the decoded triple; zero for questions
	Candidate model.Command

	// Confidence is the question score or the weakest slot score
	Confidence float64

	// Complete reports whether every slot received a qualifying label
	Complete bool
}

// Decompose scans the labels once and fills the slots. It never fails;
// validation is left to Resolve.
func (r *Resolver) Decompose(utterance string, labels []model.ClassificationLabel) Decision {
	var action, subject, location tracker

	for i, l := range labels {
		switch {
		case taxonomy.IntentTypes.Known(l.Text):
			if taxonomy.IntentTypes.Decode(l.Text) == model.IntentQuestion && l.Score > r.opts.QuestionThreshold {
				return Decision{
					Intent:     model.QuestionIntent(utterance),
					Confidence: l.Score,
					Complete:   true,
				}
			}
		case taxonomy.Actions.Known(l.Text):
			action.offer(l.Score, i)
		case taxonomy.Subjects.Known(l.Text):
			subject.offer(l.Score, i)
		default:
			location.offer(l.Score, i)
		}
	}

	confidence := min(action.score, subject.score, location.score)
	if len(labels) == 0 {
		return Decision{Confidence: confidence}
	}

	candidate := model.NewCommand(
		model.Location(labels[location.index].Text),
		taxonomy.Actions.Decode(labels[action.index].Text),
		taxonomy.Subjects.Decode(labels[subject.index].Text),
	)

	return Decision{
		Intent:     model.CommandIntent(candidate),
		Candidate:  candidate,
		Confidence: confidence,
		Complete:   action.filled && subject.filled && location.filled,
	}
}

// Resolve decomposes the labels and validates the result. On failure the
// error is a *model.ResolutionError carrying the reason and confidence.
func (r *Resolver) Resolve(utterance string, labels []model.ClassificationLabel) (model.Intent, float64, error) {
	d := r.Decompose(utterance, labels)

	if d.Intent.IsQuestion() {
		return d.Intent, d.Confidence, nil
	}

	if len(labels) == 0 || d.Confidence < r.opts.Threshold || (r.opts.StrictSlots && !d.Complete) {
		return model.Intent{}, d.Confidence, &model.ResolutionError{
			Reason:     model.FailureUnrecognizedInstruction,
			Confidence: d.Confidence,
		}
	}

	if !r.registry.Supports(d.Candidate) {
		return model.Intent{}, d.Confidence, &model.ResolutionError{
			Reason:     model.FailureUnsupportedInstruction,
			Confidence: d.Confidence,
		}
	}

	return d.Intent, d.Confidence, nil
}
