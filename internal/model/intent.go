package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// IntentType classifies what the speaker wants
type IntentType string

const (
	IntentCommand  IntentType = "command"
	IntentQuestion IntentType = "question"
)

// Intent is a variant: a structured Command or an open Question.
// Exactly one of Command or Question is meaningful, selected by Type.
type Intent struct {
	Type     IntentType `json:"type"`
	Command  *Command   `json:"command,omitempty"`
	Question string     `json:"question,omitempty"`
}

// CommandIntent wraps a validated command
func CommandIntent(c Command) Intent {
	return Intent{Type: IntentCommand, Command: &c}
}

// QuestionIntent wraps the original utterance of a question
func QuestionIntent(utterance string) Intent {
	return Intent{Type: IntentQuestion, Question: utterance}
}

// IsCommand reports whether the intent carries a command
func (i Intent) IsCommand() bool { return i.Type == IntentCommand && i.Command != nil }

// IsQuestion reports whether the intent is a question
func (i Intent) IsQuestion() bool { return i.Type == IntentQuestion }

func (i Intent) String() string {
	switch {
	case i.IsCommand():
		return "command:" + i.Command.String()
	case i.IsQuestion():
		return fmt.Sprintf("question:%q", i.Question)
	default:
		return "<none>"
	}
}

// FailureReason names why an utterance produced no intent
type FailureReason int

const (
	// FailureUnknown means the scorer invocation failed
	FailureUnknown FailureReason = iota
	// FailureUnrecognizedInstruction means confidence fell below the threshold
	FailureUnrecognizedInstruction
	// FailureUnsupportedInstruction means a well-formed triple is not in the capability map
	FailureUnsupportedInstruction
)

var failureNames = map[FailureReason]string{
	FailureUnknown:                 "unknown",
	FailureUnrecognizedInstruction: "unrecognized_instruction",
	FailureUnsupportedInstruction:  "unsupported_instruction",
}

func (r FailureReason) String() string {
	if name, ok := failureNames[r]; ok {
		return name
	}
	return fmt.Sprintf("failure(%d)", int(r))
}

// MarshalJSON renders the reason by name
func (r FailureReason) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts a reason name
func (r *FailureReason) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for reason, name := range failureNames {
		if name == s {
			*r = reason
			return nil
		}
	}
	return fmt.Errorf("unknown failure reason: %q", s)
}

// ResolutionError carries a FailureReason through an error return
type ResolutionError struct {
	Reason     FailureReason
	Confidence float64
	Err        error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason.String()
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Is matches sentinel errors by reason
func (e *ResolutionError) Is(target error) bool {
	var other *ResolutionError
	if errors.As(target, &other) {
		return other.Reason == e.Reason
	}
	return false
}

// Sentinels for errors.Is
var (
	ErrUnknown                 = &ResolutionError{Reason: FailureUnknown}
	ErrUnrecognizedInstruction = &ResolutionError{Reason: FailureUnrecognizedInstruction}
	ErrUnsupportedInstruction  = &ResolutionError{Reason: FailureUnsupportedInstruction}
)

// ReasonOf extracts the FailureReason from err. Errors that carry no reason
// count as Unknown.
func ReasonOf(err error) FailureReason {
	var re *ResolutionError
	if errors.As(err, &re) {
		return re.Reason
	}
	return FailureUnknown
}

// Outcome is the downstream message: exactly one per consumed utterance
type Outcome struct {
	Utterance  string         `json:"utterance"`
	Intent     *Intent        `json:"intent,omitempty"`
	Confidence float64        `json:"confidence"`
	Failure    *FailureReason `json:"failure,omitempty"`
}

// Succeeded builds a successful outcome
func Succeeded(utterance string, intent Intent, confidence float64) Outcome {
	return Outcome{Utterance: utterance, Intent: &intent, Confidence: confidence}
}

// Failed builds a failed outcome
func Failed(utterance string, reason FailureReason, confidence float64) Outcome {
	return Outcome{Utterance: utterance, Failure: &reason, Confidence: confidence}
}

// OK reports whether the outcome carries an intent
func (o Outcome) OK() bool { return o.Intent != nil && o.Failure == nil }
