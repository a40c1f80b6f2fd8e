package model

import (
	"encoding/json"
	"fmt"
)

// ActionKind is the discriminant of an Action
type ActionKind string

const (
	ActionKindSwitch   ActionKind = "switch"
	ActionKindGradient ActionKind = "gradient"
)

// SwitchState is the value carried by a switch action
type SwitchState string

const (
	SwitchOn  SwitchState = "on"
	SwitchOff SwitchState = "off"
)

// GradientLevel is the value carried by a gradient action
type GradientLevel string

const (
	GradientMin  GradientLevel = "min"
	GradientMax  GradientLevel = "max"
	GradientMore GradientLevel = "more"
	GradientLess GradientLevel = "less"
)

// Action is a tagged union: Switch{State} or Gradient{Level}.
// Construct it with Switch or Gradient; the zero value is not a valid action.
type Action struct {
	kind  ActionKind
	state SwitchState
	level GradientLevel
}

// Switch builds a switch action
func Switch(state SwitchState) Action {
	return Action{kind: ActionKindSwitch, state: state}
}

// Gradient builds a gradient action
func Gradient(level GradientLevel) Action {
	return Action{kind: ActionKindGradient, level: level}
}

// Kind returns the action discriminant
func (a Action) Kind() ActionKind { return a.kind }

// State returns the switch state and whether the action is a switch
func (a Action) State() (SwitchState, bool) {
	return a.state, a.kind == ActionKindSwitch
}

// Level returns the gradient level and whether the action is a gradient
func (a Action) Level() (GradientLevel, bool) {
	return a.level, a.kind == ActionKindGradient
}

// SameKind reports whether both actions carry the same tag, ignoring values.
// Support checks use this; exact matching uses Equal.
func (a Action) SameKind(other Action) bool {
	return a.kind == other.kind
}

// Equal reports full structural equality
func (a Action) Equal(other Action) bool {
	return a == other
}

// IsZero reports whether the action was never constructed
func (a Action) IsZero() bool {
	return a.kind == ""
}

// Value returns the inner value as a string ("on", "more", ...)
func (a Action) Value() string {
	switch a.kind {
	case ActionKindSwitch:
		return string(a.state)
	case ActionKindGradient:
		return string(a.level)
	default:
		return ""
	}
}

func (a Action) String() string {
	if a.IsZero() {
		return "<none>"
	}
	if v := a.Value(); v != "" {
		return fmt.Sprintf("%s(%s)", a.kind, v)
	}
	return string(a.kind)
}

type actionJSON struct {
	Kind  ActionKind `json:"kind"`
	Value string     `json:"value,omitempty"`
}

// MarshalJSON renders {"kind":"switch","value":"on"}
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(actionJSON{Kind: a.kind, Value: a.Value()})
}

// UnmarshalJSON accepts the form produced by MarshalJSON
func (a *Action) UnmarshalJSON(data []byte) error {
	var raw actionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.Kind {
	case ActionKindSwitch:
		*a = Switch(SwitchState(raw.Value))
	case ActionKindGradient:
		*a = Gradient(GradientLevel(raw.Value))
	default:
		return fmt.Errorf("unknown action kind: %q", raw.Kind)
	}
	return nil
}

// ParseActionKind maps a capability-definition keyword to an ActionKind
func ParseActionKind(s string) (ActionKind, bool) {
	switch ActionKind(s) {
	case ActionKindSwitch:
		return ActionKindSwitch, true
	case ActionKindGradient:
		return ActionKindGradient, true
	default:
		return "", false
	}
}

// KindAction returns a representative action for a kind. Capability map
// entries store these since support checks ignore the value.
func KindAction(kind ActionKind) Action {
	switch kind {
	case ActionKindSwitch:
		return Action{kind: ActionKindSwitch}
	case ActionKindGradient:
		return Action{kind: ActionKindGradient}
	default:
		return Action{}
	}
}
