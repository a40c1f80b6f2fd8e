package model

import "fmt"

// Location is an opaque identifier, kept exactly as authored
type Location string

// Command is a fully populated (location, action, subject) triple.
// It is either a supported capability or a requested action.
type Command struct {
	Location Location `json:"location"`
	Action   Action   `json:"action"`
	Subject  Subject  `json:"subject"`
}

// NewCommand builds a command triple
func NewCommand(location Location, action Action, subject Subject) Command {
	return Command{Location: location, Action: action, Subject: subject}
}

// Matches is the support-check equality: location and subject exactly,
// action by kind only
func (c Command) Matches(other Command) bool {
	return c.Location == other.Location &&
		c.Subject == other.Subject &&
		c.Action.SameKind(other.Action)
}

func (c Command) String() string {
	return fmt.Sprintf("%s/%s/%s", c.Location, c.Action, c.Subject)
}
