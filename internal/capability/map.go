// Package capability loads the human-authored definition of supported
// (location, action, subject) combinations and answers support queries.
//
// Two source formats share the same four-level semantics
// (root "commands" / location / action keyword / subject keyword):
//
//	commands:
//	    kitchen:
//	        switch:
//	            - light
//	            - teapot
//	        gradient:
//	            - window blinds
//
// The legacy indentation format is read by Parse, the YAML format by
// ParseYAML. Both skip unknown action and subject tokens and record a
// warning instead of failing.
package capability

import "github.com/ppiankov/intentia/internal/model"

// Map is the loaded set of supported commands plus the distinct locations
// in first-seen order. A Map is never mutated after loading.
type Map struct {
	commands  []model.Command
	locations []model.Location

	// Warnings lists tokens that were skipped while parsing
	Warnings []string
}

// builder accumulates a Map during parsing
type builder struct {
	m    Map
	seen map[model.Location]bool
}

func newBuilder() *builder {
	return &builder{seen: make(map[model.Location]bool)}
}

func (b *builder) location(loc model.Location) {
	if b.seen[loc] {
		return
	}
	b.seen[loc] = true
	b.m.locations = append(b.m.locations, loc)
}

func (b *builder) command(loc model.Location, kind model.ActionKind, subject model.Subject) {
	b.location(loc)
	b.m.commands = append(b.m.commands, model.NewCommand(loc, model.KindAction(kind), subject))
}

func (b *builder) warn(msg string) {
	b.m.Warnings = append(b.m.Warnings, msg)
}

func (b *builder) build() *Map {
	m := b.m
	return &m
}

// Commands returns a copy of the supported commands in definition order
func (m *Map) Commands() []model.Command {
	out := make([]model.Command, len(m.commands))
	copy(out, m.commands)
	return out
}

// Locations returns a copy of the distinct locations in first-seen order
func (m *Map) Locations() []model.Location {
	out := make([]model.Location, len(m.locations))
	copy(out, m.locations)
	return out
}

// Len returns the number of supported commands
func (m *Map) Len() int {
	return len(m.commands)
}
