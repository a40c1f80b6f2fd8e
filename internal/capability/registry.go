package capability

import "github.com/ppiankov/intentia/internal/model"

// Registry answers support queries over a loaded Map. It has no mutating
// methods and is safe for concurrent reads.
type Registry struct {
	m *Map
}

// NewRegistry wraps a loaded map. A nil map behaves as empty.
func NewRegistry(m *Map) *Registry {
	if m == nil {
		m = &Map{}
	}
	return &Registry{m: m}
}

// Supports reports whether some entry has the candidate's location and
// subject and an action of the same kind
func (r *Registry) Supports(candidate model.Command) bool {
	for _, c := range r.m.commands {
		if c.Matches(candidate) {
			return true
		}
	}
	return false
}

// Locations returns the location vocabulary in first-seen order
func (r *Registry) Locations() []model.Location {
	return r.m.Locations()
}

// Commands returns every supported command in definition order
func (r *Registry) Commands() []model.Command {
	return r.m.Commands()
}
