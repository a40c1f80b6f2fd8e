package capability

import (
	"strings"
	"testing"

	"github.com/ppiankov/intentia/internal/model"
)

func TestRegistry_Supports(t *testing.T) {
	m, err := Parse(strings.NewReader(spacedDefinition))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	r := NewRegistry(m)

	tests := []struct {
		name      string
		candidate model.Command
		want      bool
	}{
		{"switch on kitchen light", model.NewCommand("kitchen", model.Switch(model.SwitchOn), model.SubjectLight), true},
		{"switch off kitchen light", model.NewCommand("kitchen", model.Switch(model.SwitchOff), model.SubjectLight), true},
		{"open kitchen blinds", model.NewCommand("kitchen", model.Gradient(model.GradientMax), model.SubjectWindowBlinds), true},
		{"close kitchen blinds", model.NewCommand("kitchen", model.Gradient(model.GradientMin), model.SubjectWindowBlinds), true},
		{"switch kitchen blinds", model.NewCommand("kitchen", model.Switch(model.SwitchOn), model.SubjectWindowBlinds), false},
		{"hall teapot", model.NewCommand("hall", model.Switch(model.SwitchOn), model.SubjectTeapot), false},
		{"dim hall light", model.NewCommand("hall", model.Gradient(model.GradientLess), model.SubjectLight), false},
		{"unknown location", model.NewCommand("attic", model.Switch(model.SwitchOn), model.SubjectLight), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Supports(tt.candidate); got != tt.want {
				t.Errorf("Supports(%v) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

// Supports must agree with a brute-force scan for every candidate triple.
func TestRegistry_SupportsMatchesScan(t *testing.T) {
	m, err := Parse(strings.NewReader(spacedDefinition))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	r := NewRegistry(m)

	actions := []model.Action{
		model.Switch(model.SwitchOn), model.Switch(model.SwitchOff),
		model.Gradient(model.GradientMin), model.Gradient(model.GradientMax),
		model.Gradient(model.GradientMore), model.Gradient(model.GradientLess),
	}
	locations := append(m.Locations(), "attic")

	for _, loc := range locations {
		for _, a := range actions {
			for _, s := range model.Subjects() {
				c := model.NewCommand(loc, a, s)
				want := false
				for _, e := range m.Commands() {
					if e.Location == c.Location && e.Subject == c.Subject && e.Action.Kind() == c.Action.Kind() {
						want = true
					}
				}
				if got := r.Supports(c); got != want {
					t.Errorf("Supports(%v) = %v, want %v", c, got, want)
				}
			}
		}
	}
}

func TestRegistry_NilMap(t *testing.T) {
	r := NewRegistry(nil)
	if r.Supports(model.NewCommand("kitchen", model.Switch(model.SwitchOn), model.SubjectLight)) {
		t.Error("empty registry should support nothing")
	}
	if len(r.Locations()) != 0 {
		t.Errorf("Locations() = %v", r.Locations())
	}
}

func TestRegistry_LocationsAreCopies(t *testing.T) {
	m, err := Parse(strings.NewReader(spacedDefinition))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	r := NewRegistry(m)

	locs := r.Locations()
	locs[0] = "mutated"
	if r.Locations()[0] != "kitchen" {
		t.Error("Locations() exposed internal slice")
	}
}
