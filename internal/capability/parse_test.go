package capability

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/ppiankov/intentia/internal/model"
)

const spacedDefinition = `# household capabilities
version: 2
commands:
    "kitchen":
        switch:
            - light
            - teapot,
        gradient:
            - window blinds
    hall:
        switch:
            - light
        dimmer:
            - light
        switch:
            - fridge
other:
    kitchen:
        switch:
            - ventilator
`

const tabbedDefinition = "commands:\n" +
	"\t\"kitchen\":\n" +
	"\t\tswitch:\n" +
	"\t\t\t- light\n" +
	"\t\t\t- teapot,\n" +
	"\t\tgradient:\n" +
	"\t\t\t- window blinds\n" +
	"\thall:\n" +
	"\t\tswitch:\n" +
	"\t\t\t- light\n" +
	"\t\tdimmer:\n" +
	"\t\t\t- light\n" +
	"\t\tswitch:\n" +
	"\t\t\t- fridge\n"

func wantHousehold() []model.Command {
	return []model.Command{
		model.NewCommand("kitchen", model.KindAction(model.ActionKindSwitch), model.SubjectLight),
		model.NewCommand("kitchen", model.KindAction(model.ActionKindSwitch), model.SubjectTeapot),
		model.NewCommand("kitchen", model.KindAction(model.ActionKindGradient), model.SubjectWindowBlinds),
		model.NewCommand("hall", model.KindAction(model.ActionKindSwitch), model.SubjectLight),
	}
}

func assertCommands(t *testing.T, got, want []model.Command) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d commands %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func assertLocations(t *testing.T, got []model.Location, want ...model.Location) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("locations = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("location[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParse_Spaces(t *testing.T) {
	m, err := Parse(strings.NewReader(spacedDefinition))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	assertCommands(t, m.Commands(), wantHousehold())
	assertLocations(t, m.Locations(), "kitchen", "hall")

	if len(m.Warnings) != 2 {
		t.Errorf("expected 2 warnings (dimmer, fridge), got %v", m.Warnings)
	}
}

func TestParse_TabsMatchSpaces(t *testing.T) {
	tabbed, err := Parse(strings.NewReader(tabbedDefinition))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	assertCommands(t, tabbed.Commands(), wantHousehold())
	assertLocations(t, tabbed.Locations(), "kitchen", "hall")
}

func TestParse_TwoSpaceIndent(t *testing.T) {
	def := "commands:\n  'living room':\n    gradient:\n      temperature\n"
	m, err := Parse(strings.NewReader(def))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	assertCommands(t, m.Commands(), []model.Command{
		model.NewCommand("living room", model.KindAction(model.ActionKindGradient), model.SubjectTemperature),
	})
}

func TestParse_PreservesLocationCase(t *testing.T) {
	m, err := Parse(strings.NewReader("commands:\n    Kitchen_2:\n        switch:\n            - light\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	assertLocations(t, m.Locations(), "Kitchen_2")
}

func TestParse_Termination(t *testing.T) {
	tests := []struct {
		name string
		def  string
		want int
	}{
		{
			name: "too deep",
			def:  "commands:\n    kitchen:\n        switch:\n            - light\n                - extra\n    hall:\n        switch:\n            - light\n",
			want: 1,
		},
		{
			name: "misaligned spaces",
			def:  "commands:\n    kitchen:\n        switch:\n            - light\n      hall:\n        switch:\n            - light\n",
			want: 1,
		},
		{
			name: "new top-level key",
			def:  "commands:\n    kitchen:\n        switch:\n            - light\nscenes:\n    hall:\n        switch:\n            - light\n",
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(strings.NewReader(tt.def))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if m.Len() != tt.want {
				t.Errorf("Len() = %d, want %d: %v", m.Len(), tt.want, m.Commands())
			}
		})
	}
}

func TestParse_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		def  string
	}{
		{"empty", ""},
		{"no root", "kitchen:\n    switch:\n        - light\n"},
		{"root only", "commands:\n"},
		{"subject without action", "commands:\n    kitchen:\n            - light\n"},
		{"bare dash", "commands:\n    -\n        switch:\n            - light\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(strings.NewReader(tt.def))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if m.Len() != 0 {
				t.Errorf("expected empty map, got %v", m.Commands())
			}
		})
	}
}

func TestParse_ReadError(t *testing.T) {
	_, err := Parse(iotest.ErrReader(errors.New("disk gone")))
	if err == nil {
		t.Fatal("expected read error")
	}
}

func TestParse_Idempotent(t *testing.T) {
	a, err := Parse(strings.NewReader(spacedDefinition))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	b, err := Parse(strings.NewReader(spacedDefinition))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	assertCommands(t, a.Commands(), b.Commands())
	assertLocations(t, a.Locations(), b.Locations()...)

	ra, rb := NewRegistry(a), NewRegistry(b)
	probes := []model.Command{
		model.NewCommand("kitchen", model.Switch(model.SwitchOn), model.SubjectLight),
		model.NewCommand("hall", model.Gradient(model.GradientMore), model.SubjectLight),
		model.NewCommand("attic", model.Switch(model.SwitchOff), model.SubjectLight),
	}
	for _, p := range probes {
		if ra.Supports(p) != rb.Supports(p) {
			t.Errorf("Supports(%v) differs between parses", p)
		}
	}
}

func TestCleanToken(t *testing.T) {
	tests := map[string]string{
		`- light`:        "light",
		`"kitchen":`:     "kitchen",
		`'hall',`:        "hall",
		`teapot;`:        "teapot",
		`- "bath room":`: "bath room",
		`-`:              "",
	}
	for in, want := range tests {
		if got := cleanToken(in); got != want {
			t.Errorf("cleanToken(%q) = %q, want %q", in, got, want)
		}
	}
}
