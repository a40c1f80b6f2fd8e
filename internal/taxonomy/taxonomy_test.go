package taxonomy

import (
	"testing"

	"github.com/ppiankov/intentia/internal/model"
)

func TestActions_Decode(t *testing.T) {
	tests := []struct {
		label string
		want  model.Action
	}{
		{"turn on", model.Switch(model.SwitchOn)},
		{"turn off", model.Switch(model.SwitchOff)},
		{"switch", model.Switch(model.SwitchOff)},
		{"increase", model.Gradient(model.GradientMore)},
		{"decrease", model.Gradient(model.GradientLess)},
		{"close", model.Gradient(model.GradientMin)},
		{"open", model.Gradient(model.GradientMax)},
		{"  Turn On ", model.Switch(model.SwitchOn)},
		{"explode", model.Switch(model.SwitchOff)},
		{"", model.Switch(model.SwitchOff)},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := Actions.Decode(tt.label); !got.Equal(tt.want) {
				t.Errorf("Decode(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestSubjects_DecodeDefault(t *testing.T) {
	if got := Subjects.Decode("teapot"); got != model.SubjectTeapot {
		t.Errorf("Decode(teapot) = %v", got)
	}
	if got := Subjects.Decode("window blinds"); got != model.SubjectWindowBlinds {
		t.Errorf("Decode(window blinds) = %v", got)
	}
	if got := Subjects.Decode("toaster"); got != model.SubjectLight {
		t.Errorf("Decode(toaster) = %v, want default light", got)
	}
}

func TestIntentTypes(t *testing.T) {
	labels := IntentTypes.Labels()
	if len(labels) != 2 || labels[0] != "command" || labels[1] != "question" {
		t.Errorf("Labels() = %v", labels)
	}
	if got := IntentTypes.Decode("question"); got != model.IntentQuestion {
		t.Errorf("Decode(question) = %v", got)
	}
	if got := IntentTypes.Decode("statement"); got != model.IntentCommand {
		t.Errorf("Decode(statement) = %v, want default command", got)
	}
}

// Every advertised label must be recognized by its own field.
func TestFields_NoOrphanedLabels(t *testing.T) {
	for _, l := range Actions.Labels() {
		if !Actions.Known(l) {
			t.Errorf("action label %q not known", l)
		}
	}
	for _, l := range Subjects.Labels() {
		if !Subjects.Known(l) {
			t.Errorf("subject label %q not known", l)
		}
		if got := Subjects.Decode(l); string(got) != l {
			t.Errorf("subject label %q decodes to %q", l, got)
		}
	}
	for _, l := range IntentTypes.Labels() {
		if !IntentTypes.Known(l) {
			t.Errorf("intent label %q not known", l)
		}
	}
}

func TestFields_Disjoint(t *testing.T) {
	for _, l := range Actions.Labels() {
		if Subjects.Known(l) || IntentTypes.Known(l) {
			t.Errorf("action label %q overlaps another field", l)
		}
	}
	for _, l := range Subjects.Labels() {
		if IntentTypes.Known(l) {
			t.Errorf("subject label %q overlaps intent types", l)
		}
	}
}

func TestVocabulary(t *testing.T) {
	vocab := Vocabulary([]model.Location{"kitchen", "hall", "kitchen", "light"})

	wantLen := len(IntentTypes.Labels()) + len(Actions.Labels()) + len(Subjects.Labels()) + 2
	if len(vocab) != wantLen {
		t.Fatalf("len(vocab) = %d, want %d: %v", len(vocab), wantLen, vocab)
	}
	if vocab[0] != "command" || vocab[1] != "question" {
		t.Errorf("vocabulary should start with intent types: %v", vocab[:2])
	}
	if vocab[len(vocab)-2] != "kitchen" || vocab[len(vocab)-1] != "hall" {
		t.Errorf("locations not appended in order: %v", vocab)
	}
}

func TestParseSubject(t *testing.T) {
	tests := []struct {
		token string
		want  model.Subject
		ok    bool
	}{
		{"light", model.SubjectLight, true},
		{"Teapot", model.SubjectTeapot, true},
		{"window_blinds", model.SubjectWindowBlinds, true},
		{"windowblinds", model.SubjectWindowBlinds, true},
		{"window blinds", model.SubjectWindowBlinds, true},
		{"fridge", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseSubject(tt.token)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseSubject(%q) = %q, %v; want %q, %v", tt.token, got, ok, tt.want, tt.ok)
			}
		})
	}
}
