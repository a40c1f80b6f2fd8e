// Package taxonomy maps semantic values to the natural-language labels the
// scorer sees, one closed mapping per field.
package taxonomy

import (
	"strings"

	"github.com/ppiankov/intentia/internal/model"
)

// Field is a closed label vocabulary that decodes back into values of T.
// Decode never fails: unrecognized input yields the field's default.
type Field[T any] interface {
	// Labels returns the vocabulary in a stable order
	Labels() []string

	// Known reports whether label belongs to this field
	Known(label string) bool

	// Decode maps a label to its value, or to the default if unknown
	Decode(label string) T
}

// entry pairs a label with its value
type entry[T any] struct {
	label string
	value T
}

// table is the shared Field implementation backing every taxonomy
type table[T any] struct {
	entries []entry[T]
	index   map[string]T
	def     T
}

func newTable[T any](def T, entries ...entry[T]) *table[T] {
	t := &table[T]{
		entries: entries,
		index:   make(map[string]T, len(entries)),
		def:     def,
	}
	for _, e := range entries {
		t.index[e.label] = e.value
	}
	return t
}

func (t *table[T]) Labels() []string {
	labels := make([]string, len(t.entries))
	for i, e := range t.entries {
		labels[i] = e.label
	}
	return labels
}

func (t *table[T]) Known(label string) bool {
	_, ok := t.index[normalize(label)]
	return ok
}

func (t *table[T]) Decode(label string) T {
	if v, ok := t.index[normalize(label)]; ok {
		return v
	}
	return t.def
}

func normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Actions is the action vocabulary. Default: Switch(Off).
var Actions Field[model.Action] = newTable(model.Switch(model.SwitchOff),
	entry[model.Action]{"turn on", model.Switch(model.SwitchOn)},
	entry[model.Action]{"turn off", model.Switch(model.SwitchOff)},
	entry[model.Action]{"switch", model.Switch(model.SwitchOff)},
	entry[model.Action]{"increase", model.Gradient(model.GradientMore)},
	entry[model.Action]{"decrease", model.Gradient(model.GradientLess)},
	entry[model.Action]{"close", model.Gradient(model.GradientMin)},
	entry[model.Action]{"open", model.Gradient(model.GradientMax)},
)

// Subjects is the subject vocabulary. Default: Light.
var Subjects Field[model.Subject] = subjectTable()

func subjectTable() *table[model.Subject] {
	subjects := model.Subjects()
	entries := make([]entry[model.Subject], len(subjects))
	for i, s := range subjects {
		entries[i] = entry[model.Subject]{label: string(s), value: s}
	}
	return newTable(model.SubjectLight, entries...)
}

// IntentTypes is the intent-type vocabulary. Default: Command.
var IntentTypes Field[model.IntentType] = newTable(model.IntentCommand,
	entry[model.IntentType]{string(model.IntentCommand), model.IntentCommand},
	entry[model.IntentType]{string(model.IntentQuestion), model.IntentQuestion},
)

// Vocabulary returns intent-type, action and subject labels followed by
// the given locations, de-duplicated in first-seen order
func Vocabulary(locations []model.Location) []string {
	seen := make(map[string]bool)
	var vocab []string
	add := func(label string) {
		if label == "" || seen[label] {
			return
		}
		seen[label] = true
		vocab = append(vocab, label)
	}

	for _, l := range IntentTypes.Labels() {
		add(l)
	}
	for _, l := range Actions.Labels() {
		add(l)
	}
	for _, l := range Subjects.Labels() {
		add(l)
	}
	for _, loc := range locations {
		add(string(loc))
	}
	return vocab
}

// ParseSubject maps a capability-definition token to a Subject. Unlike
// Subjects.Decode it reports unknown tokens instead of defaulting, and it
// accepts "window_blinds", "window-blinds" and "windowblinds" spellings.
func ParseSubject(token string) (model.Subject, bool) {
	key := squash(token)
	for _, s := range model.Subjects() {
		if squash(string(s)) == key {
			return s, true
		}
	}
	return "", false
}

func squash(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}
