package capability

import (
	"fmt"
	"strings"

	"github.com/ppiankov/intentia/internal/model"
	"github.com/ppiankov/intentia/internal/taxonomy"
	"gopkg.in/yaml.v3"
)

// ParseYAML reads the YAML form of the capability definition. Locations and
// actions may be written as mappings or as sequences of single-key mappings;
// subjects as a sequence or a single scalar. Document order is preserved.
// Content that is not valid YAML yields an empty map with a warning.
func ParseYAML(data []byte) *Map {
	b := newBuilder()

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		b.warn(fmt.Sprintf("invalid YAML: %v", err))
		return b.build()
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return b.build()
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		b.warn("capability definition is not a mapping")
		return b.build()
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != rootKeyword {
			continue
		}
		for _, loc := range pairs(root.Content[i+1]) {
			parseLocation(b, loc)
		}
	}

	return b.build()
}

// pair is one key/value entry from a mapping or single-key sequence item
type pair struct {
	key   *yaml.Node
	value *yaml.Node
}

// pairs flattens either {a: x, b: y} or [{a: x}, {b: y}] into ordered
// pairs. A bare scalar item in a sequence becomes a pair with no value.
func pairs(n *yaml.Node) []pair {
	var out []pair
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			out = append(out, pair{key: n.Content[i], value: n.Content[i+1]})
		}
	case yaml.SequenceNode:
		for _, item := range n.Content {
			switch item.Kind {
			case yaml.MappingNode:
				out = append(out, pairs(item)...)
			case yaml.ScalarNode:
				out = append(out, pair{key: item})
			}
		}
	case yaml.ScalarNode:
		if n.Value != "" {
			out = append(out, pair{key: n})
		}
	}
	return out
}

func parseLocation(b *builder, p pair) {
	loc := model.Location(strings.TrimSpace(p.key.Value))
	if loc == "" {
		return
	}
	b.location(loc)
	if p.value == nil {
		return
	}

	for _, act := range pairs(p.value) {
		token := strings.TrimSpace(act.key.Value)
		kind, ok := model.ParseActionKind(strings.ToLower(token))
		if !ok {
			b.warn(fmt.Sprintf("line %d: unknown action %q skipped", act.key.Line, token))
			continue
		}
		if act.value == nil {
			continue
		}
		for _, subj := range subjects(act.value) {
			subject, ok := taxonomy.ParseSubject(subj.Value)
			if !ok {
				b.warn(fmt.Sprintf("line %d: unknown subject %q skipped", subj.Line, subj.Value))
				continue
			}
			b.command(loc, kind, subject)
		}
	}
}

// subjects collects the scalar leaves under an action
func subjects(n *yaml.Node) []*yaml.Node {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Value == "" {
			return nil
		}
		return []*yaml.Node{n}
	case yaml.SequenceNode:
		var out []*yaml.Node
		for _, item := range n.Content {
			if item.Kind == yaml.ScalarNode && item.Value != "" {
				out = append(out, item)
			}
		}
		return out
	default:
		return nil
	}
}
