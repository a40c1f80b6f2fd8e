package capability

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/intentia/internal/model"
	"github.com/ppiankov/intentia/internal/taxonomy"
	"github.com/ppiankov/intentia/internal/util"
)

const rootKeyword = "commands"

// errEndOfSection stops line iteration once the commands tree ends
var errEndOfSection = errors.New("end of commands section")

// nesting depths below the root keyword
const (
	depthLocation = 1
	depthAction   = 2
	depthSubject  = 3
)

// Parse reads the indentation-based capability definition.
//
// Lines before the "commands" root are ignored. Indentation may use tabs
// (one per level) or spaces; the width of the first space-indented line
// sets the number of spaces per level. A line at any depth other than
// 1, 2 or 3 ends the commands section. Blank lines and lines starting
// with '#' are skipped. Only a read error is returned as an error;
// malformed content yields a partial map.
func Parse(r io.Reader) (*Map, error) {
	b := newBuilder()

	var (
		inRoot   bool
		unit     int
		location model.Location
		haveLoc  bool
		kind     model.ActionKind
		haveKind bool
		lineNo   int
	)

	err := util.EachLine(r, func(line string) error {
		lineNo++
		raw := strings.TrimRight(line, " \t\r")
		content := strings.TrimSpace(raw)
		if content == "" || strings.HasPrefix(content, "#") {
			return nil
		}

		if !inRoot {
			if indentOf(raw) == "" && cleanToken(content) == rootKeyword {
				inRoot = true
			}
			return nil
		}

		depth, ok := depthOf(indentOf(raw), &unit)
		if !ok || depth < depthLocation || depth > depthSubject {
			return errEndOfSection
		}

		token := cleanToken(content)
		switch depth {
		case depthLocation:
			location = model.Location(token)
			haveLoc = token != ""
			haveKind = false
			if haveLoc {
				b.location(location)
			}

		case depthAction:
			kind, haveKind = model.ParseActionKind(strings.ToLower(token))
			if !haveKind {
				b.warn(fmt.Sprintf("line %d: unknown action %q skipped", lineNo, token))
			}

		case depthSubject:
			if !haveLoc || !haveKind {
				return nil
			}
			subject, ok := taxonomy.ParseSubject(token)
			if !ok {
				b.warn(fmt.Sprintf("line %d: unknown subject %q skipped", lineNo, token))
				return nil
			}
			b.command(location, kind, subject)
		}
		return nil
	})
	if err != nil && !errors.Is(err, errEndOfSection) {
		return nil, fmt.Errorf("read capability definition: %w", err)
	}

	return b.build(), nil
}

// indentOf returns the leading whitespace of a line
func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// depthOf converts leading whitespace into a nesting depth. Each tab is one
// level; spaces count in units of *unit, which is fixed by the first
// space-indented line. Space runs that are not a multiple of the unit are
// rejected.
func depthOf(indent string, unit *int) (int, bool) {
	tabs := strings.Count(indent, "\t")
	spaces := len(indent) - tabs
	if spaces == 0 {
		return tabs, true
	}
	if *unit == 0 {
		*unit = spaces
	}
	u := *unit
	if spaces%u != 0 {
		return 0, false
	}
	return tabs + spaces/u, true
}

// cleanToken strips list markers, trailing punctuation and quotes
func cleanToken(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "- ")
	if s == "-" {
		return ""
	}
	s = strings.TrimRight(s, ":,; ")
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return s
}
