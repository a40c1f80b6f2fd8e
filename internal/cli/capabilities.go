package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/ppiankov/intentia/internal/model"
	"github.com/ppiankov/intentia/internal/pipeline"
	"github.com/ppiankov/intentia/internal/taxonomy"
)

var checkCapability bool

// capabilitiesCmd represents the capabilities command
var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities [--check <location> <action> <subject>]",
	Short: "List or check supported commands",
	Long: `Load the capability definition and list its locations and supported
(location, action, subject) triples.

With --check, report whether one triple is supported. The action may be a
kind (switch, gradient) or a phrase (turn on, increase). Exits non-zero when
the triple is unsupported.

Example:
  intentia capabilities --capabilities home.yaml
  intentia capabilities --check kitchen "turn on" light`,
	RunE: runCapabilities,
}

func init() {
	rootCmd.AddCommand(capabilitiesCmd)
	capabilitiesCmd.Flags().BoolVar(&checkCapability, "check", false, "check a single location/action/subject triple")
}

func runCapabilities(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry, err := pipeline.LoadRegistry(cfg.Capabilities)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if checkCapability {
		if len(args) != 3 {
			return fmt.Errorf("--check needs <location> <action> <subject>, got %d args", len(args))
		}
		candidate, err := parseTriple(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		if !registry.Supports(candidate) {
			return fmt.Errorf("unsupported: %s", candidate)
		}
		fmt.Fprintf(out, "✓ supported: %s\n", candidate)
		return nil
	}

	if len(args) != 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))
	}

	locations := registry.Locations()
	fmt.Fprintf(out, "Locations (%d):\n", len(locations))
	for _, loc := range locations {
		fmt.Fprintf(out, "  %s\n", loc)
	}

	commands := registry.Commands()
	fmt.Fprintf(out, "\nCommands (%d):\n", len(commands))
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, c := range commands {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.Location, c.Action.Kind(), c.Subject)
	}
	return tw.Flush()
}

// parseTriple builds a candidate command from user input
func parseTriple(location, action, subject string) (model.Command, error) {
	var a model.Action
	if kind, ok := model.ParseActionKind(strings.ToLower(action)); ok {
		a = model.KindAction(kind)
	} else if taxonomy.Actions.Known(action) {
		a = taxonomy.Actions.Decode(action)
	} else {
		return model.Command{}, fmt.Errorf("unknown action %q%s", action, suggest(action, actionWords()))
	}

	s, ok := taxonomy.ParseSubject(subject)
	if !ok {
		return model.Command{}, fmt.Errorf("unknown subject %q%s", subject, suggest(subject, taxonomy.Subjects.Labels()))
	}

	return model.NewCommand(model.Location(location), a, s), nil
}

func actionWords() []string {
	return append([]string{string(model.ActionKindSwitch), string(model.ActionKindGradient)}, taxonomy.Actions.Labels()...)
}

// suggest formats the closest fuzzy matches for an unknown token
func suggest(token string, words []string) string {
	matches := fuzzy.Find(strings.ToLower(token), words)
	if len(matches) == 0 {
		return ""
	}

	var names []string
	for i, m := range matches {
		if i == 3 {
			break
		}
		names = append(names, fmt.Sprintf("%q", m.Str))
	}
	return " (did you mean " + strings.Join(names, " or ") + "?)"
}
