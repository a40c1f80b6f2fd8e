package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/intentia/internal/pipeline"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <utterance>",
	Short: "Resolve a single utterance",
	Long: `Score one utterance with the configured provider and print its outcome
as JSON. Failures (unrecognized, unsupported, unknown) are outcomes, not errors.

Example:
  intentia resolve "turn on the kitchen light"
  intentia resolve --provider ollama --model llama3.1:8b "what time is it"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	outcome := p.Process(ctx, strings.Join(args, " "))
	return newOutcomeWriter(cmd.OutOrStdout()).Write(outcome)
}
