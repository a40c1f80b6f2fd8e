package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/intentia/internal/pipeline"
)

var doctorTimeout time.Duration

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the capability definition and scorer backend",
	Long: `Load the configuration and capability definition, then ask the scorer
backend whether it answers. Exits non-zero when either check fails.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().DurationVar(&doctorTimeout, "timeout", 15*time.Second, "timeout for the scorer check")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ capabilities: %s (%d labels in vocabulary)\n", cfg.Capabilities.Path, len(p.Vocabulary()))

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, doctorTimeout)
	defer cancel()

	if err := p.CheckScorer(ctx); err != nil {
		fmt.Fprintf(out, "✗ scorer: %v\n", err)
		return err
	}
	fmt.Fprintf(out, "✓ scorer: %s\n", cfg.Scorer.Provider)
	return nil
}
