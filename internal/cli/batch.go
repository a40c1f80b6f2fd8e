package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/intentia/internal/metrics"
	"github.com/ppiankov/intentia/internal/pipeline"
	"github.com/ppiankov/intentia/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Resolve utterances from a file in parallel",
	Long: `Batch resolves many utterances concurrently:
- Read utterances from input file (one per line, # comments skipped)
- Resolve them with a pool of workers sharing one scorer and rate limiter
- Print one JSON outcome per utterance to stdout, in file order

Example:
  intentia batch utterances.txt
  intentia batch utterances.txt --concurrency 8 --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Intentia Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Scorer:       %s\n", cfg.Scorer.Provider)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	metrics.Reset()
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	outcomes, runErr := processor.ProcessFile(ctx, file)
	if outcomes == nil && runErr != nil {
		return fmt.Errorf("process file: %w", runErr)
	}

	w := newOutcomeWriter(cmd.OutOrStdout())
	for _, o := range outcomes {
		if err := w.Write(o); err != nil {
			return fmt.Errorf("write outcome: %w", err)
		}
	}

	m := metrics.Get()
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:         %d utterances\n", len(outcomes))
	fmt.Fprintf(os.Stderr, "  Commands:      %d\n", m.Commands)
	fmt.Fprintf(os.Stderr, "  Questions:     %d\n", m.Questions)
	fmt.Fprintf(os.Stderr, "  Failed:        %d\n", m.Failed())
	fmt.Fprintf(os.Stderr, "  Unrecognized:  %d\n", m.Unrecognized)
	fmt.Fprintf(os.Stderr, "  Unsupported:   %d\n", m.Unsupported)
	fmt.Fprintf(os.Stderr, "  Unknown:       %d\n", m.Unknown)
	fmt.Fprintf(os.Stderr, "\n")

	if runErr != nil {
		return fmt.Errorf("batch stopped early: %w", runErr)
	}
	return nil
}
