package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/intentia/internal/logging"
	"github.com/ppiankov/intentia/internal/metrics"
	"github.com/ppiankov/intentia/internal/model"
	"github.com/ppiankov/intentia/internal/pipeline"
	"github.com/ppiankov/intentia/internal/util"
	"github.com/ppiankov/intentia/internal/worker"
)

const scorerCheckTimeout = 10 * time.Second

// listenCmd represents the listen command
var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Resolve utterances from stdin until EOF or a signal",
	Long: `Run the resolver worker over a stream of utterances:
- stdin lines are the upstream queue (one recognized speech segment per line)
- outcomes are written to stdout as JSON lines, in arrival order
- utterances are resolved strictly one at a time
- SIGINT/SIGTERM stop the worker between utterances; an in-flight scorer
  call always completes

Example:
  speech-to-text | intentia listen --capabilities home.txt`,
	Args: cobra.NoArgs,
	RunE: runListen,
}

func init() {
	rootCmd.AddCommand(listenCmd)
}

func runListen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logging.Named("listen")

	checkCtx, cancelCheck := context.WithTimeout(ctx, scorerCheckTimeout)
	if err := p.CheckScorer(checkCtx); err != nil {
		log.Warn().Err(err).Msg("scorer check failed, utterances resolve to unknown until it answers")
	}
	cancelCheck()

	upstream := worker.NewQueue[string]()
	downstream := worker.NewQueue[model.Outcome]()

	// The reader runs outside the group so a blocked stdin read cannot stall
	// shutdown. Its error is sent before upstream closes.
	readErr := make(chan error, 1)
	go func() {
		readErr <- feedUtterances(cmd.InOrStdin(), upstream)
		upstream.Close()
	}()

	log.Info().Int("vocabulary", len(p.Vocabulary())).Msg("listening")

	var g errgroup.Group
	g.Go(func() error {
		w := newOutcomeWriter(cmd.OutOrStdout())
		var werr error
		for o := range downstream.Out() {
			if err := w.Write(o); err != nil && werr == nil {
				werr = fmt.Errorf("write outcome: %w", err)
			}
		}
		return werr
	})
	g.Go(func() error {
		defer downstream.Close()
		err := p.Run(ctx, upstream.Out(), downstream.In())
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	err = g.Wait()
	select {
	case rerr := <-readErr:
		if err == nil && rerr != nil {
			err = rerr
		}
	default:
	}

	m := metrics.Get()
	log.Info().
		Uint64("utterances", m.Utterances).
		Uint64("commands", m.Commands).
		Uint64("questions", m.Questions).
		Uint64("failed", m.Failed()).
		Uint64("unrecognized", m.Unrecognized).
		Uint64("unsupported", m.Unsupported).
		Uint64("unknown", m.Unknown).
		Msg("stopped")

	return err
}

// feedUtterances pushes every non-blank line of r onto upstream. A read
// error is returned after the lines before it were queued.
func feedUtterances(r io.Reader, upstream *worker.Queue[string]) error {
	err := util.EachLine(r, func(line string) error {
		if line = strings.TrimSpace(line); line != "" {
			upstream.In() <- line
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return nil
}
