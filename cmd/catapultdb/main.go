// Command catapultdb runs batched k-ANN queries against a prebuilt
// proximity graph and prints one line of result ids per query.
//
// Exit codes: 0 success, 2 bad arguments, 3 malformed input files, 4 I/O
// or runtime failure.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	catapultdb "github.com/MRandl/catapult-db"
)

const (
	exitOK        = 0
	exitBadArgs   = 2
	exitMalformed = 3
	exitRuntime   = 4
)

var errUsage = errors.New("bad arguments")

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cmd := newRootCmd(logger)
	if err := cmd.Execute(); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitOK)
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, errUsage),
		errors.Is(err, catapultdb.ErrInvalidK),
		errors.Is(err, catapultdb.ErrBeamTooNarrow):
		return exitBadArgs
	case errors.Is(err, catapultdb.ErrMalformed),
		errors.Is(err, catapultdb.ErrCountMismatch):
		return exitMalformed
	default:
		var dimErr *catapultdb.ErrDimensionMismatch
		if errors.As(err, &dimErr) {
			return exitBadArgs
		}
		return exitRuntime
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	var cfg runConfig

	cmd := &cobra.Command{
		Use:           "catapultdb",
		Short:         "Approximate nearest-neighbor search over a proximity graph",
		Long:          "catapultdb answers k-ANN queries over a prebuilt proximity graph,\noptionally using catapult re-injection to escape local basins.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), logger, cfg)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	flags := cmd.Flags()
	flags.StringVarP(&cfg.queriesPath, "queries", "q", "", "path to the queries file (numpy format)")
	flags.StringVarP(&cfg.graphPath, "graph", "g", "", "path to the graph metadata file")
	flags.StringVarP(&cfg.payloadPath, "payload", "p", "", "path to the graph payload file")
	flags.IntVar(&cfg.numNeighbors, "num-neighbors", 0, "number of neighbors to return per query")
	flags.IntVar(&cfg.beamWidth, "beam-width", 0, "candidate frontier bound for beam search")
	flags.BoolVarP(&cfg.catapults, "catapults", "c", false, "enable catapult re-injection")
	flags.IntVarP(&cfg.threads, "threads", "t", 1, "number of worker threads")
	flags.IntVar(&cfg.trajectoryCap, "trajectory-cap", 0, "catapult ring capacity (0 = 4x beam width)")
	flags.IntVar(&cfg.reinjectCount, "reinject", 0, "re-injections per stall (0 = max(1, beam width / 8))")

	return cmd
}
