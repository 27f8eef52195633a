package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/cryptograms/internal/engine"
	"github.com/xkilldash9x/cryptograms/internal/observability"
	"github.com/xkilldash9x/cryptograms/internal/service"
)

// newCryptarithmCmd creates and configures the `cryptarithm` command.
func newCryptarithmCmd() *cobra.Command {
	var (
		maxBatches int
		timeout    time.Duration
		hide       bool
	)

	cryptarithmCmd := &cobra.Command{
		Use:   "cryptarithm",
		Short: "Search the word corpus for an alphametic puzzle A + B = C",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			logger := observability.GetLogger()

			// Flags override the solver section only when given.
			if cmd.Flags().Changed("max-batches") {
				cfg.SetSolverMaxBatches(maxBatches)
			}
			if cmd.Flags().Changed("timeout") {
				cfg.SetSolverTimeout(timeout)
			}

			_, solver, err := service.InitializeEngine(cfg, logger)
			if err != nil {
				return err
			}

			sol, stats, err := solver.Solve(ctx, engine.NewRand())
			if err != nil {
				logger.Warn("Cryptarithm search failed", zap.Object("stats", stats), zap.Error(err))
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Puzzle: %s\n", sol)
			if !hide {
				fmt.Fprintf(out, "Answer: %s\n", sol.Answer())
			}
			return nil
		},
	}

	cryptarithmCmd.Flags().IntVar(&maxBatches, "max-batches", 0, "give up after this many word batches (0 searches until interrupted)")
	cryptarithmCmd.Flags().DurationVar(&timeout, "timeout", 0, "give up after this long (0 means no limit)")
	cryptarithmCmd.Flags().BoolVar(&hide, "hide-answer", false, "print only the puzzle")
	return cryptarithmCmd
}
