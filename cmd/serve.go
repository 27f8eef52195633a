package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/cryptograms/internal/observability"
	"github.com/xkilldash9x/cryptograms/internal/server"
	"github.com/xkilldash9x/cryptograms/internal/service"
)

// newServeCmd creates and configures the `serve` command.
func newServeCmd() *cobra.Command {
	var listen string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the puzzle HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Use the context passed from main.go (signal-aware).
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			logger := observability.GetLogger()

			if cmd.Flags().Changed("listen") {
				cfg.SetServerListen(listen)
			}

			components, err := service.NewComponents(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer components.Shutdown()

			logger.Info("Serving puzzles", zap.String("listen", cfg.Server().Listen), zap.String("database", cfg.Database().Driver))
			return server.New(cfg.Server(), components.Puzzles, logger).Run(ctx)
		},
	}

	serveCmd.Flags().StringVar(&listen, "listen", "", "address to listen on, e.g. 127.0.0.1:8080")
	return serveCmd
}
