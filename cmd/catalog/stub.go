package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/themilho/product-catalog/internal/stubapi"
)

func newStubServerCmd(a *app) *cobra.Command {
	var (
		port int
		seed string
	)

	cmd := &cobra.Command{
		Use:   "stub-server",
		Short: "Serve the catalog REST API from memory",
		Long: `stub-server serves the catalog REST API from an in-memory store, seeded
from --seed (a JSON array of products) or a built-in sample.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Stub.HTTPPort = port
			}
			if cmd.Flags().Changed("seed") {
				a.cfg.Stub.SeedFile = seed
			}

			srv, err := stubapi.NewApp(a.cfg, a.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 3002, "listen port (overrides STUB_HTTP_PORT)")
	cmd.Flags().StringVar(&seed, "seed", "", "JSON seed file (overrides STUB_SEED_FILE)")
	return cmd
}
