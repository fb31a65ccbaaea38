package main

import (
	"log/slog"

	"github.com/Veraticus/fintracker/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the backend API",
		Long: `Serve the JSON API the app synchronizes with:

  GET/POST /api/categories
  GET/POST /api/transactions
  GET/POST /api/goals
  GET      /api/health

The database is migrated on startup.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			slog.Info("starting backend", "addr", cfg.Server.Addr, "database", cfg.Database.Path)
			return server.New(store, slog.Default()).ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default: :8080)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}
