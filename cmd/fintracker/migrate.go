package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/fintracker/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Use --status to compare the database against the latest schema without
changing anything.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if status {
		fmt.Fprintf(out, "Database:        %s\n", store.Path())
		fmt.Fprintf(out, "Current version: %d\n", current)
		fmt.Fprintf(out, "Latest version:  %d\n", storage.ExpectedSchemaVersion)
		if current < storage.ExpectedSchemaVersion {
			fmt.Fprintln(out, WarningStyle.Render("Migrations pending. Run 'fintracker migrate'."))
		} else {
			fmt.Fprintln(out, SuccessStyle.Render("Schema is up to date."))
		}
		return nil
	}

	slog.Info("running database migrations",
		"database", store.Path(),
		"from", current,
		"to", storage.ExpectedSchemaVersion)

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(out, SuccessStyle.Render(fmt.Sprintf("✅ Database at schema version %d", storage.ExpectedSchemaVersion)))
	return nil
}
