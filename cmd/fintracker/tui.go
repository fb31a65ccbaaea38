package main

import (
	"log/slog"

	"github.com/Veraticus/fintracker/internal/controller"
	"github.com/Veraticus/fintracker/internal/locale"
	"github.com/Veraticus/fintracker/internal/repository"
	"github.com/Veraticus/fintracker/internal/tui"
	"github.com/Veraticus/fintracker/internal/tui/themes"
	"github.com/Veraticus/fintracker/internal/viewmodel"
	"github.com/spf13/cobra"
)

func tuiCmd() *cobra.Command {
	var themeName string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive app",
		Long: `Open the terminal app: categories, expenses and incomes with a chart per
period, and savings goals. Data is read from and written to the backend
configured by api.base_url.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}

			tr, err := locale.New(cfg.UI.Locale)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			opt := controller.WithLogger(slog.Default())
			categories := viewmodel.NewCategoryViewModel(ctx, repository.NewCategories(client), opt)
			defer categories.Close()
			transactions := viewmodel.NewTransactionViewModel(ctx, repository.NewTransactions(client), opt)
			defer transactions.Close()
			goals := viewmodel.NewGoalViewModel(ctx, repository.NewGoals(client), opt)
			defer goals.Close()

			return tui.Run(ctx,
				tui.WithViewModels(categories, transactions, goals),
				tui.WithTranslator(tr),
				tui.WithTheme(themes.GetTheme(themeName)),
			)
		},
	}

	cmd.Flags().StringVar(&themeName, "theme", "default", "color theme (default, catppuccin-mocha)")

	return cmd
}
