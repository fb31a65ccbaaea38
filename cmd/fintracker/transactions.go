package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Veraticus/fintracker/internal/common"
	"github.com/Veraticus/fintracker/internal/model"
	"github.com/Veraticus/fintracker/internal/ofx"
	"github.com/Veraticus/fintracker/internal/service"
	"github.com/Veraticus/fintracker/internal/tui/themes"
	"github.com/Veraticus/fintracker/internal/viewmodel"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const importBatchSize = 100

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txn"},
		Short:   "Record, list and import transactions",
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(importTransactionsCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var (
		typeName   string
		periodName string
		byCategory bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses or incomes for a period",
		Long: `List the transactions of one type inside a period ending today.

Periods: Día (today), Semana (last 7 days), Mes (this month), Año (this year).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			typ, err := parseEntryType(typeName)
			if err != nil {
				return err
			}
			period, err := parsePeriod(periodName)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}

			all, err := client.ListTransactions(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}

			visible := viewmodel.FilterByPeriod(viewmodel.FilterByType(all, typ), period, time.Now())
			out := cmd.OutOrStdout()
			if len(visible) == 0 {
				fmt.Fprintln(out, InfoStyle.Render(fmt.Sprintf("No %s in period %s.", typ, period)))
				return nil
			}

			var t *table
			if byCategory {
				t = newTable(out, "Category", "Count", "Share", "Total")
				groups := viewmodel.GroupAndSum(visible)
				segments := viewmodel.ChartSegments(groups, viewmodel.Total(visible))
				for i, seg := range segments {
					t.row(
						themes.CategoryIcon(seg.Category)+" "+seg.Category.Name,
						strconv.Itoa(groups[i].Count),
						fmt.Sprintf("%.1f%%", seg.Percentage()),
						viewmodel.FormatAmount(seg.Total),
					)
				}
			} else {
				t = newTable(out, "ID", "Date", "Category", "Amount", "Note")
				for _, txn := range visible {
					t.row(
						strconv.Itoa(txn.ID),
						viewmodel.FormatDate(txn.Date),
						themes.CategoryIcon(txn.Category)+" "+txn.Category.Name,
						viewmodel.FormatAmount(txn.Amount),
						viewmodel.TruncateString(txn.Note, 40),
					)
				}
			}
			if err := t.flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "\n%s %s\n", SubtleStyle.Render("Balance:"), InfoStyle.Render(viewmodel.FormatBalance(viewmodel.Total(visible))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "expense", "expense or income")
	cmd.Flags().StringVarP(&periodName, "period", "p", string(model.PeriodMonth), "Día, Semana, Mes or Año (day, week, month, year)")
	cmd.Flags().BoolVar(&byCategory, "by-category", false, "show totals per category instead of rows")

	return cmd
}

// parsePeriod accepts the wire names and their English equivalents.
func parsePeriod(s string) (model.Period, error) {
	switch s {
	case "day", "today":
		return model.PeriodDay, nil
	case "week":
		return model.PeriodWeek, nil
	case "month":
		return model.PeriodMonth, nil
	case "year":
		return model.PeriodYear, nil
	}
	return model.ParsePeriod(s)
}

func addTransactionCmd() *cobra.Command {
	var (
		amount     float64
		categoryID int
		note       string
		date       string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense or income",
		Long: `Record a transaction through the backend. Its type follows the category.

Example:
  fintracker transactions add --amount 1500 --category 1 --note "Supermercado"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			when := time.Now()
			if date != "" {
				d, err := time.ParseInLocation(time.DateOnly, date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", date, err)
				}
				when = d
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			categories, err := client.ListCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}
			var category *model.Category
			for i := range categories {
				if categories[i].ID == categoryID {
					category = &categories[i]
					break
				}
			}
			if category == nil {
				return fmt.Errorf("category %d not found", categoryID)
			}

			created, err := client.CreateTransaction(ctx, model.Transaction{
				Date:       when,
				Note:       note,
				Type:       category.Type,
				Category:   *category,
				CategoryID: category.ID,
				Amount:     amount,
			})
			if err != nil {
				return fmt.Errorf("failed to create transaction: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(fmt.Sprintf("✓ Recorded %s %s in %s (ID: %d)",
				created.Type, viewmodel.FormatAmount(created.Amount), category.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "amount (positive)")
	cmd.Flags().IntVarP(&categoryID, "category", "c", 0, "category ID")
	cmd.Flags().StringVarP(&note, "note", "n", "", "free-text note")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func importTransactionsCmd() *cobra.Command {
	var (
		expenseID int
		incomeID  int
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import statement lines from OFX or QFX files exported from your bank.

Debits are filed under --category, credits under --income-category; lines
whose type has no category are skipped. Lines already imported are skipped.
The import writes to the local database directly.

Examples:
  fintracker transactions import ~/Downloads/popular_enero.qfx --category 3
  fintracker transactions import ~/Downloads/*.ofx --category 3 --income-category 7`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if expenseID == 0 && incomeID == 0 {
				return fmt.Errorf("at least one of --category or --income-category is required")
			}

			files, err := expandFiles(args)
			if err != nil {
				return err
			}

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

			categories, err := importCategories(cmd, store, expenseID, incomeID)
			if err != nil {
				return err
			}

			parser := ofx.NewParser(slog.Default())
			seen := make(map[string]bool)
			var pending []model.Transaction
			skipped := 0

			for _, path := range files {
				f, err := os.Open(path)
				if err != nil {
					common.LogError(err, "failed to open file", common.Fields{"file": path})
					continue
				}
				entries, err := parser.ParseFile(ctx, f)
				_ = f.Close()
				if err != nil {
					common.LogError(err, "failed to parse OFX file", common.Fields{"file": path})
					continue
				}

				txns, unassigned := ofx.Assign(entries, categories...)
				skipped += unassigned
				added := 0
				for _, txn := range txns {
					hash := txn.GenerateHash()
					if seen[hash] {
						continue
					}
					seen[hash] = true
					pending = append(pending, txn)
					added++
				}
				common.LogInfo("processed file", common.Fields{
					"file":             filepath.Base(path),
					"entries":          len(entries),
					"added":            added,
					"without_category": unassigned,
				})
			}

			out := cmd.OutOrStdout()
			if len(pending) == 0 {
				fmt.Fprintln(out, WarningStyle.Render("No transactions to import."))
				return nil
			}
			if dryRun {
				fmt.Fprintln(out, InfoStyle.Render(fmt.Sprintf("🔍 Dry run: %d transactions would be imported (%d without category).", len(pending), skipped)))
				return nil
			}

			inserted, err := saveInBatches(cmd, store, pending)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, SuccessStyle.Render(fmt.Sprintf("✅ Imported %d transactions", inserted)))
			if dup := len(pending) - inserted; dup > 0 {
				fmt.Fprintln(out, SubtleStyle.Render(fmt.Sprintf("%d already present", dup)))
			}
			if skipped > 0 {
				fmt.Fprintln(out, WarningStyle.Render(fmt.Sprintf("%d lines skipped: no category for their type", skipped)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&expenseID, "category", "c", 0, "expense category ID for debits")
	cmd.Flags().IntVar(&incomeID, "income-category", 0, "income category ID for credits")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview import without saving")

	return cmd
}

// expandFiles resolves glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("no files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}
	return files, nil
}

// importCategories loads the target categories and checks each matches its role.
func importCategories(cmd *cobra.Command, store service.Storage, expenseID, incomeID int) ([]model.Category, error) {
	var categories []model.Category
	for _, want := range []struct {
		typ model.EntryType
		id  int
	}{{model.EntryTypeExpense, expenseID}, {model.EntryTypeIncome, incomeID}} {
		if want.id == 0 {
			continue
		}
		cat, err := store.GetCategoryByID(cmd.Context(), want.id)
		if err != nil {
			return nil, fmt.Errorf("category %d: %w", want.id, err)
		}
		if cat.Type != want.typ {
			return nil, fmt.Errorf("category %d (%s) is a %s category, expected %s", cat.ID, cat.Name, cat.Type, want.typ)
		}
		categories = append(categories, *cat)
	}
	return categories, nil
}

func saveInBatches(cmd *cobra.Command, store service.Storage, txns []model.Transaction) (int, error) {
	bar := progressbar.NewOptions(len(txns),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing transactions...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(cmd.ErrOrStderr())
		}),
	)

	inserted := 0
	for start := 0; start < len(txns); start += importBatchSize {
		end := min(start+importBatchSize, len(txns))
		n, err := store.SaveTransactions(cmd.Context(), txns[start:end])
		if err != nil {
			return inserted, fmt.Errorf("failed to save transactions: %w", err)
		}
		inserted += n
		common.LogDebug("saved import batch", common.Fields{"offset": start, "size": end - start, "inserted": n})
		if err := bar.Add(end - start); err != nil {
			slog.Warn("failed to update progress bar", "error", err)
		}
	}
	return inserted, nil
}
