package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/fintracker/internal/model"
	"github.com/Veraticus/fintracker/internal/tui/themes"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense and income categories",
		Long:  `List and add the categories transactions are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())

	return cmd
}

// parseEntryType accepts the wire names and their English equivalents.
func parseEntryType(s string) (model.EntryType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gasto", "gastos", "expense", "expenses":
		return model.EntryTypeExpense, nil
	case "ingreso", "ingresos", "income", "incomes":
		return model.EntryTypeIncome, nil
	default:
		return "", fmt.Errorf("unknown type %q (use expense or income)", s)
	}
}

func listCategoriesCmd() *cobra.Command {
	var typeFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}

			categories, err := client.ListCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if typeFilter != "" {
				typ, err := parseEntryType(typeFilter)
				if err != nil {
					return err
				}
				filtered := categories[:0]
				for _, cat := range categories {
					if cat.Type == typ {
						filtered = append(filtered, cat)
					}
				}
				categories = filtered
			}

			out := cmd.OutOrStdout()
			if len(categories) == 0 {
				fmt.Fprintln(out, InfoStyle.Render("No categories found. Use 'fintracker categories add' to create one."))
				return nil
			}

			t := newTable(out, "ID", "Type", "Icon", "Name", "Color")
			for _, cat := range categories {
				color := cat.Color
				if color == "" {
					color = SubtleStyle.Render("(none)")
				}
				t.row(strconv.Itoa(cat.ID), string(cat.Type), themes.CategoryIcon(cat), cat.Name, color)
			}
			return t.flush()
		},
	}

	cmd.Flags().StringVarP(&typeFilter, "type", "t", "", "only show expense or income categories")

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var typeName, icon, color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long: `Create a category through the backend.

Examples:
  fintracker categories add Comida --type expense --icon 🍔 --color "#FF5733"
  fintracker categories add Salario --type income`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := parseEntryType(typeName)
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

			created, err := client.CreateCategory(cmd.Context(), model.Category{
				Name:  args[0],
				Type:  typ,
				Icon:  icon,
				Color: color,
			})
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(
				fmt.Sprintf("✓ Created category %q (ID: %d)", created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "expense", "expense or income")
	cmd.Flags().StringVar(&icon, "icon", "", "icon shown next to the name")
	cmd.Flags().StringVar(&color, "color", "", "background color as #RRGGBB")

	return cmd
}
