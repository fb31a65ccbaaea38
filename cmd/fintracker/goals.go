package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Veraticus/fintracker/internal/model"
	"github.com/Veraticus/fintracker/internal/viewmodel"
	"github.com/spf13/cobra"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage savings goals",
	}

	cmd.AddCommand(listGoalsCmd())
	cmd.AddCommand(addGoalCmd())

	return cmd
}

func listGoalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List savings goals with their progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}

			goals, err := client.ListGoals(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get goals: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(goals) == 0 {
				fmt.Fprintln(out, InfoStyle.Render("No savings goals yet. Use 'fintracker goals add' to create one."))
				return nil
			}

			t := newTable(out, "ID", "Name", "Progress", "Saved", "Target", "Deadline")
			for _, g := range goals {
				deadline := SubtleStyle.Render("-")
				if !g.Deadline.IsZero() {
					deadline = viewmodel.FormatDate(g.Deadline)
				}
				t.row(
					strconv.Itoa(g.ID),
					g.Name,
					fmt.Sprintf("%s %3.0f%%", viewmodel.ProgressBar(g.Progress(), 20), g.Progress()*100),
					viewmodel.FormatAmount(g.CurrentAmount),
					viewmodel.FormatAmount(g.TargetAmount),
					deadline,
				)
			}
			return t.flush()
		},
	}
}

func addGoalCmd() *cobra.Command {
	var (
		target, saved float64
		deadline      string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a savings goal",
		Long: `Create a savings goal through the backend.

Example:
  fintracker goals add "Laptop" --target 60000 --saved 15000 --deadline 2025-12-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goal := model.SavingsGoal{
				Name:          args[0],
				TargetAmount:  target,
				CurrentAmount: saved,
			}
			if deadline != "" {
				d, err := time.Parse(time.DateOnly, deadline)
				if err != nil {
					return fmt.Errorf("invalid deadline %q (use YYYY-MM-DD): %w", deadline, err)
				}
				goal.Deadline = d
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}

			created, err := client.CreateGoal(cmd.Context(), goal)
			if err != nil {
				return fmt.Errorf("failed to create goal: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(
				fmt.Sprintf("✓ Created goal %q (ID: %d), %s to go", created.Name, created.ID, viewmodel.FormatAmount(created.Remaining()))))
			return nil
		},
	}

	cmd.Flags().Float64Var(&target, "target", 0, "amount to save")
	cmd.Flags().Float64Var(&saved, "saved", 0, "amount already saved")
	cmd.Flags().StringVar(&deadline, "deadline", "", "target date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}
