package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Veraticus/fintracker/internal/model"
)

// GetGoals returns every savings goal in insertion order.
func (s *SQLiteStorage) GetGoals(ctx context.Context) ([]model.SavingsGoal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, target_amount, current_amount, deadline, created_at
		FROM savings_goals
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings goals: %w", err)
	}
	defer rows.Close()

	goals := []model.SavingsGoal{}
	for rows.Next() {
		var (
			goal      model.SavingsGoal
			deadline  sql.NullTime
			createdAt sql.NullTime
		)
		if err := rows.Scan(&goal.ID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount, &deadline, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan savings goal: %w", err)
		}
		goal.Deadline = deadline.Time
		goal.CreatedAt = createdAt.Time
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating savings goals: %w", err)
	}
	return goals, nil
}

// CreateGoal stores goal and returns it with its assigned id and creation time.
func (s *SQLiteStorage) CreateGoal(ctx context.Context, goal model.SavingsGoal) (*model.SavingsGoal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateGoal(goal); err != nil {
		return nil, err
	}

	var deadline sql.NullTime
	if !goal.Deadline.IsZero() {
		deadline = sql.NullTime{Time: goal.Deadline.UTC(), Valid: true}
	}
	now := time.Now().UTC().Truncate(time.Second)

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO savings_goals (name, target_amount, current_amount, deadline, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		goal.Name, goal.TargetAmount, goal.CurrentAmount, deadline, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create savings goal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get savings goal ID: %w", err)
	}

	goal.ID = int(id)
	goal.CreatedAt = now
	goal.Deadline = deadline.Time
	return &goal, nil
}
