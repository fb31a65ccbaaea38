package storage

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/fintracker/internal/common"
	"github.com/Veraticus/fintracker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGoal(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	deadline := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	created, err := store.CreateGoal(ctx, model.SavingsGoal{Name: "Laptop", TargetAmount: 1500, CurrentAmount: 200, Deadline: deadline})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	_, err = store.CreateGoal(ctx, model.SavingsGoal{Name: "Trip", TargetAmount: 800})
	require.NoError(t, err)

	goals, err := store.GetGoals(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "Laptop", goals[0].Name)
	assert.True(t, goals[0].Deadline.Equal(deadline))
	assert.Equal(t, 200.0, goals[0].CurrentAmount)
	assert.True(t, goals[1].Deadline.IsZero())
	assert.False(t, goals[1].CreatedAt.IsZero())
}

func TestCreateGoalValidation(t *testing.T) {
	store := createTestStorage(t)

	tests := []struct {
		name string
		goal model.SavingsGoal
	}{
		{"missing name", model.SavingsGoal{TargetAmount: 10}},
		{"zero target", model.SavingsGoal{Name: "Car"}},
		{"negative saved", model.SavingsGoal{Name: "Car", TargetAmount: 10, CurrentAmount: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.CreateGoal(context.Background(), tt.goal)
			require.ErrorIs(t, err, ErrInvalidGoal)
			assert.True(t, common.IsValidationError(err))
		})
	}
}
