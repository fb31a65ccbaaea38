package viewmodel

import (
	"context"
	"testing"

	"github.com/Veraticus/fintracker/internal/model"
	"github.com/Veraticus/fintracker/internal/resource"
	"github.com/stretchr/testify/assert"
)

func TestGoalViewModelCreateAndAcknowledge(t *testing.T) {
	repo := newFakeRepo[model.SavingsGoal]()
	repo.create = func(_ context.Context, g model.SavingsGoal) resource.Stream[model.SavingsGoal] {
		g.ID = 3
		return resource.Of(resource.Loading[model.SavingsGoal](), resource.Success(g))
	}
	stored := model.SavingsGoal{ID: 3, Name: "Laptop", TargetAmount: 1000, CurrentAmount: 50}
	repo.fetch = func(_ context.Context, call int) resource.Stream[[]model.SavingsGoal] {
		if call == 1 {
			return resource.Of(resource.Loading[[]model.SavingsGoal](), resource.Success([]model.SavingsGoal{}))
		}
		return resource.Of(resource.Loading[[]model.SavingsGoal](), resource.Success([]model.SavingsGoal{stored}))
	}

	vm := NewGoalViewModel(context.Background(), repo)
	t.Cleanup(vm.Close)
	waitIdle(t, func() bool { return repo.fetchCalls.Load() == 1 && !vm.State().IsLoading })
	assert.False(t, vm.State().GoalCreated)

	vm.Create(model.SavingsGoal{Name: "Laptop", TargetAmount: 1000})
	waitIdle(t, func() bool {
		s := vm.State()
		return s.GoalCreated && !s.IsLoading && len(s.Items) == 1 && s.Items[0].CurrentAmount == 50
	})

	// The refresh after create replaces the appended goal with the stored one.
	s := vm.State()
	assert.Equal(t, int32(2), repo.fetchCalls.Load())
	assert.Equal(t, []model.SavingsGoal{stored}, s.Items)

	s = vm.AcknowledgeCreated()
	assert.False(t, s.GoalCreated)
	assert.Len(t, s.Items, 1)
}

func TestGoalViewModelCreateErrorLeavesFlag(t *testing.T) {
	repo := newFakeRepo[model.SavingsGoal]()
	repo.create = func(context.Context, model.SavingsGoal) resource.Stream[model.SavingsGoal] {
		return resource.Of(resource.Error[model.SavingsGoal]("server error (500)", nil))
	}

	vm := NewGoalViewModel(context.Background(), repo)
	t.Cleanup(vm.Close)

	vm.Create(model.SavingsGoal{Name: "Trip"})
	waitIdle(t, func() bool { return vm.State().HasError() })
	assert.False(t, vm.State().GoalCreated)
	assert.Equal(t, int32(1), repo.fetchCalls.Load())
	assert.Equal(t, "server error (500)", vm.State().Error)
}
