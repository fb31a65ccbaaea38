package viewmodel

import (
	"context"

	"github.com/Veraticus/fintracker/internal/controller"
	"github.com/Veraticus/fintracker/internal/model"
	"github.com/Veraticus/fintracker/internal/repository"
	"github.com/Veraticus/fintracker/internal/resource"
)

// GoalState is the savings goals screen snapshot.
type GoalState struct {
	ListState[model.SavingsGoal]
	GoalCreated bool
}

// NewGoalState returns the screen defaults.
func NewGoalState() GoalState {
	return GoalState{ListState: NewListState[model.SavingsGoal]()}
}

func foldGoals(s GoalState, r resource.Resource[[]model.SavingsGoal]) GoalState {
	s.ListState = FoldList(s.ListState, r)
	return s
}

func foldCreatedGoal(s GoalState, r resource.Resource[model.SavingsGoal]) GoalState {
	s.ListState = FoldAppend(s.ListState, r)
	if r.IsSuccess() {
		s.GoalCreated = true
	}
	return s
}

// GoalViewModel drives the savings goals screen.
type GoalViewModel struct {
	ctrl *controller.Controller[GoalState]
	repo repository.Goals
}

// NewGoalViewModel creates the view model and starts the initial fetch.
func NewGoalViewModel(ctx context.Context, repo repository.Goals, opts ...controller.Option) *GoalViewModel {
	vm := &GoalViewModel{
		ctrl: controller.New(ctx, "goals", NewGoalState(), opts...),
		repo: repo,
	}
	vm.Fetch()
	return vm
}

// State returns the latest snapshot.
func (vm *GoalViewModel) State() GoalState { return vm.ctrl.State() }

// Subscribe observes snapshots.
func (vm *GoalViewModel) Subscribe() (<-chan GoalState, func()) { return vm.ctrl.Subscribe() }

// Close tears the view model down.
func (vm *GoalViewModel) Close() { vm.ctrl.Close() }

// Fetch reloads the list.
func (vm *GoalViewModel) Fetch() {
	controller.Start(vm.ctrl, opFetch, vm.repo.FetchAll, foldGoals, nil)
}

// Create records a new goal and refreshes the list on success. GoalCreated
// stays set until AcknowledgeCreated.
func (vm *GoalViewModel) Create(goal model.SavingsGoal) {
	vm.ctrl.Update(func(s GoalState) GoalState {
		s.IsLoading = true
		s.Error = ""
		return s
	})
	controller.Start(vm.ctrl, opCreate,
		func(ctx context.Context) resource.Stream[model.SavingsGoal] {
			return vm.repo.Create(ctx, goal)
		},
		foldCreatedGoal,
		func(r resource.Resource[model.SavingsGoal]) {
			if r.IsSuccess() {
				vm.Fetch()
			}
		},
	)
}

// AcknowledgeCreated clears the created flag once the screen has reacted to it.
func (vm *GoalViewModel) AcknowledgeCreated() GoalState {
	return vm.ctrl.Update(func(s GoalState) GoalState {
		s.GoalCreated = false
		return s
	})
}
