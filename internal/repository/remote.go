package repository

import (
	"context"

	"github.com/Veraticus/fintracker/internal/model"
	"github.com/Veraticus/fintracker/internal/resource"
)

// API is the backend surface the remote repositories call.
// *remote.Client implements it.
type API interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, cat model.Category) (model.Category, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, txn model.Transaction) (model.Transaction, error)
	ListGoals(ctx context.Context) ([]model.SavingsGoal, error)
	CreateGoal(ctx context.Context, goal model.SavingsGoal) (model.SavingsGoal, error)
}

// Remote adapts a pair of blocking API calls into a Repository.
type Remote[E any] struct {
	list   func(context.Context) ([]E, error)
	create func(context.Context, E) (E, error)
}

// NewRemote builds a repository from a list and a create call.
func NewRemote[E any](list func(context.Context) ([]E, error), create func(context.Context, E) (E, error)) *Remote[E] {
	return &Remote[E]{list: list, create: create}
}

// FetchAll emits Loading, then the full list or the failure.
func (r *Remote[E]) FetchAll(ctx context.Context) resource.Stream[[]E] {
	return resource.Call(ctx, r.list)
}

// Create emits Loading, then the stored entity or the failure.
func (r *Remote[E]) Create(ctx context.Context, entity E) resource.Stream[E] {
	return resource.Call(ctx, func(ctx context.Context) (E, error) {
		return r.create(ctx, entity)
	})
}

// NewCategories returns the categories repository backed by api.
func NewCategories(api API) *Remote[model.Category] {
	return NewRemote(api.ListCategories, api.CreateCategory)
}

// NewTransactions returns the transactions repository backed by api.
func NewTransactions(api API) *Remote[model.Transaction] {
	return NewRemote(api.ListTransactions, api.CreateTransaction)
}

// NewGoals returns the savings goals repository backed by api.
func NewGoals(api API) *Remote[model.SavingsGoal] {
	return NewRemote(api.ListGoals, api.CreateGoal)
}
