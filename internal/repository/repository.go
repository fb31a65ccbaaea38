// Package repository defines the collaborators view models fetch from and
// its implementation over the backend API.
//
// Every operation answers with a resource.Stream that emits Loading first and
// then exactly one terminal Success or Error, and emits nothing once the
// context passed in is done.
package repository

import (
	"context"

	"github.com/Veraticus/fintracker/internal/model"
	"github.com/Veraticus/fintracker/internal/resource"
)

// Repository exposes the list and create operations for one entity type.
type Repository[E any] interface {
	FetchAll(ctx context.Context) resource.Stream[[]E]
	Create(ctx context.Context, entity E) resource.Stream[E]
}

// Categories is the repository for categories.
type Categories = Repository[model.Category]

// Transactions is the repository for transactions.
type Transactions = Repository[model.Transaction]

// Goals is the repository for savings goals.
type Goals = Repository[model.SavingsGoal]
