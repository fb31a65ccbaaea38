// Package service defines the interfaces shared between the backend layers.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/fintracker/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID int
	Limit      int
	Offset     int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Category operations
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id int) (*model.Category, error)
	CreateCategory(ctx context.Context, cat model.Category) (*model.Category, error)

	// Transaction operations
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, txn model.Transaction) (*model.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error)

	// Savings goal operations
	GetGoals(ctx context.Context) ([]model.SavingsGoal, error)
	CreateGoal(ctx context.Context, goal model.SavingsGoal) (*model.SavingsGoal, error)

	// Database management
	SchemaVersion(ctx context.Context) (int, error)
	Migrate(ctx context.Context) error
	Close() error
}
