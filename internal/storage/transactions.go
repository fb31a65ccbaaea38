package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/fintracker/internal/common"
	"github.com/Veraticus/fintracker/internal/model"
	"github.com/Veraticus/fintracker/internal/service"
	"github.com/mattn/go-sqlite3"
)

const transactionSelect = `
	SELECT t.id, t.date, t.note, t.type, t.amount, t.category_id,
		c.id, c.name, c.type, c.icon, c.color, c.created_at
	FROM transactions t
	JOIN categories c ON c.id = t.category_id`

// GetTransactions returns transactions newest first, each with its category embedded.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var (
		conditions []string
		args       []any
	)
	if filter.StartDate != nil {
		conditions = append(conditions, "t.date >= ?")
		args = append(args, filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		if filter.StartDate != nil && filter.EndDate.Before(*filter.StartDate) {
			return nil, fmt.Errorf("%w: end date %v is before start date %v", ErrInvalidDateRange, *filter.EndDate, *filter.StartDate)
		}
		conditions = append(conditions, "t.date <= ?")
		args = append(args, filter.EndDate.UTC())
	}
	if filter.CategoryID > 0 {
		conditions = append(conditions, "t.category_id = ?")
		args = append(args, filter.CategoryID)
	}

	query := transactionSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.date DESC, t.id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("retrieved transactions", "count", len(transactions), "category_id", filter.CategoryID)
	return transactions, nil
}

// CreateTransaction stores a single transaction and returns it with its id and category.
// A transaction identical to a stored one fails with common.ErrDuplicateEntry.
func (s *SQLiteStorage) CreateTransaction(ctx context.Context, txn model.Transaction) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateTransaction(txn); err != nil {
		return nil, err
	}

	cat, err := s.requireCategory(ctx, s.db, txn.CategoryID)
	if err != nil {
		return nil, err
	}

	txn.Date = txn.Date.UTC()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (hash, date, note, type, amount, category_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		txn.GenerateHash(), txn.Date, txn.Note, string(txn.Type), txn.Amount, txn.CategoryID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("transaction on %s for %.2f: %w", txn.Date.Format("2006-01-02"), txn.Amount, common.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction ID: %w", err)
	}

	txn.ID = int(id)
	txn.Category = *cat
	return &txn, nil
}

// SaveTransactions stores a batch in one database transaction, silently
// skipping ones already stored. It returns how many were inserted.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateTransactions(transactions); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted, err := s.saveTransactionsTx(ctx, tx, transactions)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transactions: %w", err)
	}

	slog.Info("saved transactions", "inserted", inserted, "skipped", len(transactions)-inserted)
	return inserted, nil
}

func (s *SQLiteStorage) saveTransactionsTx(ctx context.Context, tx *sql.Tx, transactions []model.Transaction) (int, error) {
	known := make(map[int]bool)
	for _, txn := range transactions {
		if known[txn.CategoryID] {
			continue
		}
		if _, err := s.requireCategory(ctx, tx, txn.CategoryID); err != nil {
			return 0, err
		}
		known[txn.CategoryID] = true
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (hash, date, note, type, amount, category_id)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, txn := range transactions {
		result, execErr := stmt.ExecContext(ctx,
			txn.GenerateHash(),
			txn.Date.UTC(),
			txn.Note,
			string(txn.Type),
			txn.Amount,
			txn.CategoryID,
		)
		if execErr != nil {
			return 0, fmt.Errorf("failed to insert transaction: %w", execErr)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			inserted++
		}
	}
	return inserted, nil
}

// requireCategory loads the referenced category or reports a validation error.
func (s *SQLiteStorage) requireCategory(ctx context.Context, q queryable, id int) (*model.Category, error) {
	cat, err := getCategoryByID(ctx, q, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, validationError(ErrUnknownCategory, "categoryId", fmt.Sprintf("category %d does not exist", id))
	}
	return cat, err
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var (
		txn       model.Transaction
		txnType   string
		catType   string
		createdAt sql.NullTime
	)
	err := row.Scan(
		&txn.ID, &txn.Date, &txn.Note, &txnType, &txn.Amount, &txn.CategoryID,
		&txn.Category.ID, &txn.Category.Name, &catType, &txn.Category.Icon, &txn.Category.Color, &createdAt,
	)
	if err != nil {
		return txn, fmt.Errorf("failed to scan transaction: %w", err)
	}
	txn.Type = model.EntryType(txnType)
	txn.Category.Type = model.EntryType(catType)
	if createdAt.Valid {
		txn.Category.CreatedAt = createdAt.Time
	}
	return txn, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
