package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/fintracker/internal/common"
	"github.com/Veraticus/fintracker/internal/model"
)

const categoryColumns = `id, name, type, icon, color, created_at`

// GetCategories returns every category in insertion order.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		cat, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByID returns a category by id, or common.ErrNotFound.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, id int) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getCategoryByID(ctx, s.db, id)
}

func getCategoryByID(ctx context.Context, q queryable, id int) (*model.Category, error) {
	row := q.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// CreateCategory stores cat and returns it with its assigned id and creation time.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, cat model.Category) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateCategory(cat); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, type, icon, color, created_at) VALUES (?, ?, ?, ?, ?)`,
		cat.Name, string(cat.Type), cat.Icon, cat.Color, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category ID: %w", err)
	}

	cat.ID = int(id)
	cat.CreatedAt = now

	slog.Info("created category", "id", cat.ID, "name", cat.Name, "type", cat.Type)
	return &cat, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (model.Category, error) {
	var (
		cat       model.Category
		typ       string
		createdAt sql.NullTime
	)
	if err := row.Scan(&cat.ID, &cat.Name, &typ, &cat.Icon, &cat.Color, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cat, err
		}
		return cat, fmt.Errorf("failed to scan category: %w", err)
	}
	cat.Type = model.EntryType(typ)
	if createdAt.Valid {
		cat.CreatedAt = createdAt.Time
	}
	return cat, nil
}
