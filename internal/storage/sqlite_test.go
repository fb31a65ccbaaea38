package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/fintracker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

// Helper function to create a category the tests can attach transactions to.
func createTestCategory(t *testing.T, store *SQLiteStorage, name string, typ model.EntryType) model.Category {
	t.Helper()
	cat, err := store.CreateCategory(context.Background(), model.Category{Name: name, Type: typ, Icon: "•", Color: "#112233"})
	require.NoError(t, err)
	return *cat
}

func TestNewSQLiteStorage(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := NewSQLiteStorage("  ")
		require.ErrorIs(t, err, ErrEmptyString)
	})

	t.Run("creates parent directory", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "a", "b", "fintracker.db")
		store, err := NewSQLiteStorage(dbPath)
		require.NoError(t, err)
		defer store.Close()
		assert.Equal(t, dbPath, store.Path())
	})

	t.Run("in memory", func(t *testing.T) {
		store, err := NewSQLiteStorage(":memory:")
		require.NoError(t, err)
		defer store.Close()
		require.NoError(t, store.Migrate(context.Background()))

		version, err := store.SchemaVersion(context.Background())
		require.NoError(t, err)
		assert.Equal(t, ExpectedSchemaVersion, version)
	})
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
	assert.Equal(t, migrations[len(migrations)-1].Version, ExpectedSchemaVersion)
}

func TestMigrateCreatesIndexes(t *testing.T) {
	store := createTestStorage(t)

	for _, index := range []string{"idx_transactions_date", "idx_transactions_category_id"} {
		var count int
		err := store.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?`, index).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, index)
	}
}

func TestDataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	cat := createTestCategory(t, store, "Food", model.EntryTypeExpense)
	_, err = store.CreateTransaction(ctx, model.Transaction{
		Type: model.EntryTypeExpense, Amount: 9.99, CategoryID: cat.ID, Date: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.Migrate(ctx))

	cats, err := reopened.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Food", cats[0].Name)
}
