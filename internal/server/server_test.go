package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Veraticus/fintracker/internal/model"
	"github.com/Veraticus/fintracker/internal/service"
	"github.com/Veraticus/fintracker/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))

	return New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func doJSON[T any](t *testing.T, h http.Handler, method, path string, body any, wantStatus int) T {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, wantStatus, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

type errorPayload struct {
	Error string `json:"error"`
}

func TestCategoryEndpoints(t *testing.T) {
	h := newTestServer(t).Handler()

	empty := doJSON[[]model.Category](t, h, http.MethodGet, "/api/categories", nil, http.StatusOK)
	assert.Empty(t, empty)

	created := doJSON[model.Category](t, h, http.MethodPost, "/api/categories",
		model.Category{Name: "Food", Type: model.EntryTypeExpense, Icon: "🍔", Color: "#FF0000"}, http.StatusCreated)
	assert.Equal(t, 1, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	doJSON[model.Category](t, h, http.MethodPost, "/api/categories",
		model.Category{Name: "Salary", Type: model.EntryTypeIncome}, http.StatusCreated)

	list := doJSON[[]model.Category](t, h, http.MethodGet, "/api/categories", nil, http.StatusOK)
	require.Len(t, list, 2)
	assert.Equal(t, "Food", list[0].Name)
	assert.Equal(t, "Salary", list[1].Name)
}

func TestCreateCategoryRejectsUnknownType(t *testing.T) {
	h := newTestServer(t).Handler()

	got := doJSON[errorPayload](t, h, http.MethodPost, "/api/categories",
		model.Category{Name: "Food", Type: "Expense"}, http.StatusBadRequest)
	assert.Equal(t, "type: unknown category type", got.Error)
}

func TestCreateCategoryMalformedBody(t *testing.T) {
	h := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid JSON body"}`, rec.Body.String())
}

func TestTransactionEndpoints(t *testing.T) {
	h := newTestServer(t).Handler()
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	food := doJSON[model.Category](t, h, http.MethodPost, "/api/categories",
		model.Category{Name: "Food", Type: model.EntryTypeExpense}, http.StatusCreated)
	salary := doJSON[model.Category](t, h, http.MethodPost, "/api/categories",
		model.Category{Name: "Salary", Type: model.EntryTypeIncome}, http.StatusCreated)

	created := doJSON[model.Transaction](t, h, http.MethodPost, "/api/transactions",
		model.Transaction{Type: model.EntryTypeExpense, Amount: 25, CategoryID: food.ID, Date: date}, http.StatusCreated)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Food", created.Category.Name)

	// category given only as an embedded object
	doJSON[model.Transaction](t, h, http.MethodPost, "/api/transactions",
		model.Transaction{Type: model.EntryTypeIncome, Amount: 900, Category: salary, Date: date.AddDate(0, 0, 1)}, http.StatusCreated)

	all := doJSON[[]model.Transaction](t, h, http.MethodGet, "/api/transactions", nil, http.StatusOK)
	require.Len(t, all, 2)
	assert.Equal(t, "Salary", all[0].Category.Name, "newest first")

	foodOnly := doJSON[[]model.Transaction](t, h, http.MethodGet, "/api/transactions?categoryId=1", nil, http.StatusOK)
	require.Len(t, foodOnly, 1)
	assert.Equal(t, 25.0, foodOnly[0].Amount)

	ranged := doJSON[[]model.Transaction](t, h, http.MethodGet, "/api/transactions?from=2025-06-11&to=2025-06-30", nil, http.StatusOK)
	require.Len(t, ranged, 1)
	assert.Equal(t, 900.0, ranged[0].Amount)

	dup := doJSON[errorPayload](t, h, http.MethodPost, "/api/transactions",
		model.Transaction{Type: model.EntryTypeExpense, Amount: 25, CategoryID: food.ID, Date: date}, http.StatusConflict)
	assert.Equal(t, "duplicate entry", dup.Error)
}

func TestTransactionValidation(t *testing.T) {
	h := newTestServer(t).Handler()
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	food := doJSON[model.Category](t, h, http.MethodPost, "/api/categories",
		model.Category{Name: "Food", Type: model.EntryTypeExpense}, http.StatusCreated)

	tests := []struct {
		name string
		txn  model.Transaction
		want string
	}{
		{"non-positive amount", model.Transaction{Type: model.EntryTypeExpense, Amount: 0, CategoryID: food.ID, Date: date}, "amount: must be positive"},
		{"unknown category", model.Transaction{Type: model.EntryTypeExpense, Amount: 1, CategoryID: 99, Date: date}, "categoryId: category 99 does not exist"},
		{"unknown type", model.Transaction{Type: "Transfer", Amount: 1, CategoryID: food.ID, Date: date}, "type: unknown transaction type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := doJSON[errorPayload](t, h, http.MethodPost, "/api/transactions", tt.txn, http.StatusBadRequest)
			assert.Equal(t, tt.want, got.Error)
		})
	}

	bad := doJSON[errorPayload](t, h, http.MethodGet, "/api/transactions?categoryId=abc", nil, http.StatusBadRequest)
	assert.Equal(t, "categoryId: must be a positive integer", bad.Error)
}

func TestGoalEndpoints(t *testing.T) {
	h := newTestServer(t).Handler()

	created := doJSON[model.SavingsGoal](t, h, http.MethodPost, "/api/goals",
		model.SavingsGoal{Name: "Laptop", TargetAmount: 1200, CurrentAmount: 300}, http.StatusCreated)
	assert.Equal(t, 1, created.ID)
	assert.InDelta(t, 0.25, created.Progress(), 1e-9)

	goals := doJSON[[]model.SavingsGoal](t, h, http.MethodGet, "/api/goals", nil, http.StatusOK)
	require.Len(t, goals, 1)

	got := doJSON[errorPayload](t, h, http.MethodPost, "/api/goals", model.SavingsGoal{Name: "Car"}, http.StatusBadRequest)
	assert.Equal(t, "targetAmount: must be positive", got.Error)
}

func TestHealth(t *testing.T) {
	h := newTestServer(t).Handler()

	got := doJSON[map[string]any](t, h, http.MethodGet, "/api/health", nil, http.StatusOK)
	assert.Equal(t, "ok", got["status"])
	assert.EqualValues(t, storage.ExpectedSchemaVersion, got["schemaVersion"])
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodDelete, "/api/categories", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

type failingStorage struct {
	service.Storage
	panic bool
}

func (f failingStorage) GetGoals(context.Context) ([]model.SavingsGoal, error) {
	if f.panic {
		panic("boom")
	}
	return nil, errors.New("disk I/O error")
}

func TestInternalErrorsAreHidden(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, panics := range []bool{false, true} {
		h := New(failingStorage{panic: panics}, logger).Handler()
		got := doJSON[errorPayload](t, h, http.MethodGet, "/api/goals", nil, http.StatusInternalServerError)
		assert.Equal(t, "internal server error", got.Error)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
