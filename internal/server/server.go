// Package server exposes the storage layer as the JSON API the clients sync against.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Veraticus/fintracker/internal/common"
	"github.com/Veraticus/fintracker/internal/model"
	"github.com/Veraticus/fintracker/internal/service"
)

const maxBodyBytes = 1 << 20

// Server serves the /api endpoints.
type Server struct {
	storage service.Storage
	logger  *slog.Logger
	handler http.Handler
}

// New wires the routes over storage.
func New(storage service.Storage, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{storage: storage, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/goals", s.handleListGoals)
	mux.HandleFunc("POST /api/goals", s.handleCreateGoal)

	s.handler = s.recoverMiddleware(s.loggingMiddleware(mux))
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down API server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	version, err := s.storage.SchemaVersion(r.Context())
	if err != nil {
		s.writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "schemaVersion": version})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.storage.GetCategories(r.Context())
	if err != nil {
		s.writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var input model.Category
	if !decodeBody(w, r, &input) {
		return
	}
	created, err := s.storage.CreateCategory(r.Context(), input)
	if err != nil {
		s.writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTransactionFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	txns, err := s.storage.GetTransactions(r.Context(), filter)
	if err != nil {
		s.writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var input model.Transaction
	if !decodeBody(w, r, &input) {
		return
	}
	if input.CategoryID == 0 {
		input.CategoryID = input.Category.ID
	}
	created, err := s.storage.CreateTransaction(r.Context(), input)
	if err != nil {
		s.writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.storage.GetGoals(r.Context())
	if err != nil {
		s.writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var input model.SavingsGoal
	if !decodeBody(w, r, &input) {
		return
	}
	created, err := s.storage.CreateGoal(r.Context(), input)
	if err != nil {
		s.writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func parseTransactionFilter(r *http.Request) (service.TransactionFilter, error) {
	var filter service.TransactionFilter
	query := r.URL.Query()

	if raw := query.Get("categoryId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return filter, common.NewValidationError("categoryId", "must be a positive integer")
		}
		filter.CategoryID = id
	}
	for key, target := range map[string]**time.Time{"from": &filter.StartDate, "to": &filter.EndDate} {
		raw := query.Get(key)
		if raw == "" {
			continue
		}
		parsed, err := parseDateValue(raw)
		if err != nil {
			return filter, common.NewValidationError(key, "expected YYYY-MM-DD or RFC3339")
		}
		*target = &parsed
	}
	return filter, nil
}

func parseDateValue(raw string) (time.Time, error) {
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeStorageError maps storage failures onto status codes. Validation
// messages go back verbatim; anything unexpected is logged and hidden.
func (s *Server) writeStorageError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *common.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, common.ErrDuplicateEntry):
		writeError(w, http.StatusConflict, "duplicate entry")
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
