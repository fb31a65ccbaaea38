// Package remote is the HTTP client for the fintracker backend API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/fintracker/internal/common"
	"github.com/Veraticus/fintracker/internal/model"
)

// Endpoint paths relative to the base URL.
const (
	CategoriesPath   = "/api/categories"
	TransactionsPath = "/api/transactions"
	GoalsPath        = "/api/goals"
)

const maxErrorBody = 4096

// Config configures a Client.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
}

// Client talks JSON to the backend.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	retry      common.RetryOptions
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the API at cfg.BaseURL.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: api base url is required", common.ErrMissingConfig)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     slog.Default(),
		retry: common.RetryOptions{
			MaxAttempts:  cfg.MaxAttempts,
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2.0,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListCategories returns every category.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	return list[model.Category](ctx, c, CategoriesPath)
}

// CreateCategory stores a category and returns it with its server-assigned id.
func (c *Client) CreateCategory(ctx context.Context, cat model.Category) (model.Category, error) {
	return create(ctx, c, CategoriesPath, cat)
}

// ListTransactions returns every transaction with its category embedded.
func (c *Client) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	return list[model.Transaction](ctx, c, TransactionsPath)
}

// CreateTransaction stores a transaction.
func (c *Client) CreateTransaction(ctx context.Context, txn model.Transaction) (model.Transaction, error) {
	return create(ctx, c, TransactionsPath, txn)
}

// ListGoals returns every savings goal.
func (c *Client) ListGoals(ctx context.Context) ([]model.SavingsGoal, error) {
	return list[model.SavingsGoal](ctx, c, GoalsPath)
}

// CreateGoal stores a savings goal.
func (c *Client) CreateGoal(ctx context.Context, goal model.SavingsGoal) (model.SavingsGoal, error) {
	return create(ctx, c, GoalsPath, goal)
}

// list GETs path, retrying transport and 5xx failures up to MaxAttempts.
func list[E any](ctx context.Context, c *Client, path string) ([]E, error) {
	var items []E
	err := common.WithRetry(ctx, func() error {
		items = nil
		return c.do(ctx, http.MethodGet, path, nil, &items)
	}, c.retry)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []E{}
	}
	return items, nil
}

// create POSTs entity once; creates are never retried.
func create[E any](ctx context.Context, c *Client, path string, entity E) (E, error) {
	var out E
	body, err := json.Marshal(entity)
	if err != nil {
		return out, fmt.Errorf("failed to encode request: %w", err)
	}
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		var zero E
		return zero, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return common.NewTransportError(method+" "+path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return &common.ServerError{StatusCode: resp.StatusCode, Message: "empty response body"}
		}
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) {
			return common.NewTransportError(method+" "+path, err)
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type errorBody struct {
	Error string `json:"error"`
}

// decodeError turns a non-2xx answer into a ServerError, preferring the
// {"error": "..."} message the backend writes.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload errorBody
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return &common.ServerError{StatusCode: resp.StatusCode, Message: payload.Error}
	}

	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &common.ServerError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("server error (%d): %s", resp.StatusCode, msg),
	}
}
