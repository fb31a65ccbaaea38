package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Veraticus/fintracker/internal/model"
	"github.com/Veraticus/fintracker/internal/remote"
	"github.com/Veraticus/fintracker/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Categories = (*Remote[model.Category])(nil)
var _ API = (*remote.Client)(nil)

func collect[T any](t *testing.T, stream resource.Stream[T]) []resource.Resource[T] {
	t.Helper()
	var out []resource.Resource[T]
	timeout := time.After(2 * time.Second)
	for {
		select {
		case r, ok := <-stream:
			if !ok {
				return out
			}
			out = append(out, r)
		case <-timeout:
			t.Fatal("stream did not close")
			return out
		}
	}
}

func newAPI(t *testing.T, handler http.HandlerFunc) *remote.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := remote.NewClient(remote.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestRemoteFetchAllSuccess(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"Food","type":"Gasto"},{"id":2,"name":"Salary","type":"Ingreso"}]`))
	})

	events := collect(t, NewCategories(api).FetchAll(context.Background()))
	require.Len(t, events, 2)
	assert.True(t, events[0].IsLoading())
	require.True(t, events[1].IsSuccess())
	data, ok := events[1].Data()
	require.True(t, ok)
	assert.Len(t, data, 2)
}

func TestRemoteFetchAllServerError(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"database is locked"}`))
	})

	events := collect(t, NewGoals(api).FetchAll(context.Background()))
	require.Len(t, events, 2)
	require.True(t, events[1].IsError())
	assert.Equal(t, "database is locked", events[1].Message())
}

func TestRemoteCreate(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":5,"amount":10,"type":"Ingreso","categoryId":2,"date":"2025-06-01T00:00:00Z"}`))
	})

	events := collect(t, NewTransactions(api).Create(context.Background(), model.Transaction{Amount: 10}))
	require.Len(t, events, 2)
	require.True(t, events[1].IsSuccess())
	created, ok := events[1].Data()
	require.True(t, ok)
	assert.Equal(t, 5, created.ID)
}

func TestRemoteCancelledEmitsNothingAfter(t *testing.T) {
	started := make(chan struct{})
	api := newAPI(t, func(_ http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	stream := NewCategories(api).FetchAll(ctx)

	first := <-stream
	assert.True(t, first.IsLoading())
	<-started
	cancel()

	events := collect(t, stream)
	assert.Empty(t, events, "no terminal after cancellation")
}
