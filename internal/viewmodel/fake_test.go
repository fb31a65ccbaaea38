package viewmodel

import (
	"context"
	"sync"

	"github.com/Veraticus/fintracker/internal/resource"
	"go.uber.org/atomic"
)

// fakeRepo scripts repository answers per call number (starting at 1).
type fakeRepo[E any] struct {
	fetch       func(ctx context.Context, call int) resource.Stream[[]E]
	create      func(ctx context.Context, entity E) resource.Stream[E]
	fetchCalls  *atomic.Int32
	createCalls *atomic.Int32
	created     []E
	mu          sync.Mutex
}

func newFakeRepo[E any]() *fakeRepo[E] {
	return &fakeRepo[E]{
		fetchCalls:  atomic.NewInt32(0),
		createCalls: atomic.NewInt32(0),
		fetch: func(context.Context, int) resource.Stream[[]E] {
			return resource.Of(resource.Loading[[]E](), resource.Success([]E{}))
		},
	}
}

func (f *fakeRepo[E]) FetchAll(ctx context.Context) resource.Stream[[]E] {
	call := int(f.fetchCalls.Inc())
	return f.fetch(ctx, call)
}

func (f *fakeRepo[E]) Create(ctx context.Context, entity E) resource.Stream[E] {
	f.createCalls.Inc()
	f.mu.Lock()
	f.created = append(f.created, entity)
	f.mu.Unlock()
	return f.create(ctx, entity)
}

func (f *fakeRepo[E]) createdRequests() []E {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]E(nil), f.created...)
}
