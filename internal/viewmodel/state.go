// Package viewmodel holds the per-screen state snapshots, the controllers that
// own them, and the pure projections screens render from.
package viewmodel

import (
	"github.com/Veraticus/fintracker/internal/resource"
)

// Operation names; a new run of a name supersedes the previous one.
const (
	opFetch  = "fetch"
	opCreate = "create"
)

// ListState is the part every list screen shares.
// Error is empty when there is nothing to show.
type ListState[E any] struct {
	Error     string
	Items     []E
	IsLoading bool
}

// NewListState returns the documented defaults: no items, not loading, no error.
func NewListState[E any]() ListState[E] {
	return ListState[E]{Items: []E{}}
}

// HasError returns true if the screen should show an error.
func (s ListState[E]) HasError() bool {
	return s.Error != ""
}

// IsEmpty returns true if there is nothing to list.
func (s ListState[E]) IsEmpty() bool {
	return len(s.Items) == 0
}

// FoldList folds a fetch-all emission, replacing the items on success.
// Loading leaves any previous error in place.
func FoldList[E any](s ListState[E], r resource.Resource[[]E]) ListState[E] {
	switch r.Kind() {
	case resource.KindLoading:
		s.IsLoading = true
	case resource.KindSuccess:
		data, _ := r.Data()
		if data == nil {
			data = []E{}
		}
		s.Items = data
		s.IsLoading = false
		s.Error = ""
	case resource.KindError:
		s.IsLoading = false
		s.Error = r.Message()
	}
	return s
}

// FoldAppend folds a create emission, appending the created entity on success.
func FoldAppend[E any](s ListState[E], r resource.Resource[E]) ListState[E] {
	switch r.Kind() {
	case resource.KindLoading:
		s.IsLoading = true
	case resource.KindSuccess:
		created, _ := r.Data()
		items := make([]E, 0, len(s.Items)+1)
		items = append(items, s.Items...)
		s.Items = append(items, created)
		s.IsLoading = false
		s.Error = ""
	case resource.KindError:
		s.IsLoading = false
		s.Error = r.Message()
	}
	return s
}
