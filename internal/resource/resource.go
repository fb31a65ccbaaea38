// Package resource models the tri-state result of an asynchronous operation.
//
// A repository answers every request with a Stream that emits Loading first
// and then exactly one terminal value, Success or Error. Consumers fold the
// emissions into their own state; a Resource never changes once built.
package resource

import (
	"fmt"

	"github.com/Veraticus/fintracker/internal/common"
)

// Kind tags which variant a Resource holds.
type Kind int

const (
	// KindLoading means the operation is in flight.
	KindLoading Kind = iota
	// KindSuccess carries the operation's data.
	KindSuccess
	// KindError carries a displayable message and the underlying cause.
	KindError
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "Loading"
	case KindSuccess:
		return "Success"
	case KindError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Resource is a tagged union of Loading, Success(data) and Error(message).
// The zero value is Loading.
type Resource[T any] struct {
	data    T
	cause   error
	message string
	kind    Kind
}

// Stream is the receive side of a repository operation.
type Stream[T any] <-chan Resource[T]

// Loading builds the in-flight variant.
func Loading[T any]() Resource[T] {
	return Resource[T]{kind: KindLoading}
}

// Success builds the variant holding data.
func Success[T any](data T) Resource[T] {
	return Resource[T]{kind: KindSuccess, data: data}
}

// Error builds the failure variant. cause may be nil.
func Error[T any](message string, cause error) Resource[T] {
	return Resource[T]{kind: KindError, message: message, cause: cause}
}

// FromError builds the failure variant with the user-facing message of err.
func FromError[T any](err error) Resource[T] {
	return Error[T](common.UserMessage(err), err)
}

// Kind reports the active variant.
func (r Resource[T]) Kind() Kind { return r.kind }

// IsLoading reports whether r is Loading.
func (r Resource[T]) IsLoading() bool { return r.kind == KindLoading }

// IsSuccess reports whether r is Success.
func (r Resource[T]) IsSuccess() bool { return r.kind == KindSuccess }

// IsError reports whether r is Error.
func (r Resource[T]) IsError() bool { return r.kind == KindError }

// IsTerminal reports whether r ends its stream.
func (r Resource[T]) IsTerminal() bool { return r.kind != KindLoading }

// Data returns the payload and whether r is Success.
func (r Resource[T]) Data() (T, bool) {
	return r.data, r.kind == KindSuccess
}

// Message returns the error text; empty unless r is Error.
func (r Resource[T]) Message() string { return r.message }

// Cause returns the underlying error, if any.
func (r Resource[T]) Cause() error { return r.cause }

func (r Resource[T]) String() string {
	switch r.kind {
	case KindSuccess:
		return fmt.Sprintf("Success(%v)", r.data)
	case KindError:
		return fmt.Sprintf("Error(%s)", r.message)
	default:
		return r.kind.String()
	}
}
