package resource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/fintracker/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariants(t *testing.T) {
	loading := Loading[int]()
	assert.True(t, loading.IsLoading())
	assert.False(t, loading.IsTerminal())
	_, ok := loading.Data()
	assert.False(t, ok)

	success := Success(42)
	data, ok := success.Data()
	require.True(t, ok)
	assert.Equal(t, 42, data)
	assert.True(t, success.IsTerminal())
	assert.Empty(t, success.Message())

	cause := errors.New("boom")
	failed := Error[int]("network timeout", cause)
	assert.True(t, failed.IsError())
	assert.Equal(t, "network timeout", failed.Message())
	assert.ErrorIs(t, failed.Cause(), cause)
	_, ok = failed.Data()
	assert.False(t, ok)

	var zero Resource[string]
	assert.Equal(t, KindLoading, zero.Kind())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Loading", KindLoading.String())
	assert.Equal(t, "Success", KindSuccess.String())
	assert.Equal(t, "Error", KindError.String())
	assert.Equal(t, "Unknown(9)", Kind(9).String())
	assert.Equal(t, "Error(oops)", Error[int]("oops", nil).String())
}

func TestFromErrorUsesUserMessage(t *testing.T) {
	r := FromError[int](&common.TransportError{Op: "GET", Timeout: true})
	assert.Equal(t, "network timeout", r.Message())

	r = FromError[int](common.NewUserError("could not save", errors.New("disk full")))
	assert.Equal(t, "could not save", r.Message())
}

func collect[T any](t *testing.T, s Stream[T]) []Resource[T] {
	t.Helper()
	var out []Resource[T]
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-s:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("stream did not close")
		}
	}
}

func TestCallSuccess(t *testing.T) {
	events := collect(t, Call(context.Background(), func(context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	}))

	require.Len(t, events, 2)
	assert.True(t, events[0].IsLoading())
	data, ok := events[1].Data()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, data)
}

func TestCallError(t *testing.T) {
	events := collect(t, Call(context.Background(), func(context.Context) (int, error) {
		return 0, &common.ServerError{StatusCode: 500, Message: "database unavailable"}
	}))

	require.Len(t, events, 2)
	assert.True(t, events[0].IsLoading())
	assert.True(t, events[1].IsError())
	assert.Equal(t, "database unavailable", events[1].Message())
}

func TestCallStopsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})

	stream := Call(ctx, func(context.Context) (int, error) {
		<-release
		return 1, nil
	})

	first := <-stream
	assert.True(t, first.IsLoading())

	cancel()
	close(release)

	events := collect(t, stream)
	assert.Empty(t, events, "no emission after the consumer abandons the stream")
}

func TestOf(t *testing.T) {
	events := collect(t, Of(Loading[int](), Success(3)))
	require.Len(t, events, 2)
	assert.True(t, events[1].IsSuccess())
}
