package resource

import "context"

// Call runs fn on its own goroutine and reports it as a stream: Loading,
// then Success or Error. The channel is closed after the terminal value.
// Once ctx is done nothing further is sent.
func Call[T any](ctx context.Context, fn func(context.Context) (T, error)) Stream[T] {
	out := make(chan Resource[T], 1)

	go func() {
		defer close(out)

		if !send(ctx, out, Loading[T]()) {
			return
		}

		data, err := fn(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			send(ctx, out, FromError[T](err))
			return
		}
		send(ctx, out, Success(data))
	}()

	return out
}

// Of returns a closed stream that replays events. Useful for fakes.
func Of[T any](events ...Resource[T]) Stream[T] {
	out := make(chan Resource[T], len(events))
	for _, ev := range events {
		out <- ev
	}
	close(out)
	return out
}

func send[T any](ctx context.Context, out chan<- Resource[T], r Resource[T]) bool {
	select {
	case out <- r:
		return true
	case <-ctx.Done():
		return false
	}
}
