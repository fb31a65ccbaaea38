package controller

import (
	"context"

	"github.com/Veraticus/fintracker/internal/resource"
)

// Start begins consuming the stream returned by open under the operation
// name op, superseding any earlier run of op. open receives a context that
// is cancelled when the run is superseded, finishes, or the controller stops.
//
// Every emission is folded into the state by fold, a pure function, on the
// owner goroutine. If then is not nil it runs on its own goroutine after each
// applied emission; it may call Start or Update. Start returns false if the controller has stopped.
func Start[S, T any](c *Controller[S], op string, open func(context.Context) resource.Stream[T], fold func(S, resource.Resource[T]) S, then func(resource.Resource[T])) bool {
	gen := c.nextGen.Inc()
	runCtx, cancel := context.WithCancel(c.ctx)

	if !c.enqueue(message[S]{kind: msgBegin, op: op, gen: gen, cancel: cancel}) {
		cancel()
		return false
	}

	stream := open(runCtx)
	go consume(c, op, gen, stream, fold, then)
	return true
}

// consume forwards every emission of one run to the owner goroutine, which
// decides whether the run is still current.
func consume[S, T any](c *Controller[S], op string, gen uint64, stream resource.Stream[T], fold func(S, resource.Resource[T]) S, then func(resource.Resource[T])) {
	for {
		select {
		case <-c.ctx.Done():
			return
		case ev, ok := <-stream:
			if !ok {
				return
			}
			msg := message[S]{
				kind:     msgEmit,
				op:       op,
				gen:      gen,
				terminal: ev.IsTerminal(),
				apply: func(s S) S {
					return fold(s, ev)
				},
			}
			if then != nil {
				msg.after = func() { then(ev) }
			}
			if !c.enqueue(msg) {
				return
			}
		}
	}
}
