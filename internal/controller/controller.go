// Package controller turns asynchronous repository streams into a single
// observable, immutable state value.
//
// Each Controller owns one state value of type S and one goroutine. Every
// mutation, whether a stream emission folded in by Start or a user action
// applied by Update, travels over the controller's inbox and is applied on
// that goroutine, so transitions are serialized without locks. Readers call
// State or Subscribe and only ever see whole snapshots.
//
// Operations are named. Starting an operation again supersedes the previous
// run of the same name: the old run's context is cancelled and any emission
// it still delivers is dropped. Supersession is decided by generation
// numbers checked on the owner goroutine, not by timing.
package controller

import (
	"context"
	"log/slog"
	"sync"

	"go.uber.org/atomic"
)

const defaultInboxSize = 16

type options struct {
	logger    *slog.Logger
	inboxSize int
}

// Option configures a Controller.
type Option func(*options)

// WithLogger sets the logger used for supersession and drop events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithInboxSize sets the inbox buffer length.
func WithInboxSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.inboxSize = n
		}
	}
}

type messageKind int

const (
	msgBegin messageKind = iota
	msgEmit
	msgUpdate
)

type message[S any] struct {
	apply    func(S) S
	after    func()
	cancel   context.CancelFunc
	reply    chan S
	op       string
	gen      uint64
	kind     messageKind
	terminal bool
}

type run struct {
	cancel context.CancelFunc
	gen    uint64
}

// Controller owns a state value of type S.
type Controller[S any] struct {
	ctx      context.Context
	snapshot *atomic.Pointer[S]
	nextGen  *atomic.Uint64
	dropped  *atomic.Uint64
	cancel   context.CancelFunc
	inbox    chan message[S]
	done     chan struct{}
	logger   *slog.Logger
	subs     map[uint64]chan S
	name     string
	nextSub  uint64
	subsMu   sync.Mutex
	closed   bool
}

// New creates a controller holding initial and starts its owner goroutine.
// The controller lives until ctx is done or Close is called.
func New[S any](ctx context.Context, name string, initial S, opts ...Option) *Controller[S] {
	o := options{logger: slog.Default(), inboxSize: defaultInboxSize}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(ctx)
	c := &Controller[S]{
		ctx:      ctx,
		cancel:   cancel,
		snapshot: atomic.NewPointer(&initial),
		nextGen:  atomic.NewUint64(0),
		dropped:  atomic.NewUint64(0),
		inbox:    make(chan message[S], o.inboxSize),
		done:     make(chan struct{}),
		logger:   o.logger.With("controller", name),
		subs:     make(map[uint64]chan S),
		name:     name,
	}

	go c.loop(initial)
	return c
}

// State returns the latest published snapshot.
func (c *Controller[S]) State() S {
	return *c.snapshot.Load()
}

// Update applies fn to the current state on the owner goroutine, publishes
// the result and returns it. After Close it returns the last snapshot
// without applying fn. fn must not call back into the controller.
func (c *Controller[S]) Update(fn func(S) S) S {
	reply := make(chan S, 1)
	if !c.enqueue(message[S]{kind: msgUpdate, apply: fn, reply: reply}) {
		return c.State()
	}

	select {
	case s := <-reply:
		return s
	case <-c.done:
		return c.State()
	}
}

// Subscribe returns a channel that always holds the most recent snapshot
// not yet received. The current state is delivered immediately. Slow
// readers skip intermediate snapshots rather than block the controller.
// The channel is closed by the returned cancel func or when the controller stops.
func (c *Controller[S]) Subscribe() (<-chan S, func()) {
	ch := make(chan S, 1)

	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	ch <- c.State()
	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	return ch, func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

// Dropped returns how many emissions from superseded runs were discarded.
func (c *Controller[S]) Dropped() uint64 {
	return c.dropped.Load()
}

// Done is closed once the owner goroutine has stopped.
func (c *Controller[S]) Done() <-chan struct{} {
	return c.done
}

// Close stops the controller, cancels every in-flight run and waits for the
// owner goroutine to exit.
func (c *Controller[S]) Close() {
	c.cancel()
	<-c.done
}

func (c *Controller[S]) enqueue(msg message[S]) bool {
	if c.ctx.Err() != nil {
		return false
	}
	select {
	case c.inbox <- msg:
		return true
	case <-c.ctx.Done():
		return false
	}
}

func (c *Controller[S]) loop(state S) {
	active := make(map[string]run)

	defer func() {
		for _, r := range active {
			r.cancel()
		}
		c.closeSubscribers()
		close(c.done)
	}()

	for {
		select {
		case <-c.ctx.Done():
			return

		case msg := <-c.inbox:
			switch msg.kind {
			case msgBegin:
				if prev, ok := active[msg.op]; ok {
					prev.cancel()
					c.logger.Debug("superseded operation", "op", msg.op, "old_gen", prev.gen, "new_gen", msg.gen)
				}
				active[msg.op] = run{gen: msg.gen, cancel: msg.cancel}

			case msgEmit:
				r, ok := active[msg.op]
				if !ok || r.gen != msg.gen {
					c.dropped.Inc()
					c.logger.Debug("dropped stale emission", "op", msg.op, "gen", msg.gen)
					continue
				}
				state = msg.apply(state)
				c.publish(state)
				if msg.terminal {
					delete(active, msg.op)
					r.cancel()
				}
				if msg.after != nil {
					go msg.after()
				}

			case msgUpdate:
				state = msg.apply(state)
				c.publish(state)
				msg.reply <- state
			}
		}
	}
}

func (c *Controller[S]) publish(state S) {
	c.snapshot.Store(&state)

	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- state
	}
}

func (c *Controller[S]) closeSubscribers() {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	c.closed = true
	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
}
