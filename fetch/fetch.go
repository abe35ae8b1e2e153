// Package fetch wraps one asynchronous producer and exposes its
// data/loading/error state to a presentation layer.
package fetch

import (
	"context"
	"sync"
)

// Producer computes the coordinator's value. It is called once per run.
type Producer[T any] func(ctx context.Context) (T, error)

// State is a snapshot of a coordinator. Loaded reports whether Data holds
// the result of a successful run.
type State[T any] struct {
	Data    T
	Loaded  bool
	Loading bool
	Err     error
}

type options struct {
	autoRun bool
}

type Option func(*options)

// WithAutoRun runs the producer once, in the background, as soon as the
// coordinator is created.
func WithAutoRun() Option {
	return func(o *options) {
		o.autoRun = true
	}
}

// Coordinator tracks the latest run of a producer. Every Refetch and Reset
// starts a new generation; a run that resolves after its generation was
// superseded does not touch the state.
type Coordinator[T any] struct {
	producer Producer[T]

	mu          sync.Mutex
	state       State[T]
	generation  uint64
	subscribers map[int]func(State[T])
	nextSubID   int
}

func New[T any](ctx context.Context, producer Producer[T], opts ...Option) *Coordinator[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Coordinator[T]{
		producer:    producer,
		subscribers: make(map[int]func(State[T])),
	}
	if o.autoRun {
		gen := c.begin()
		go func() {
			_, _ = c.run(ctx, gen)
		}()
	}
	return c
}

// Refetch runs the producer and returns its result. The error is recorded
// in the state and also returned. The result reaches the state only if no
// newer Refetch or Reset happened while the producer was running.
func (c *Coordinator[T]) Refetch(ctx context.Context) (T, error) {
	return c.run(ctx, c.begin())
}

// Reset clears data and error and stops reporting loading. An in-flight run
// keeps going but its result is discarded.
func (c *Coordinator[T]) Reset() {
	c.mu.Lock()
	c.generation++
	c.state = State[T]{}
	snapshot := c.state
	c.mu.Unlock()

	c.notify(snapshot)
}

func (c *Coordinator[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive every state change. Callbacks run on the
// goroutine that caused the change. The returned func unsubscribes.
func (c *Coordinator[T]) Subscribe(fn func(State[T])) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

func (c *Coordinator[T]) begin() uint64 {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.state.Loading = true
	c.state.Err = nil
	snapshot := c.state
	c.mu.Unlock()

	c.notify(snapshot)
	return gen
}

func (c *Coordinator[T]) run(ctx context.Context, gen uint64) (T, error) {
	data, err := c.producer(ctx)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return data, err
	}
	if err != nil {
		c.state.Err = err
	} else {
		c.state.Data = data
		c.state.Loaded = true
	}
	c.state.Loading = false
	snapshot := c.state
	c.mu.Unlock()

	c.notify(snapshot)
	return data, err
}

func (c *Coordinator[T]) notify(s State[T]) {
	c.mu.Lock()
	subs := make([]func(State[T]), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}
