// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apihook

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gogama/apihook/request"
)

// ErrClosed is returned by trigger functions of a hook that has been
// closed.
var ErrClosed = errors.New("apihook: hook closed")

// A Hook is the request lifecycle machine shared by all the verb hooks.
// R is the type a 2XX response body is decoded into, and E the type a
// non-2XX response body is decoded into.
//
// A Hook owns at most one in-flight request. Triggering a new request
// cancels the in-flight one, and only the most recently triggered
// request is allowed to change the state: the outcome of a superseded
// or cancelled request is discarded.
//
// A Hook is safe for concurrent use by multiple goroutines. Most
// callers use one of the verb hooks (Get, Post, Put, Delete, Patch,
// Query) rather than a Hook directly.
type Hook[R, E any] struct {
	cfg     config
	ctx     context.Context
	stop    context.CancelFunc
	unwatch func() bool

	mu       sync.Mutex
	state    State[R, E]
	cur      *call
	closed   bool
	subs     []subscriber[R, E]
	nextSub  int
	pending  []State[R, E]
	draining bool
}

// call is the cancellation handle of the in-flight request.
type call struct {
	attempt *request.Attempt
	cancel  context.CancelFunc
	done    chan struct{}
}

type subscriber[R, E any] struct {
	id int
	f  func(State[R, E])
}

// NewHook returns a new idle Hook. If the hook was given a parent
// context with WithContext, the hook closes itself when that context
// is done.
func NewHook[R, E any](opts ...Option) *Hook[R, E] {
	cfg := newConfig(opts)
	ctx, stop := context.WithCancel(cfg.ctx)
	h := &Hook[R, E]{
		cfg:  cfg,
		ctx:  ctx,
		stop: stop,
	}
	h.unwatch = context.AfterFunc(cfg.ctx, h.Close)
	return h
}

// Trigger starts a request with the given method, URL, and per-call
// options, and returns immediately. A nil body means no request body;
// any other body is serialized as described on Post.
//
// If a request is already in flight, it is cancelled first and its
// outcome will be discarded. The state moves to Loading, or directly
// to Error with a KindRequest failure if the request cannot be built.
//
// Trigger returns ErrClosed if the hook has been closed, or its parent
// context is done, and nil otherwise. The body is not read if the hook
// is already closed.
func (h *Hook[R, E]) Trigger(method, url string, init *Init, body interface{}) error {
	if h.Closed() {
		return ErrClosed
	}
	p, err := h.plan(method, url, init, body)

	h.mu.Lock()
	if h.closedLocked() {
		h.mu.Unlock()
		return ErrClosed
	}
	h.releaseLocked()
	if err != nil {
		h.setLocked(errorState[R, E](&Failure[E]{Kind: KindRequest, Err: err}, h.state.httpStatus))
		h.mu.Unlock()
		h.drain()
		return nil
	}
	ctx, cancel := context.WithCancel(h.ctx)
	c := &call{
		attempt: request.NewAttempt(p),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	h.cur = c
	h.setLocked(loadingState[R, E](h.state.httpStatus))
	h.mu.Unlock()
	h.drain()

	go h.run(ctx, c)
	return nil
}

func (h *Hook[R, E]) plan(method, url string, init *Init, body interface{}) (*request.Plan, error) {
	b, isJSON, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	p, err := request.NewPlan(method, url, b)
	if err != nil {
		return nil, err
	}
	p.Resolve(h.cfg.base)
	p.Header.Set("Accept", "application/json")
	if isJSON {
		p.Header.Set("Content-Type", "application/json")
	}
	p.Apply(h.cfg.init.Merge(init))
	return p, nil
}

func (h *Hook[R, E]) run(ctx context.Context, c *call) {
	defer c.cancel()

	a := c.attempt
	send(ctx, h.cfg.doer, h.cfg.handlers, a)
	next := settle[R, E](a)
	a.End = time.Now()

	h.mu.Lock()
	if h.cur != c {
		h.mu.Unlock()
		h.discard(a)
		return
	}
	if h.closedLocked() {
		h.mu.Unlock()
		h.stop()
		h.discard(a)
		return
	}
	h.cur = nil
	close(c.done)
	h.setLocked(next)
	h.mu.Unlock()
	h.drain()
	h.cfg.handlers.run(AfterSettle, a)
}

func (h *Hook[R, E]) discard(a *request.Attempt) {
	a.Discarded = true
	h.cfg.handlers.run(AfterDiscard, a)
}

// settle computes the state an attempt settles into.
func settle[R, E any](a *request.Attempt) State[R, E] {
	status := a.StatusCode()
	if a.Err != nil {
		return errorState[R, E](&Failure[E]{
			Kind:       KindNetwork,
			StatusCode: status,
			Err:        a.Err,
		}, status)
	}
	if !a.Success() {
		return errorState[R, E](&Failure[E]{
			Kind:       KindHTTP,
			StatusCode: status,
			Body:       decodeError[E](a.Body),
			Raw:        a.Body,
		}, status)
	}
	r, err := decodeResponse[R](a.Body)
	if err != nil {
		a.DecodeErr = err
		return errorState[R, E](&Failure[E]{
			Kind:       KindParse,
			StatusCode: status,
			Raw:        a.Body,
			Err:        err,
		}, status)
	}
	return successState[R, E](r, status)
}

// Cancel aborts the in-flight request, if any, and returns the hook to
// the Idle state. The outcome of the aborted request is discarded. The
// HTTP status of the last completed response is kept.
//
// If no request is in flight, Cancel does nothing.
func (h *Hook[R, E]) Cancel() {
	h.mu.Lock()
	if h.cur == nil {
		h.mu.Unlock()
		return
	}
	h.releaseLocked()
	h.setLocked(idleState[R, E](h.state.httpStatus))
	h.mu.Unlock()
	h.drain()
}

// Reset aborts the in-flight request, if any, and returns the hook to
// the state it had when it was created.
func (h *Hook[R, E]) Reset() {
	h.mu.Lock()
	if h.closedLocked() {
		h.mu.Unlock()
		return
	}
	h.releaseLocked()
	h.setLocked(State[R, E]{})
	h.mu.Unlock()
	h.drain()
}

// Close disposes of the hook. It aborts the in-flight request, if any,
// and guarantees its outcome is never written to the state. Subscribers
// are dropped without being notified, and later trigger calls return
// ErrClosed. Close is idempotent.
func (h *Hook[R, E]) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closeLocked()
	h.mu.Unlock()
	h.unwatch()
	h.stop()
}

// Closed reports whether the hook has been closed, either by Close or
// because its parent context is done.
func (h *Hook[R, E]) Closed() bool {
	h.mu.Lock()
	closed := h.closedLocked()
	h.mu.Unlock()
	if closed {
		h.stop()
	}
	return closed
}

// closedLocked reports whether the hook is closed, closing it first if
// the parent context is done. h.mu must be held.
func (h *Hook[R, E]) closedLocked() bool {
	if !h.closed && h.cfg.ctx.Err() != nil {
		h.closeLocked()
	}
	return h.closed
}

// closeLocked disposes of the hook without notifying subscribers.
// h.mu must be held, and h.stop should be called after unlocking.
func (h *Hook[R, E]) closeLocked() {
	h.closed = true
	h.releaseLocked()
	h.state = idleState[R, E](h.state.httpStatus)
	h.subs = nil
	h.pending = nil
}

// State returns a snapshot of the current state.
func (h *Hook[R, E]) State() State[R, E] {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Subscribe registers f to be called with the new state after every
// state transition, and returns a function that unregisters it.
//
// Calls to subscribers are serialized and made in transition order,
// never while the hook's lock is held, so f may call back into the
// hook (for example to trigger a follow-up request). f must not block
// for long, since it delays delivery of later states.
func (h *Hook[R, E]) Subscribe(f func(State[R, E])) (unsubscribe func()) {
	if f == nil {
		panic("apihook: nil subscriber")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closedLocked() {
		return func() {}
	}
	id := h.nextSub
	h.nextSub++
	h.subs = append(h.subs, subscriber[R, E]{id: id, f: f})
	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for i := range h.subs {
				if h.subs[i].id == id {
					h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Wait blocks until no request is in flight, then returns the state.
// If ctx ends first, Wait returns the current state and ctx.Err().
func (h *Hook[R, E]) Wait(ctx context.Context) (State[R, E], error) {
	for {
		h.mu.Lock()
		c, s := h.cur, h.state
		h.mu.Unlock()
		if c == nil {
			return s, nil
		}
		select {
		case <-c.done:
		case <-ctx.Done():
			return h.State(), ctx.Err()
		}
	}
}

// releaseLocked cancels the in-flight request, if any, and gives up
// ownership of it so that its outcome is discarded. h.mu must be held.
func (h *Hook[R, E]) releaseLocked() {
	if h.cur == nil {
		return
	}
	h.cur.cancel()
	close(h.cur.done)
	h.cur = nil
}

// setLocked changes the state and queues it for delivery to
// subscribers. h.mu must be held, and drain must be called after
// unlocking.
func (h *Hook[R, E]) setLocked(s State[R, E]) {
	h.state = s
	if len(h.subs) > 0 {
		h.pending = append(h.pending, s)
	}
}

// drain delivers queued states to subscribers. Only one goroutine
// drains at a time; states queued by other goroutines, or by
// subscribers themselves, are delivered by the draining goroutine.
func (h *Hook[R, E]) drain() {
	h.mu.Lock()
	if h.draining {
		h.mu.Unlock()
		return
	}
	h.draining = true
	finished := false
	defer func() {
		if !finished {
			h.mu.Lock()
			h.draining = false
			h.mu.Unlock()
		}
	}()
	for {
		if len(h.pending) == 0 || h.closed {
			h.draining = false
			finished = true
			h.mu.Unlock()
			return
		}
		s := h.pending[0]
		h.pending = h.pending[1:]
		subs := make([]subscriber[R, E], len(h.subs))
		copy(subs, h.subs)
		h.mu.Unlock()
		for _, sub := range subs {
			sub.f(s)
		}
		h.mu.Lock()
	}
}

// Request holds the arguments of a trigger function for verbs without
// a request body.
type Request struct {
	// URL is the request URL. It may be relative if the hook was built
	// with WithBaseURL.
	URL string
	// Init holds per-call request options. It may be nil.
	Init *Init
}

// BodyRequest holds the arguments of a trigger function for verbs with
// a request body.
type BodyRequest[B any] struct {
	// URL is the request URL. It may be relative if the hook was built
	// with WithBaseURL.
	URL string
	// Init holds per-call request options. It may be nil.
	Init *Init
	// Body is the request payload.
	Body B
}
