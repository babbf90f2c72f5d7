// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apihook

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gogama/apihook/request"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockHTTPDoer struct {
	mock.Mock
}

func newMockHTTPDoer(t *testing.T) *mockHTTPDoer {
	m := &mockHTTPDoer{}
	m.Test(t)
	return m
}

func (m *mockHTTPDoer) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	err := args.Error(1)
	if resp, ok := args.Get(0).(*http.Response); ok {
		return resp, err
	}
	return nil, err
}

type mockReadCloser struct {
	mock.Mock
}

func newMockReadCloser(t *testing.T) *mockReadCloser {
	m := &mockReadCloser{}
	m.Test(t)
	return m
}

func (m *mockReadCloser) Read(p []byte) (n int, err error) {
	args := m.Called(p)
	n = args.Int(0)
	err = args.Error(1)
	return
}

func (m *mockReadCloser) Close() error {
	args := m.Called()
	return args.Error(0)
}

func jsonResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// gateDoer holds every request until the test releases it. If
// ignoreCtx is false, a request also returns when its context is
// cancelled.
type gateDoer struct {
	ignoreCtx bool
	started   chan *gateCall
}

type gateCall struct {
	req     *http.Request
	release chan gateResult
}

type gateResult struct {
	resp *http.Response
	err  error
}

func newGateDoer(ignoreCtx bool) *gateDoer {
	return &gateDoer{
		ignoreCtx: ignoreCtx,
		started:   make(chan *gateCall, 16),
	}
}

func (d *gateDoer) Do(req *http.Request) (*http.Response, error) {
	c := &gateCall{req: req, release: make(chan gateResult, 1)}
	d.started <- c
	if d.ignoreCtx {
		r := <-c.release
		return r.resp, r.err
	}
	select {
	case r := <-c.release:
		return r.resp, r.err
	case <-req.Context().Done():
		return nil, req.Context().Err()
	}
}

func (d *gateDoer) next(t *testing.T) *gateCall {
	select {
	case c := <-d.started:
		return c
	case <-time.After(5 * time.Second):
		require.FailNow(t, "timed out waiting for request to start")
		return nil
	}
}

func (c *gateCall) respond(statusCode int, body string) {
	c.release <- gateResult{resp: jsonResponse(statusCode, body)}
}

// eventRecorder records every event fired during attempts.
type eventRecorder struct {
	lock     sync.Mutex
	events   []string
	discards chan *request.Attempt
	settles  chan *request.Attempt
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{
		discards: make(chan *request.Attempt, 16),
		settles:  make(chan *request.Attempt, 16),
	}
}

func (r *eventRecorder) group() *HandlerGroup {
	g := &HandlerGroup{}
	for _, evt := range Events() {
		g.PushBack(evt, r)
	}
	return g
}

func (r *eventRecorder) Handle(evt Event, a *request.Attempt) {
	r.lock.Lock()
	r.events = append(r.events, evt.Name())
	r.lock.Unlock()
	switch evt {
	case AfterDiscard:
		r.discards <- a
	case AfterSettle:
		r.settles <- a
	}
}

func (r *eventRecorder) names() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.events...)
}

func waitAttempt(t *testing.T, ch chan *request.Attempt) *request.Attempt {
	select {
	case a := <-ch:
		return a
	case <-time.After(5 * time.Second):
		require.FailNow(t, "timed out waiting for attempt to end")
		return nil
	}
}

// stateLog collects every state delivered to a subscriber.
type stateLog[R, E any] struct {
	lock   sync.Mutex
	states []State[R, E]
}

func (l *stateLog[R, E]) record(s State[R, E]) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.states = append(l.states, s)
}

func (l *stateLog[R, E]) statuses() []Status {
	l.lock.Lock()
	defer l.lock.Unlock()
	ss := make([]Status, len(l.states))
	for i := range l.states {
		ss[i] = l.states[i].Status()
	}
	return ss
}

func (l *stateLog[R, E]) all() []State[R, E] {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append([]State[R, E](nil), l.states...)
}
