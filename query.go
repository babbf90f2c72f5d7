// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apihook

import (
	"net/http"
	"reflect"
	"sync"
)

// Query is an automatic GET hook. It fires when it is created and again
// whenever its dependencies (the URL and Init) change, cancelling and
// discarding the outcome of any request made for the old dependencies.
//
// An empty URL disables the query: nothing is fired until SetDeps sets
// a non-empty URL.
type Query[R, E any] struct {
	*Hook[R, E]

	depsMu sync.Mutex
	url    string
	init   *Init
}

// NewQuery returns a new GET hook with the given dependencies and
// fires it immediately, unless url is empty.
func NewQuery[R, E any](url string, init *Init, opts ...Option) *Query[R, E] {
	q := &Query[R, E]{
		Hook: NewHook[R, E](opts...),
		url:  url,
		init: init.Clone(),
	}
	_ = q.Refetch()
	return q
}

// Deps returns the current dependencies.
func (q *Query[R, E]) Deps() (url string, init *Init) {
	q.depsMu.Lock()
	defer q.depsMu.Unlock()
	return q.url, q.init.Clone()
}

// SetDeps replaces the dependencies. If they differ from the current
// ones, the query fires with the new dependencies and SetDeps reports
// true. Equal dependencies are a no-op.
//
// SetDeps returns ErrClosed if the hook has been closed.
func (q *Query[R, E]) SetDeps(url string, init *Init) (bool, error) {
	if q.Closed() {
		return false, ErrClosed
	}
	q.depsMu.Lock()
	if q.url == url && depsEqual(q.init, init) {
		q.depsMu.Unlock()
		return false, nil
	}
	q.url = url
	q.init = init.Clone()
	q.depsMu.Unlock()
	return true, q.Refetch()
}

// Refetch fires the query again with the current dependencies, even if
// they have not changed. With an empty URL it cancels any in-flight
// request instead.
func (q *Query[R, E]) Refetch() error {
	url, init := q.Deps()
	if url == "" {
		if q.Closed() {
			return ErrClosed
		}
		q.Cancel()
		return nil
	}
	return q.Trigger(http.MethodGet, url, init, nil)
}

func depsEqual(a, b *Init) bool {
	return reflect.DeepEqual(normalizeDeps(a), normalizeDeps(b))
}

// normalizeDeps returns a copy of init in which empty headers, query
// parameters and cookies are nil, so that they compare equal to absent
// ones.
func normalizeDeps(init *Init) *Init {
	n := init.Clone()
	if n == nil {
		return &Init{}
	}
	if len(n.Header) == 0 {
		n.Header = nil
	}
	if len(n.Query) == 0 {
		n.Query = nil
	}
	if len(n.Cookies) == 0 {
		n.Cookies = nil
	}
	return n
}
