// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apihook

import (
	"context"
	"net/http"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package. In
	// particular it must abort the request when the request context is
	// cancelled.
	Do(r *http.Request) (*http.Response, error)
}

// Fetcher is the interface that wraps the trigger function of a manual
// hook.
//
// Fetch starts a request described by q and returns immediately. The
// outcome is observed through the hook state, never through the return
// value, which is only non-nil (ErrClosed) if the hook was closed.
type Fetcher[Q any] interface {
	Fetch(q Q) error
}

// Canceler is the interface that wraps the basic Cancel method.
//
// Cancel aborts the in-flight request, if any, and discards its
// outcome.
type Canceler interface {
	Cancel()
}

// Observer is the interface that groups the methods for reading the
// state of a hook.
type Observer[R, E any] interface {
	State() State[R, E]
	Subscribe(f func(State[R, E])) (unsubscribe func())
	Wait(ctx context.Context) (State[R, E], error)
}

// Controller is the interface implemented by every manual hook: the
// trigger function, cancellation, state observation, and disposal.
type Controller[Q, R, E any] interface {
	Fetcher[Q]
	Canceler
	Observer[R, E]
	Close()
}

var (
	_ Controller[Request, struct{}, struct{}]               = (*Get[struct{}, struct{}])(nil)
	_ Controller[Request, struct{}, struct{}]               = (*Delete[struct{}, struct{}])(nil)
	_ Controller[BodyRequest[struct{}], struct{}, struct{}] = (*Post[struct{}, struct{}, struct{}])(nil)
	_ Controller[BodyRequest[struct{}], struct{}, struct{}] = (*Put[struct{}, struct{}, struct{}])(nil)
	_ Controller[BodyRequest[struct{}], struct{}, struct{}] = (*Patch[struct{}, struct{}, struct{}])(nil)
	_ Observer[struct{}, struct{}]                          = (*Query[struct{}, struct{}])(nil)
	_ Canceler                                              = (*Query[struct{}, struct{}])(nil)
)
