// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apihook

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gogama/apihook/request"
)

// Init holds the per-call request options (headers, query parameters,
// cookies, credentials) accepted by hook trigger functions.
type Init = request.Init

// BasicAuth is a username and password pair for Init.BasicAuth.
type BasicAuth = request.BasicAuth

// An Option configures a hook at construction.
type Option func(*config)

type config struct {
	doer     HTTPDoer
	handlers *HandlerGroup
	init     *Init
	base     *url.URL
	ctx      context.Context
}

func newConfig(opts []Option) config {
	c := config{
		doer: http.DefaultClient,
		ctx:  context.Background(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithDoer sets the HTTPDoer the hook sends requests with. The default
// is http.DefaultClient.
func WithDoer(d HTTPDoer) Option {
	if d == nil {
		panic("apihook: nil doer")
	}
	return func(c *config) {
		c.doer = d
	}
}

// WithHandlers installs an event handler group in the hook.
func WithHandlers(g *HandlerGroup) Option {
	if g == nil {
		panic("apihook: nil handler group")
	}
	return func(c *config) {
		c.handlers = g
	}
}

// WithInit sets default request options. Per-call options passed to a
// trigger function are merged over the defaults, see Init.Merge.
func WithInit(init *Init) Option {
	return func(c *config) {
		c.init = init.Clone()
	}
}

// WithBaseURL makes relative trigger URLs resolve against base.
func WithBaseURL(base *url.URL) Option {
	return func(c *config) {
		if base == nil {
			c.base = nil
			return
		}
		u := *base
		c.base = &u
	}
}

// WithContext sets the parent context of the hook. When it is done,
// the hook closes itself just as if Close had been called: any
// in-flight request is aborted and discarded, and later trigger calls
// return ErrClosed.
func WithContext(ctx context.Context) Option {
	if ctx == nil {
		panic("apihook: nil context")
	}
	return func(c *config) {
		c.ctx = ctx
	}
}
