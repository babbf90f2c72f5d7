// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apihook

import (
	"net/http"
)

// Get is a manual hook issuing GET requests. R is the response type and
// E the error response type.
//
// Get embeds its Hook, so Cancel, Close, Reset, State, Subscribe and
// Wait are available directly on it.
type Get[R, E any] struct {
	*Hook[R, E]
}

// NewGet returns a new idle GET hook.
func NewGet[R, E any](opts ...Option) *Get[R, E] {
	return &Get[R, E]{NewHook[R, E](opts...)}
}

// Fetch starts a GET request to r.URL and returns immediately. See
// Hook.Trigger.
func (g *Get[R, E]) Fetch(r Request) error {
	return g.Trigger(http.MethodGet, r.URL, r.Init, nil)
}

// Delete is a manual hook issuing DELETE requests. R is the response
// type and E the error response type.
type Delete[R, E any] struct {
	*Hook[R, E]
}

// NewDelete returns a new idle DELETE hook.
func NewDelete[R, E any](opts ...Option) *Delete[R, E] {
	return &Delete[R, E]{NewHook[R, E](opts...)}
}

// Fetch starts a DELETE request to r.URL and returns immediately. See
// Hook.Trigger.
func (d *Delete[R, E]) Fetch(r Request) error {
	return d.Trigger(http.MethodDelete, r.URL, r.Init, nil)
}

// Post is a manual hook issuing POST requests. B is the request body
// type, R the response type and E the error response type.
//
// A body of type string, []byte, or io.Reader is sent as it is. Any
// other body is encoded as JSON and sent with the header
// "Content-Type: application/json", unless the Init overrides it. A
// body that cannot be encoded moves the hook to the Error state with a
// KindRequest failure, without a network call.
type Post[B, R, E any] struct {
	*Hook[R, E]
}

// NewPost returns a new idle POST hook.
func NewPost[B, R, E any](opts ...Option) *Post[B, R, E] {
	return &Post[B, R, E]{NewHook[R, E](opts...)}
}

// Fetch starts a POST request to r.URL with r.Body and returns
// immediately. See Hook.Trigger.
func (p *Post[B, R, E]) Fetch(r BodyRequest[B]) error {
	return p.Trigger(http.MethodPost, r.URL, r.Init, r.Body)
}

// Put is a manual hook issuing PUT requests. Bodies are handled as for
// Post.
type Put[B, R, E any] struct {
	*Hook[R, E]
}

// NewPut returns a new idle PUT hook.
func NewPut[B, R, E any](opts ...Option) *Put[B, R, E] {
	return &Put[B, R, E]{NewHook[R, E](opts...)}
}

// Fetch starts a PUT request to r.URL with r.Body and returns
// immediately. See Hook.Trigger.
func (p *Put[B, R, E]) Fetch(r BodyRequest[B]) error {
	return p.Trigger(http.MethodPut, r.URL, r.Init, r.Body)
}

// Patch is a manual hook issuing PATCH requests. Bodies are handled as
// for Post.
type Patch[B, R, E any] struct {
	*Hook[R, E]
}

// NewPatch returns a new idle PATCH hook.
func NewPatch[B, R, E any](opts ...Option) *Patch[B, R, E] {
	return &Patch[B, R, E]{NewHook[R, E](opts...)}
}

// Fetch starts a PATCH request to r.URL with r.Body and returns
// immediately. See Hook.Trigger.
func (p *Patch[B, R, E]) Fetch(r BodyRequest[B]) error {
	return p.Trigger(http.MethodPatch, r.URL, r.Init, r.Body)
}
