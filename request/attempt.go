// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/apihook/neterr"
	"github.com/google/uuid"
)

// An Attempt represents one triggered request of a hook.
//
// A hook creates an Attempt every time its trigger function runs, and
// updates it as the request progresses. Event handlers receive the
// Attempt and may store their own data on it with SetValue, but should
// treat its exported fields as read-only. Making reasonable changes to
// the http.Request before it is sent (for example, to sign it) is the
// one exception.
type Attempt struct {
	// ID uniquely identifies the attempt. It is assigned when the
	// attempt is created and never changes.
	ID uuid.UUID

	// Plan specifies the HTTP request being made. It is never nil.
	Plan *Plan

	// Start is the time the attempt was triggered.
	Start time.Time

	// End is the time the attempt settled, was cancelled, or was
	// discarded. It contains the zero value while the attempt is in
	// flight.
	End time.Time

	// Request is the HTTP request sent for the attempt. It is nil until
	// just before the request is sent.
	Request *http.Request

	// Response is the HTTP response received, if any. It is nil if the
	// attempt ended with a network error, or is still in flight.
	Response *http.Response

	// Err is the error the attempt ended with, if any. Network errors
	// always have the type *url.Error.
	Err error

	// Body is the complete response body. It is nil if no response was
	// received or reading the body failed.
	Body []byte

	// DecodeErr is the error decoding or validating a 2XX response
	// body, if any. The hook sets it before the attempt settles, in
	// which case the hook state is Error even though Success is true.
	DecodeErr error

	// Discarded is true if the attempt was superseded, cancelled, or
	// disposed of before it settled, so that its outcome was not
	// allowed to change the hook state.
	Discarded bool

	data context.Context
}

// NewAttempt returns a new Attempt for the plan p with a fresh ID and
// the start time set to now.
func NewAttempt(p *Plan) *Attempt {
	if p == nil {
		panic("apihook/request: nil plan")
	}
	return &Attempt{
		ID:    uuid.New(),
		Plan:  p,
		Start: time.Now(),
	}
}

// StatusCode returns the status code of the HTTP response, or 0 if
// there is no response.
func (a *Attempt) StatusCode() int {
	if a.Response == nil {
		return 0
	}

	return a.Response.StatusCode
}

// Header returns the HTTP response headers, or the nil header if there
// is no response.
//
// Note that a nil return value is always safe for read-only operations,
// since http.Header is a map type.
func (a *Attempt) Header() http.Header {
	if a.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return a.Response.Header
}

// Duration returns the duration of the attempt. While the attempt is
// in flight it is the time elapsed since Start, and once ended it is
// End minus Start.
func (a *Attempt) Duration() time.Duration {
	if !a.Started() {
		return time.Duration(0)
	} else if !a.Ended() {
		return time.Since(a.Start)
	}

	return a.End.Sub(a.Start)
}

// Started indicates whether the attempt has started.
func (a *Attempt) Started() bool {
	return a.Start != (time.Time{})
}

// Ended indicates whether the attempt has ended. Once an attempt has
// ended, there will be no further changes to it.
func (a *Attempt) Ended() bool {
	return a.End != (time.Time{})
}

// Success indicates whether the attempt received a response with a
// status code in the 2XX range and read its body without error.
func (a *Attempt) Success() bool {
	s := a.StatusCode()
	return a.Err == nil && s >= 200 && s <= 299
}

// Category returns the network failure category of Err.
func (a *Attempt) Category() neterr.Category {
	return neterr.Categorize(a.Err)
}

// SetValue allows event handlers to store arbitrary data in the
// attempt.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should not be of a built-in type.
func (a *Attempt) SetValue(key, value interface{}) {
	ctx := a.data
	if ctx == nil {
		ctx = context.Background()
	}

	a.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this attempt for key,
// or nil if there is no value associated with key.
func (a *Attempt) Value(key interface{}) interface{} {
	ctx := a.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
