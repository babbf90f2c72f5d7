// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apihook

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gogama/apihook/neterr"
)

// A Status is the lifecycle phase of a hook's most recent request.
type Status int

const (
	// Idle means no request is in flight and none has settled since
	// the hook was created, cancelled, or reset.
	Idle Status = iota
	// Loading means a request is in flight.
	Loading
	// Success means the most recent request received a 2XX response
	// whose body was decoded into the response type.
	Success
	// Error means the most recent request failed. See Failure.
	Error
	statusSentinel
)

var statusNames = []string{
	"idle",
	"loading",
	"success",
	"error",
}

// String returns the lower-case name of the status.
func (s Status) String() string {
	if s < 0 || s >= statusSentinel {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// A State is an immutable snapshot of a hook's request state.
//
// A State is a tagged union on its Status: a response is only present
// in the Success state, and a failure is only present in the Error
// state. The zero value is the Idle state.
type State[R, E any] struct {
	status     Status
	response   R
	failure    *Failure[E]
	httpStatus int
}

func idleState[R, E any](httpStatus int) State[R, E] {
	return State[R, E]{status: Idle, httpStatus: httpStatus}
}

func loadingState[R, E any](httpStatus int) State[R, E] {
	return State[R, E]{status: Loading, httpStatus: httpStatus}
}

func successState[R, E any](r R, httpStatus int) State[R, E] {
	return State[R, E]{status: Success, response: r, httpStatus: httpStatus}
}

func errorState[R, E any](f *Failure[E], httpStatus int) State[R, E] {
	return State[R, E]{status: Error, failure: f, httpStatus: httpStatus}
}

// Status returns the lifecycle phase.
func (s State[R, E]) Status() Status {
	return s.status
}

// Loading reports whether a request is in flight.
func (s State[R, E]) Loading() bool {
	return s.status == Loading
}

// Response returns the decoded response and true in the Success state,
// and the zero value and false otherwise.
func (s State[R, E]) Response() (R, bool) {
	if s.status != Success {
		var zero R
		return zero, false
	}
	return s.response, true
}

// Failure returns the failure in the Error state, and nil otherwise.
func (s State[R, E]) Failure() *Failure[E] {
	if s.status != Error {
		return nil
	}
	return s.failure
}

// HTTPStatus returns the status code of the last completed HTTP
// response, or 0 if no response has completed. It is kept while a new
// request is loading and after a cancel.
func (s State[R, E]) HTTPStatus() int {
	return s.httpStatus
}

type stateJSON struct {
	Status     Status      `json:"status"`
	Response   interface{} `json:"response,omitempty"`
	Error      interface{} `json:"error,omitempty"`
	HTTPStatus int         `json:"httpStatus,omitempty"`
}

// MarshalJSON renders the state with the fields status, response,
// error and httpStatus. The error field holds the decoded error body if
// there is one, and the failure message otherwise.
func (s State[R, E]) MarshalJSON() ([]byte, error) {
	j := stateJSON{
		Status:     s.status,
		HTTPStatus: s.httpStatus,
	}
	if r, ok := s.Response(); ok {
		j.Response = r
	}
	if f := s.Failure(); f != nil {
		if f.Body != nil {
			j.Error = f.Body
		} else {
			j.Error = f.Error()
		}
	}
	return json.Marshal(j)
}

// A FailureKind tells which stage of a request failed.
type FailureKind int

const (
	// KindRequest means the request could not be built, for example
	// because of a malformed URL or a body that could not be encoded.
	// No network call was made.
	KindRequest FailureKind = iota
	// KindNetwork means no HTTP response was received, or the response
	// body could not be read.
	KindNetwork
	// KindHTTP means an HTTP response with a status code outside the
	// 2XX range was received.
	KindHTTP
	// KindParse means a 2XX response was received but its body could
	// not be decoded or failed validation.
	KindParse
)

var kindNames = []string{
	"request",
	"network",
	"http",
	"parse",
}

// String returns the lower-case name of the kind.
func (k FailureKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
	return kindNames[k]
}

// A Failure describes why a request ended in the Error state.
type Failure[E any] struct {
	// Kind tells which stage of the request failed.
	Kind FailureKind

	// StatusCode is the HTTP status code received, or 0 if there was
	// no response.
	StatusCode int

	// Body is the error response body decoded into E. It is nil if
	// there was no body or it could not be decoded.
	Body *E

	// Raw is the raw response body, if one was read.
	Raw []byte

	// Err is the underlying cause. It is nil for KindHTTP failures,
	// and has the type *url.Error for KindNetwork failures.
	Err error
}

// Error implements the error interface.
func (f *Failure[E]) Error() string {
	switch {
	case f.Kind == KindHTTP:
		return fmt.Sprintf("apihook: HTTP %d %s", f.StatusCode, http.StatusText(f.StatusCode))
	case f.Err != nil:
		return fmt.Sprintf("apihook: %s failure: %s", f.Kind, f.Err.Error())
	default:
		return fmt.Sprintf("apihook: %s failure", f.Kind)
	}
}

// Unwrap returns the underlying cause.
func (f *Failure[E]) Unwrap() error {
	return f.Err
}

// Category returns the network failure category of the underlying
// cause. It is neterr.None for KindHTTP failures.
func (f *Failure[E]) Category() neterr.Category {
	return neterr.Categorize(f.Err)
}
