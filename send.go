// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apihook

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/gogama/apihook/request"
)

// send makes the single HTTP request of an attempt and buffers the
// response body. Cancelling ctx aborts the request.
//
// On return, the attempt's Response and Body are set if a response was
// received and read, and Err is set (always to a *url.Error) if the
// request or the body read failed.
func send(ctx context.Context, doer HTTPDoer, handlers *HandlerGroup, a *request.Attempt) {
	a.Request = a.Plan.ToRequest(ctx)
	handlers.run(BeforeAttempt, a)
	var err error
	a.Response, err = doer.Do(a.Request)
	if err != nil {
		a.Err = urlErrorWrap(a.Plan, err)
	} else {
		readBody(a, handlers)
	}
	handlers.run(AfterAttempt, a)
}

func readBody(a *request.Attempt, handlers *HandlerGroup) {
	defer func() {
		_ = a.Response.Body.Close()
	}()
	handlers.run(BeforeReadBody, a)
	var err error
	a.Body, err = io.ReadAll(a.Response.Body)
	if err != nil {
		a.Body = nil
		a.Err = urlErrorWrap(a.Plan, err)
	}
}

func urlErrorWrap(p *request.Plan, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(p.Method),
		URL: p.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
