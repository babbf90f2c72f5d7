// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package restydoer provides an apihook.HTTPDoer backed by a resty
// client.
//
// Resty's response parsing, retries and result decoding are bypassed:
// the doer hands the raw response back to the hook, which owns body
// reading and decoding. What resty contributes is its client
// configuration (timeout, default headers, cookie jar, proxy, TLS) and
// its request middleware.
package restydoer

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/publicsuffix"
)

// Doer is an HTTPDoer that sends requests through a resty client.
type Doer struct {
	client *resty.Client
}

// New returns a Doer backed by a new resty client. A non-positive
// timeout means no client timeout. An empty userAgent leaves resty's
// default user agent in place.
//
// The client keeps cookies in a jar that uses the public suffix list
// to decide which domains may set cookies for each other.
func New(timeout time.Duration, userAgent string) *Doer {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	if userAgent != "" {
		c.SetHeader("User-Agent", userAgent)
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		panic("apihook/restydoer: " + err.Error())
	}
	c.SetCookieJar(jar)
	return NewFromClient(c)
}

// NewFromClient returns a Doer that sends requests through c. The
// Doer installs a pre-request hook on c, replacing any existing one.
func NewFromClient(c *resty.Client) *Doer {
	if c == nil {
		panic("apihook/restydoer: nil client")
	}
	c.SetPreRequestHook(applyRawOptions)
	return &Doer{client: c}
}

// Client returns the underlying resty client.
func (d *Doer) Client() *resty.Client {
	return d.client
}

type rawOptionsKey struct{}

type rawOptions struct {
	host  string
	close bool
}

// Do sends req through the resty client and returns the raw response.
// The response body is not read; the caller must close it.
func (d *Doer) Do(req *http.Request) (*http.Response, error) {
	ctx := context.WithValue(req.Context(), rawOptionsKey{}, rawOptions{
		host:  req.Host,
		close: req.Close,
	})
	r := d.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true)
	for k, v := range req.Header {
		r.Header[k] = append([]string(nil), v...)
	}
	if req.Body != nil && req.Body != http.NoBody {
		b, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, err
		}
		r.SetBody(b)
	}
	resp, err := r.Execute(req.Method, req.URL.String())
	if err != nil {
		if resp != nil && resp.RawResponse != nil {
			_ = resp.RawResponse.Body.Close()
		}
		return nil, err
	}
	return resp.RawResponse, nil
}

// CloseIdleConnections closes idle connections of the underlying HTTP
// client.
func (d *Doer) CloseIdleConnections() {
	d.client.GetClient().CloseIdleConnections()
}

// applyRawOptions copies the request fields resty has no setter for
// onto the outgoing request.
func applyRawOptions(_ *resty.Client, req *http.Request) error {
	o, ok := req.Context().Value(rawOptionsKey{}).(rawOptions)
	if !ok {
		return nil
	}
	if o.host != "" {
		req.Host = o.host
	}
	req.Close = req.Close || o.close
	return nil
}
