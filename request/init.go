// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/http"
	"net/url"
)

// Init holds the options a caller may pass when triggering a request.
// The zero value, and a nil *Init, mean "no extra options".
type Init struct {
	// Header contains header fields to send. When Inits are merged,
	// a key present in the overriding Init replaces all values for
	// that key in the base Init.
	Header http.Header

	// Query contains query parameters appended to the request URL.
	// When Inits are merged, a key present in the overriding Init
	// replaces all values for that key in the base Init.
	Query url.Values

	// Cookies are sent in a single Cookie header, in order.
	Cookies []*http.Cookie

	// BasicAuth, if non-nil, sets the Authorization header to use HTTP
	// Basic Authentication.
	BasicAuth *BasicAuth

	// Host optionally overrides the Host header to send.
	Host string

	// Close stipulates whether to close the connection after the
	// response is read.
	Close bool
}

// BasicAuth is a username and password pair for HTTP Basic
// Authentication.
type BasicAuth struct {
	Username string
	Password string
}

// Clone returns a deep copy of i. Clone of a nil Init is nil.
func (i *Init) Clone() *Init {
	if i == nil {
		return nil
	}
	j := &Init{
		Header: i.Header.Clone(),
		Host:   i.Host,
		Close:  i.Close,
	}
	if i.Query != nil {
		j.Query = make(url.Values, len(i.Query))
		for k, v := range i.Query {
			j.Query[k] = append([]string(nil), v...)
		}
	}
	if i.Cookies != nil {
		j.Cookies = make([]*http.Cookie, len(i.Cookies))
		for n, c := range i.Cookies {
			c2 := *c
			j.Cookies[n] = &c2
		}
	}
	if i.BasicAuth != nil {
		ba := *i.BasicAuth
		j.BasicAuth = &ba
	}
	return j
}

// Merge returns a new Init holding the options of i overridden by the
// options of o. Neither i nor o is modified. Either may be nil.
//
// Header and Query keys in o replace the same keys in i. Cookies from o
// are appended after the cookies from i. BasicAuth and a non-empty Host
// in o replace the values in i, and Close is true if either is true.
func (i *Init) Merge(o *Init) *Init {
	m := i.Clone()
	if m == nil {
		m = &Init{}
	}
	if o == nil {
		return m
	}
	o = o.Clone()
	for k, v := range o.Header {
		if m.Header == nil {
			m.Header = make(http.Header, len(o.Header))
		}
		m.Header[k] = v
	}
	for k, v := range o.Query {
		if m.Query == nil {
			m.Query = make(url.Values, len(o.Query))
		}
		m.Query[k] = v
	}
	m.Cookies = append(m.Cookies, o.Cookies...)
	if o.BasicAuth != nil {
		m.BasicAuth = o.BasicAuth
	}
	if o.Host != "" {
		m.Host = o.Host
	}
	m.Close = m.Close || o.Close
	return m
}
