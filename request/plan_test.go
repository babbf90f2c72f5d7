// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewPlan(t *testing.T) {
	testCases := []struct {
		name   string
		method string
		url    string
		body   func(*testing.T) interface{}
		want   Plan
	}{
		{
			name: "empty method means GET",
			url:  "https://foo.com/items",
			want: Plan{Method: "GET", Host: "foo.com"},
		},
		{
			name:   "extension method",
			method: "PURGE",
			url:    "http://baz.com",
			want:   Plan{Method: "PURGE", Host: "baz.com"},
		},
		{
			name:   "empty port removed",
			method: "GET",
			url:    "http://ham:",
			want:   Plan{Method: "GET", Host: "ham"},
		},
		{
			name:   "relative URL",
			method: "DELETE",
			url:    "/users/1",
			want:   Plan{Method: "DELETE"},
		},
		{
			name:   "string body",
			method: "POST",
			url:    "/users",
			body:   func(*testing.T) interface{} { return `{"name":"John"}` },
			want:   Plan{Method: "POST", Body: []byte(`{"name":"John"}`)},
		},
		{
			name:   "reader body",
			method: "PUT",
			url:    "/doc",
			body:   func(*testing.T) interface{} { return strings.NewReader("text") },
			want:   Plan{Method: "PUT", Body: []byte("text")},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var body interface{}
			if testCase.body != nil {
				body = testCase.body(t)
			}
			p, err := NewPlan(testCase.method, testCase.url, body)
			require.NoError(t, err)
			require.NotNil(t, p)
			assert.Equal(t, testCase.want.Method, p.Method)
			assert.Equal(t, testCase.want.Host, p.Host)
			assert.Equal(t, testCase.want.Host, p.URL.Host)
			assert.Equal(t, testCase.want.Body, p.Body)
			assert.NotNil(t, p.Header)
			assert.Empty(t, p.Header)
		})
	}
}

func TestNewPlan_Error(t *testing.T) {
	testCases := []struct {
		name   string
		method string
		url    string
		body   func(*testing.T) interface{}
		err    string
	}{
		{
			name:   "invalid method",
			method: "\tGET",
			url:    "/eggs",
			err:    `apihook/request: invalid method "\tGET"`,
		},
		{
			name:   "invalid URL",
			method: "GET",
			url:    ":::",
			err:    `parse ":::": missing protocol scheme`,
		},
		{
			name:   "invalid body type",
			method: "POST",
			url:    "/spam",
			body:   func(*testing.T) interface{} { return map[string]int{} },
			err:    badBodyTypeMsg,
		},
		{
			name:   "body read",
			method: "PUT",
			url:    "/hello",
			body: func(t *testing.T) interface{} {
				m := &mockReadCloser{}
				m.Test(t)
				m.On("Read", mock.Anything).Return(5, errors.New("problematic")).Once()
				return m
			},
			err: "problematic",
		},
		{
			name:   "body close",
			method: "PATCH",
			url:    "/hello",
			body: func(t *testing.T) interface{} {
				m := &mockReadCloser{}
				m.Test(t)
				m.On("Read", mock.Anything).Return(0, io.EOF).Once()
				m.On("Close").Return(errors.New("difficult conversation")).Once()
				return m
			},
			err: "difficult conversation",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var body interface{}
			if testCase.body != nil {
				body = testCase.body(t)
			}
			p, err := NewPlan(testCase.method, testCase.url, body)
			assert.Nil(t, p)
			assert.EqualError(t, err, testCase.err)
		})
	}
}

func TestPlan_AddCookie(t *testing.T) {
	p, err := NewPlan("", "/cookietown", nil)
	require.NoError(t, err)

	p.AddCookie(&http.Cookie{Name: "foo", Value: "bar"})
	assert.Equal(t, "foo=bar", p.Header.Get("Cookie"))
	p.AddCookie(&http.Cookie{Name: "ham", Value: "eggs", Path: "/a", Secure: true, MaxAge: 10})
	assert.Equal(t, []string{"foo=bar; ham=eggs"}, p.Header["Cookie"], "one header line, attributes dropped")
}

func TestPlan_SetBasicAuth(t *testing.T) {
	p, err := NewPlan("", "/secure", nil)
	require.NoError(t, err)

	p.SetBasicAuth("", "")
	assert.Equal(t, "Basic Og==", p.Header.Get("Authorization"))
	p.SetBasicAuth("patsy", "password")
	assert.Equal(t, []string{"Basic cGF0c3k6cGFzc3dvcmQ="}, p.Header["Authorization"])
}

func TestPlan_ToRequest(t *testing.T) {
	t.Run("fields", func(t *testing.T) {
		p, err := NewPlan("HEAD", "http://a.com/b", nil)
		require.NoError(t, err)
		p.Header.Set("X-Trace", "1")
		p.Host = "c.com"
		p.Close = true

		r := p.ToRequest(context.Background())

		assert.Equal(t, "HEAD", r.Method)
		assert.Same(t, p.URL, r.URL)
		assert.Equal(t, "1", r.Header.Get("X-Trace"))
		assert.Equal(t, "c.com", r.Host)
		assert.True(t, r.Close)
	})
	t.Run("context", func(t *testing.T) {
		p, err := NewPlan("PUT", "/test", "body")
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		r := p.ToRequest(ctx)
		other := p.ToRequest(context.Background())

		assert.True(t, r.Context() == ctx)
		assert.True(t, other.Context() == context.Background())
		cancel()
		assert.Error(t, r.Context().Err())
		assert.NoError(t, other.Context().Err())
	})
	t.Run("body empty", func(t *testing.T) {
		for _, body := range []interface{}{nil, "", []byte{}, strings.NewReader("")} {
			p, err := NewPlan("DELETE", "/test", body)
			require.NoError(t, err)
			r := p.ToRequest(context.Background())
			assert.Nil(t, r.Body)
			assert.Nil(t, r.GetBody)
			assert.Equal(t, int64(0), r.ContentLength)
		}
	})
	t.Run("body not empty", func(t *testing.T) {
		p, err := NewPlan("POST", "/test", "foo")
		require.NoError(t, err)
		r := p.ToRequest(context.Background())
		assert.Equal(t, int64(3), r.ContentLength)
		require.NotNil(t, r.Body)
		b, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, "foo", string(b))
		require.NotNil(t, r.GetBody)
		rc, err := r.GetBody()
		require.NoError(t, err)
		b, err = io.ReadAll(rc)
		assert.NoError(t, err)
		assert.Equal(t, "foo", string(b), "GetBody replays the body")
	})
}

func TestPlan_Resolve(t *testing.T) {
	base, err := url.Parse("https://api.example.com/v1/")
	require.NoError(t, err)
	testCases := []struct {
		name     string
		url      string
		base     *url.URL
		wantURL  string
		wantHost string
	}{
		{"relative", "users/1", base, "https://api.example.com/v1/users/1", "api.example.com"},
		{"root relative", "/health", base, "https://api.example.com/health", "api.example.com"},
		{"absolute", "http://other.com/x", base, "http://other.com/x", "other.com"},
		{"nil base", "/api/data", nil, "/api/data", ""},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			p, err := NewPlan("GET", testCase.url, nil)
			require.NoError(t, err)
			p.Resolve(testCase.base)
			assert.Equal(t, testCase.wantURL, p.URL.String())
			assert.Equal(t, testCase.wantHost, p.Host)
		})
	}
}

func TestPlan_Apply(t *testing.T) {
	testCases := []struct {
		name    string
		url     string
		prepare func(*Plan)
		init    *Init
		check   func(*testing.T, *Plan)
	}{
		{
			name: "nil init",
			url:  "http://a.com/b?c=d",
			check: func(t *testing.T, p *Plan) {
				assert.Empty(t, p.Header)
				assert.Equal(t, "http://a.com/b?c=d", p.URL.String())
				assert.Equal(t, "a.com", p.Host)
				assert.False(t, p.Close)
			},
		},
		{
			name: "header replaces by canonical key",
			url:  "/b",
			prepare: func(p *Plan) {
				p.Header.Set("Content-Type", "application/json")
				p.Header.Set("Accept", "application/json")
			},
			init: &Init{Header: http.Header{
				"content-type": {"text/plain"},
				"X-Trace":      {"1", "2"},
			}},
			check: func(t *testing.T, p *Plan) {
				assert.Equal(t, []string{"text/plain"}, p.Header["Content-Type"])
				assert.Equal(t, []string{"application/json"}, p.Header["Accept"])
				assert.Equal(t, []string{"1", "2"}, p.Header["X-Trace"])
				assert.NotContains(t, p.Header, "content-type")
			},
		},
		{
			name: "query adds and replaces",
			url:  "http://a.com/b?page=1&sort=asc",
			init: &Init{Query: url.Values{"page": {"2"}, "tag": {"x", "y"}}},
			check: func(t *testing.T, p *Plan) {
				assert.Equal(t, url.Values{
					"page": {"2"},
					"sort": {"asc"},
					"tag":  {"x", "y"},
				}, p.URL.Query())
			},
		},
		{
			name: "cookies append to existing header",
			url:  "/b",
			prepare: func(p *Plan) {
				p.Header.Set("Cookie", "sid=1")
			},
			init: &Init{Cookies: []*http.Cookie{{Name: "ham", Value: "eggs"}, {Name: "foo", Value: "bar"}}},
			check: func(t *testing.T, p *Plan) {
				assert.Equal(t, []string{"sid=1; ham=eggs; foo=bar"}, p.Header["Cookie"])
			},
		},
		{
			name: "basic auth",
			url:  "/b",
			init: &Init{BasicAuth: &BasicAuth{Username: "patsy", Password: "password"}},
			check: func(t *testing.T, p *Plan) {
				assert.Equal(t, "Basic cGF0c3k6cGFzc3dvcmQ=", p.Header.Get("Authorization"))
			},
		},
		{
			name: "host overrides, empty host keeps",
			url:  "http://a.com/b",
			init: &Init{Host: "b.com"},
			check: func(t *testing.T, p *Plan) {
				assert.Equal(t, "b.com", p.Host)
				assert.Equal(t, "a.com", p.URL.Host)
				p.Apply(&Init{})
				assert.Equal(t, "b.com", p.Host)
			},
		},
		{
			name: "close is sticky",
			url:  "/b",
			init: &Init{Close: true},
			check: func(t *testing.T, p *Plan) {
				assert.True(t, p.Close)
				p.Apply(&Init{Close: false})
				assert.True(t, p.Close)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			p, err := NewPlan("GET", testCase.url, nil)
			require.NoError(t, err)
			if testCase.prepare != nil {
				testCase.prepare(p)
			}
			p.Apply(testCase.init)
			testCase.check(t, p)
		})
	}
}

func TestPlan_Apply_CopiesURL(t *testing.T) {
	p, err := NewPlan("GET", "http://a.com/b?c=d", nil)
	require.NoError(t, err)
	u := p.URL
	p.Apply(&Init{Query: url.Values{"e": {"f"}}})
	assert.Equal(t, "http://a.com/b?c=d", u.String())
	assert.Equal(t, "http://a.com/b?c=d&e=f", p.URL.String())
}

func TestPlan_Apply_DoesNotAliasInit(t *testing.T) {
	p, err := NewPlan("GET", "/b", nil)
	require.NoError(t, err)
	init := &Init{Header: http.Header{"X-Trace": {"1"}}}
	p.Apply(init)
	init.Header["X-Trace"][0] = "changed"
	assert.Equal(t, "1", p.Header.Get("X-Trace"))
}
