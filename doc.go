// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package apihook provides request-state hooks: small stateful values that
issue one HTTP request per trigger and track its loading, response,
error, and HTTP status, with cancellation of the in-flight request.

Create a hook for the verb you need. Type parameters declare the
response type, the error response type, and for verbs with a body, the
request body type:

	type Item struct{ ID int `json:"id"` }
	type APIError struct{ Message string `json:"message"` }

	items := apihook.NewGet[Item, APIError]()
	defer items.Close()
	_ = items.Fetch(apihook.Request{URL: "https://example.com/api/data"})

Trigger functions return immediately. Observe the outcome through the
hook state, either by polling State, by subscribing, or by waiting:

	items.Subscribe(func(s apihook.State[Item, APIError]) {
		switch s.Status() {
		case apihook.Loading:
			...
		case apihook.Success:
			item, _ := s.Response()
			...
		case apihook.Error:
			f := s.Failure()
			...
		}
	})
	s, err := items.Wait(ctx)

Verbs with a body take a BodyRequest:

	users := apihook.NewPost[NewUser, User, APIError]()
	_ = users.Fetch(apihook.BodyRequest[NewUser]{
		URL:  "https://example.com/api/users",
		Body: NewUser{Name: "John"},
	})

A hook owns at most one in-flight request. Triggering again cancels the
previous request, and Cancel aborts it explicitly. In both cases the
aborted request can never change the state, so the state always
reflects the most recent trigger. Close disposes of the hook and aborts
any request it still has in flight.

For a GET that should follow its inputs rather than be triggered by
hand, use Query. It fires on creation and whenever SetDeps changes its
URL or options:

	q := apihook.NewQuery[[]Item, APIError]("/api/items", nil,
		apihook.WithBaseURL(base))
	...
	q.SetDeps("/api/items", &apihook.Init{Query: url.Values{"page": {"2"}}})

No request failure is ever returned or raised by a hook: network
errors, non-2XX responses, and undecodable bodies all move the state to
Error, and the Failure tells them apart.

For control over how requests are sent, use a custom HTTPDoer, for
example a GoLang standard HTTP client or the resty-based doer in package
transport/restydoer:

	hook := apihook.NewGet[Item, APIError](apihook.WithDoer(&http.Client{
		Timeout: 10 * time.Second,
	}))

To hook into the details of each request, install a handler into the
appropriate handler chain. Package zaplog provides handlers that log
with zap:

	handlers := &apihook.HandlerGroup{}
	handlers.PushBack(apihook.BeforeAttempt, apihook.HandlerFunc(
		func(_ apihook.Event, a *request.Attempt) {
			a.Request.Header = a.Request.Header.Clone()
			a.Request.Header.Set("X-Request-Id", a.ID.String())
		}),
	)
	hook := apihook.NewGet[Item, APIError](apihook.WithHandlers(handlers))
*/
package apihook
