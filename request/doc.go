// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the types Init (caller request options), Plan
(a fully resolved HTTP request description) and Attempt (the record of
one triggered request). A hook builds one Plan and one Attempt every time
its trigger function runs.

An Init describes the per-call options a caller hands to a hook trigger:
extra headers, query parameters, cookies, and credentials. A hook merges
its own default Init with the per-call one before applying it to a Plan:

	defaults := &request.Init{Header: http.Header{"Accept": {"application/json"}}}
	merged := defaults.Merge(&request.Init{Query: url.Values{"page": {"2"}}})
	p, err := request.NewPlan("GET", "https://example.com/api/items", nil)
	...
	p.Apply(merged)

A Plan looks like a stripped-down http.Request with server-side fields
removed and the body replaced with a pre-buffered []byte. Plans carry no
context: the context of a request is owned by the Attempt's cancellation
handle and is only supplied when the Plan is converted into an
http.Request by ToRequest.

An Attempt is handed to event handlers while the request is in flight
and is never reused: a new trigger always produces a new Attempt.
*/
package request
