// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apihook

import (
	"github.com/gogama/apihook/request"
)

// A HandlerGroup is a group of event handler chains which can be
// installed in a hook with WithHandlers.
//
// Install all handlers before the group is given to a hook. A group may
// be shared by several hooks, so handlers must be safe for concurrent
// use by multiple goroutines.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler chain
// for a specific event type.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("apihook: nil handler")
	}
	if evt < 0 || evt >= eventSentinel {
		panic("apihook: invalid event")
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

func (g *HandlerGroup) run(evt Event, a *request.Attempt) {
	if g == nil {
		return
	}
	i := int(evt)
	if i < len(g.handlers) {
		run(g.handlers[i], evt, a)
	}
}

func run(chain []Handler, evt Event, a *request.Attempt) {
	for _, h := range chain {
		h.Handle(evt, a)
	}
}

// A Handler handles the occurrence of an event during an attempt.
type Handler interface {
	Handle(Event, *request.Attempt)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers. If f is a function with appropriate
// signature, then HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(Event, *request.Attempt)

// Handle calls f(evt, a).
func (f HandlerFunc) Handle(evt Event, a *request.Attempt) {
	f(evt, a)
}
