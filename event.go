// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apihook

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a hook to observe or extend the
// requests it makes.
type Event int

const (
	// BeforeAttempt identifies the event that occurs just before the
	// HTTP request of an attempt is sent.
	//
	// When a hook fires BeforeAttempt, the attempt's request field is
	// set to the HTTP request that WILL BE sent after all BeforeAttempt
	// handlers have finished. Handlers may modify it, for example to
	// sign it, but should clone the URL and Header before changing
	// them, as these initially reference the same-named plan fields.
	BeforeAttempt Event = iota
	// BeforeReadBody identifies the event that occurs after an HTTP
	// response has been received but before its body is read.
	//
	// BeforeReadBody never fires if the request ended in error, but
	// always fires if an HTTP response is received, regardless of the
	// status code.
	BeforeReadBody
	// AfterAttempt identifies the event that occurs after the network
	// part of an attempt is over, regardless of whether it succeeded.
	//
	// When a hook fires AfterAttempt, either the attempt's response or
	// its error OR BOTH may be set. The hook has not yet decided
	// whether the attempt will settle or be discarded.
	AfterAttempt
	// AfterSettle identifies the event that occurs after an attempt's
	// outcome has been written to the hook state. The attempt has
	// ended and will not change any further.
	AfterSettle
	// AfterDiscard identifies the event that occurs after an attempt
	// was superseded by a newer trigger, cancelled, or disposed of, so
	// that its outcome was thrown away. The attempt's Discarded field
	// is true.
	AfterDiscard
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeAttempt",
	"BeforeReadBody",
	"AfterAttempt",
	"AfterSettle",
	"AfterDiscard",
}

// Events returns a slice containing all events which can occur during
// an attempt, in the order in which they would occur. An attempt ends
// with exactly one of AfterSettle and AfterDiscard.
func Events() []Event {
	return []Event{
		BeforeAttempt,
		BeforeReadBody,
		AfterAttempt,
		AfterSettle,
		AfterDiscard,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
