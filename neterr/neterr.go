// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package neterr

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// A Category is the network failure category of an error, as reported
// by Categorize.
type Category int

const (
	// None is the category of a nil error.
	None Category = iota
	// Other indicates a non-nil error that fits no other category.
	Other
	// Canceled indicates the request context was cancelled, either by
	// an explicit cancel, a superseding trigger, or disposal of the
	// owning hook.
	Canceled
	// Timeout indicates a client-side timeout, either a context
	// deadline or any wrapped error with a Timeout() method reporting
	// true.
	Timeout
	// DNS indicates host name resolution failed.
	DNS
	// ConnRefused indicates the remote host refused the connection, and
	// corresponds to the POSIX error code ECONNREFUSED.
	ConnRefused
	// ConnReset indicates the remote host reset a previously active
	// TCP connection, and corresponds to the POSIX error code
	// ECONNRESET.
	ConnReset
	// categorySentinel provides the total number of categories.
	categorySentinel
)

var categoryNames = []string{
	"None",
	"Other",
	"Canceled",
	"Timeout",
	"DNS",
	"ConnRefused",
	"ConnReset",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < 0 || c >= categorySentinel {
		return "Unknown"
	}
	return categoryNames[c]
}

// Categorize returns the category of the given error, looking through
// wrapped causes. Cancellation is checked first, then timeouts, then
// DNS and connection errors.
func Categorize(err error) Category {
	if err == nil {
		return None
	}

	if errors.Is(err, context.Canceled) {
		return Canceled
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return DNS
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Other
}

type hasTimeout interface {
	Timeout() bool
}
