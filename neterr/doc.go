// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package neterr classifies network-level errors from a request
// attempt, so that callers inspecting a failed hook state can tell a
// timeout from a refused connection or a DNS problem without digging
// through wrapped errors themselves.
//
// Package neterr depends only on the standard library.
package neterr
