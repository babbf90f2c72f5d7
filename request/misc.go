// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"io"
)

const badBodyTypeMsg = "apihook/request: invalid type (for raw body use nil, " +
	"string, []byte, io.Reader or io.ReadCloser)"

// ErrBadBodyType is returned by BodyBytes when the body is not one of
// the raw body types.
var ErrBadBodyType = errors.New(badBodyTypeMsg)

// BodyBytes converts a raw body value to a byte slice for use as a Plan
// body.
//
// The body parameter may be nil, or it may be a string, []byte,
// io.Reader, or io.ReadCloser. The conversion logic is:
//
// • If body is nil, a nil byte slice and no error is returned.
//
// • If body is a []byte, body itself and no error is returned.
//
// • If body is a string, the built-in conversion from string to byte
// slice, and no error, is returned.
//
// • If body is an io.Reader or io.ReadCloser, the whole contents of the
// reader are returned (and it is closed if it implements io.Closer).
// If reading or closing fails, a nil byte slice and the error are
// returned.
//
// • If body is any other type, a nil byte slice and ErrBadBodyType are
// returned.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err != nil {
			return nil, err
		}
		err = x.Close()
		if err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return BodyBytes(io.NopCloser(x))
	default:
		return nil, ErrBadBodyType
	}
}

// IsRawBody reports whether body is one of the types BodyBytes accepts
// without serialization (nil excluded).
func IsRawBody(body interface{}) bool {
	switch body.(type) {
	case string, []byte, io.Reader:
		return true
	default:
		return false
	}
}
