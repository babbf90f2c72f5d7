// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apihook

import (
	"bytes"
	"encoding/json"

	"github.com/gogama/apihook/request"
)

// A Validator is a decoded response that can check itself. If the
// response type R, or *R, implements Validator, a hook calls Validate
// after decoding a 2XX response body, and a non-nil error moves the
// hook to the Error state with a KindParse failure.
type Validator interface {
	Validate() error
}

// encodeBody serializes a request body. Raw bodies (string, []byte,
// io.Reader) are sent as they are; any other value is encoded as JSON,
// in which case isJSON is true.
func encodeBody(body interface{}) (b []byte, isJSON bool, err error) {
	if body == nil {
		return nil, false, nil
	}
	if request.IsRawBody(body) {
		b, err = request.BodyBytes(body)
		return b, false, err
	}
	b, err = json.Marshal(body)
	if err != nil {
		return nil, true, err
	}
	return b, true, nil
}

// decode decodes a response body into a T. A T of type []byte, string
// or json.RawMessage receives the raw body. Otherwise the body is
// decoded as JSON, and an empty body decodes to the zero T.
func decode[T any](b []byte) (T, error) {
	var v T
	switch p := any(&v).(type) {
	case *[]byte:
		*p = append([]byte(nil), b...)
	case *string:
		*p = string(b)
	case *json.RawMessage:
		*p = append(json.RawMessage(nil), b...)
	default:
		if len(bytes.TrimSpace(b)) == 0 {
			return v, nil
		}
		if err := json.Unmarshal(b, &v); err != nil {
			var zero T
			return zero, err
		}
	}
	return v, nil
}

// decodeResponse decodes a successful response body and runs its
// Validator, if any. An empty body is not validated.
func decodeResponse[R any](b []byte) (R, error) {
	r, err := decode[R](b)
	if err != nil || len(bytes.TrimSpace(b)) == 0 {
		return r, err
	}
	if v, ok := any(r).(Validator); ok {
		err = v.Validate()
	} else if v, ok := any(&r).(Validator); ok {
		err = v.Validate()
	}
	if err != nil {
		var zero R
		return zero, err
	}
	return r, nil
}

// decodeError decodes an error response body. It returns nil if the
// body is empty or cannot be decoded into an E.
func decodeError[E any](b []byte) *E {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	e, err := decode[E](b)
	if err != nil {
		return nil
	}
	return &e
}
