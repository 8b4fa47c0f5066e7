/*
Copyright 2025 The Crossplane Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package errors

import (
	"fmt"
	"net/http"

	cerrdefs "github.com/containerd/errdefs"
)

// An InvalidPathError is returned when a chain of path segments is malformed.
// It is a caller bug and never retryable.
type InvalidPathError struct {
	// Index of the offending segment, or -1 if the path as a whole is bad.
	Index int

	// Reason the path was rejected.
	Reason string
}

// NewInvalidPath returns an InvalidPathError for the segment at index i.
func NewInvalidPath(i int, format string, args ...any) *InvalidPathError {
	return &InvalidPathError{Index: i, Reason: fmt.Sprintf(format, args...)}
}

func (e *InvalidPathError) Error() string {
	if e.Index < 0 {
		return "invalid path: " + e.Reason
	}
	return fmt.Sprintf("invalid path segment %d: %s", e.Index, e.Reason)
}

// Is lets InvalidPathError match errdefs.ErrInvalidArgument.
func (e *InvalidPathError) Is(target error) bool {
	return target == cerrdefs.ErrInvalidArgument //nolint:errorlint // Sentinel comparison.
}

// OpLogin is the operation of a TransportError returned while logging in. A
// failed login never means the addressed object is missing.
const OpLogin = "log in to"

// A TransportError is returned when the controller is unreachable or answers
// with an unexpected status. It is surfaced verbatim; nothing at this layer
// retries it.
type TransportError struct {
	// Op is the controller operation that failed, e.g. "fetch".
	Op string

	// DN the operation addressed.
	DN string

	// Status is the HTTP status code, or zero if no response was received.
	Status int

	// Code and Message are the controller's own error code and text, if it
	// returned an error object.
	Code    string
	Message string

	err error
}

// NewTransport returns a TransportError wrapping the supplied cause.
func NewTransport(op, dn string, status int, cause error) *TransportError {
	return &TransportError{Op: op, DN: dn, Status: status, err: cause}
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("cannot %s %q", e.Op, e.DN)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s: controller returned %d %s", msg, e.Status, http.StatusText(e.Status))
	}
	switch {
	case e.Code != "":
		msg = fmt.Sprintf("%s: error %s: %s", msg, e.Code, e.Message)
	case e.Message != "":
		msg = msg + ": " + e.Message
	}
	if e.err != nil {
		msg = msg + ": " + e.err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *TransportError) Unwrap() error { return e.err }

// Is classifies a TransportError by its status code, so callers can use the
// errdefs predicates. Errors with no response are unavailable.
func (e *TransportError) Is(target error) bool {
	if e.Op == OpLogin && e.Status == http.StatusNotFound {
		// The login endpoint itself is missing.
		return target == cerrdefs.ErrUnavailable //nolint:errorlint // Sentinel comparison.
	}
	return target == classify(e.Status) //nolint:errorlint // Sentinel comparison.
}

// NotFound reports whether the controller answered 404 to a request for the
// addressed object. A 404 from the login endpoint is not a missing object.
func (e *TransportError) NotFound() bool {
	return e.Status == http.StatusNotFound && e.Op != OpLogin
}

func classify(status int) error {
	switch {
	case status == 0, status == http.StatusBadGateway, status == http.StatusServiceUnavailable, status == http.StatusGatewayTimeout:
		return cerrdefs.ErrUnavailable
	case status == http.StatusBadRequest:
		return cerrdefs.ErrInvalidArgument
	case status == http.StatusUnauthorized:
		return cerrdefs.ErrUnauthenticated
	case status == http.StatusForbidden:
		return cerrdefs.ErrPermissionDenied
	case status == http.StatusNotFound:
		return cerrdefs.ErrNotFound
	case status >= http.StatusInternalServerError:
		return cerrdefs.ErrInternal
	default:
		return cerrdefs.ErrUnknown
	}
}

// A ConflictError is returned when the controller rejects a write because the
// object was modified concurrently. Callers may retry the whole
// reconciliation.
type ConflictError struct {
	// DN the rejected write addressed.
	DN string

	// Message is the controller's explanation.
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting modification of %q: %s", e.DN, e.Message)
}

// Is lets ConflictError match errdefs.ErrConflict.
func (e *ConflictError) Is(target error) bool {
	return target == cerrdefs.ErrConflict //nolint:errorlint // Sentinel comparison.
}

// IsInvalidPath reports whether err is, or wraps, an InvalidPathError.
func IsInvalidPath(err error) bool {
	var e *InvalidPathError
	return As(err, &e)
}

// IsTransport reports whether err is, or wraps, a TransportError.
func IsTransport(err error) bool {
	var e *TransportError
	return As(err, &e)
}

// IsConflict reports whether err is, or wraps, a ConflictError.
func IsConflict(err error) bool {
	var e *ConflictError
	return As(err, &e)
}

// IsNotFound reports whether err is a TransportError for a missing object.
// Login failures never are.
func IsNotFound(err error) bool {
	var e *TransportError
	return As(err, &e) && e.NotFound()
}
