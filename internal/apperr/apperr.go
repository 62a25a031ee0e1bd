// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package apperr classifies submission failures: local validation, remote
// processing errors reported by the service, and transport failures.
package apperr

import (
	"errors"
	"fmt"
)

// GenericTransportMessage is shown when no structured detail is available.
const GenericTransportMessage = "upload failed"

// Kind categorizes an Error.
type Kind string

const (
	// KindValidation marks preconditions that failed before any network call.
	KindValidation Kind = "validation"

	// KindRemote marks a well-formed error response carrying a detail message.
	KindRemote Kind = "remote"

	// KindTransport marks network failures, timeouts, and malformed responses.
	KindTransport Kind = "transport"
)

// Error is a classified failure. Message is what the user sees.
type Error struct {
	Kind    Kind
	Message string

	// Status is the HTTP status for remote errors and for transport errors
	// caused by an undecodable response; zero otherwise.
	Status int

	Cause error
}

// Error returns the user-facing message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Validation returns a local validation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationFrom wraps a sentinel such as a collection error as a validation error.
func ValidationFrom(cause error) *Error {
	return &Error{Kind: KindValidation, Message: cause.Error(), Cause: cause}
}

// Remote returns an error carrying the service's detail message verbatim.
func Remote(status int, detail string) *Error {
	return &Error{Kind: KindRemote, Message: detail, Status: status}
}

// Transport returns a transport failure with the generic message.
func Transport(status int, cause error) *Error {
	return &Error{Kind: KindTransport, Message: GenericTransportMessage, Status: status, Cause: cause}
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsRemote reports whether err is a remote processing failure.
func IsRemote(err error) bool { return KindOf(err) == KindRemote }

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool { return KindOf(err) == KindTransport }
