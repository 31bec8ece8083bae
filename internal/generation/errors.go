package generation

import (
	"errors"
	"fmt"
)

// Kind classifies a generation failure.
type Kind string

const (
	KindValidation Kind = "VALIDATION" // bad user input, caught before any network call
	KindTransport  Kind = "TRANSPORT"  // network or HTTP-level failure
	KindServer     Kind = "SERVER"     // the server rejected the request or reported a failed job
	KindParse      Kind = "PARSE"      // malformed response or mesh payload
)

// Error is a structured failure carrying its kind, the operation that
// failed, and an optional underlying cause.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Kind, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Op, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

func wrapError(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// KindOf extracts the kind from an error, or "" for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsValidation reports whether err is a user-input failure.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsTransport reports whether err is a network failure.
func IsTransport(err error) bool {
	return KindOf(err) == KindTransport
}

// IsServer reports whether err is a server-reported failure.
func IsServer(err error) bool {
	return KindOf(err) == KindServer
}

// IsParse reports whether err is a malformed-payload failure.
func IsParse(err error) bool {
	return KindOf(err) == KindParse
}
