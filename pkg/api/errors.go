package api

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the request layer can report.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindUnauthorized
	KindHTTP
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUnauthorized:
		return "unauthorized"
	case KindHTTP:
		return "http"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

const MsgUnauthorized = "authentication required or token expired"

// Error is the single error value callers display. Message is user-facing.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or 0 when err did not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsUnauthorized(err error) bool {
	return KindOf(err) == KindUnauthorized
}

// StatusOf returns the HTTP status carried by err, 0 if none.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: fmt.Sprintf("network error: %v", err), Err: err}
}

func unauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Status: 401, Message: MsgUnauthorized}
}

func httpError(status int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("HTTP error %d", status)
	}
	return &Error{Kind: KindHTTP, Status: status, Message: message}
}

func malformed(status int, what string) *Error {
	return &Error{Kind: KindMalformed, Status: status, Message: what + " response is malformed"}
}
