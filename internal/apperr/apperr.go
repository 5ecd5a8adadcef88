// Package apperr defines the error taxonomy shared by services and the HTTP
// layer. Services return *Error values; handlers map the Kind to a status.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindConflict
	KindNotFound
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not found"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error carries a Kind, a client-safe message and an optional cause.
// The cause is never shown to clients.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind and message, so sentinel values
// below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Msg: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindAuthorization, Msg: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindAuthentication, Msg: msg}
}

// Storage wraps a backing-store failure. op names the failed operation for logs.
func Storage(op string, err error) *Error {
	return &Error{Kind: KindStorage, Msg: op, Err: err}
}

var (
	ErrInvalidCredentials = Unauthorized("invalid credentials")
	ErrMissingToken       = Unauthorized("unauthorized: no token provided")
	ErrInvalidToken       = Unauthorized("unauthorized: invalid token")
	ErrAdminRequired      = Forbidden("forbidden: admin access required")
	ErrSelfAction         = Forbidden("forbidden: cannot perform this action on your own account")
	ErrEmailTaken         = Conflict("email already exists")
)

// KindOf reports the Kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the client-safe message. Storage and unknown errors
// collapse to a generic text.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindStorage {
		return e.Msg
	}
	return "internal error"
}
