// Package apperr defines the error kinds returned by the service layer.
// Transport code maps a Kind to a status code; services never format
// responses themselves.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error independently of its message.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindDuplicateApplication
	KindInactivePosting
	KindDeadlinePassed
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindDuplicateApplication:
		return "duplicate_application"
	case KindInactivePosting:
		return "inactive_posting"
	case KindDeadlinePassed:
		return "deadline_passed"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// matches reports whether an error of kind k also counts as target.
// A duplicate application is a conflict.
func (k Kind) matches(target Kind) bool {
	if k == target {
		return true
	}
	return k == KindDuplicateApplication && target == KindConflict
}

// Error is the single error type produced by services.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field messages for validation failures.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error whose kind covers the target's kind, so
// errors.Is(err, apperr.ErrConflict) holds for duplicate applications.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind.matches(t.Kind)
}

// Sentinels for errors.Is checks.
var (
	ErrValidation           = &Error{Kind: KindValidation}
	ErrAuthentication       = &Error{Kind: KindAuthentication}
	ErrAuthorization        = &Error{Kind: KindAuthorization}
	ErrNotFound             = &Error{Kind: KindNotFound}
	ErrConflict             = &Error{Kind: KindConflict}
	ErrDuplicateApplication = &Error{Kind: KindDuplicateApplication}
	ErrInactivePosting      = &Error{Kind: KindInactivePosting}
	ErrDeadlinePassed       = &Error{Kind: KindDeadlinePassed}
	ErrStore                = &Error{Kind: KindStore}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func Authentication(message string) *Error { return New(KindAuthentication, message) }

func Authorization(message string) *Error { return New(KindAuthorization, message) }

func NotFound(message string) *Error { return New(KindNotFound, message) }

func Conflict(message string) *Error { return New(KindConflict, message) }

// Store wraps a persistence failure. The cause is kept for logs only.
func Store(op string, err error) *Error {
	return &Error{Kind: KindStore, Message: op, Err: err}
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
