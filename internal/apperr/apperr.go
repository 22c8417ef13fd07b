// Package apperr provides the error kinds the services return and the
// mapping from a kind to an HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so callers can branch on it without knowing
// the concrete error value.
type Kind uint8

const (
	KindInternal Kind = iota
	// KindFieldValidation is a missing or invalid required input.
	KindFieldValidation
	// KindContentPolicy is comment text that breaks the length or word rules.
	KindContentPolicy
	// KindPreconditionFailed is a request missing context an operation needs.
	KindPreconditionFailed
	// KindTooOld is a deletion attempted outside the moderation window.
	KindTooOld
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindConflict
)

var kindNames = map[Kind]string{
	KindInternal:           "INTERNAL_ERROR",
	KindFieldValidation:    "VALIDATION_ERROR",
	KindContentPolicy:      "CONTENT_POLICY",
	KindPreconditionFailed: "PRECONDITION_FAILED",
	KindTooOld:             "TOO_OLD",
	KindNotFound:           "NOT_FOUND",
	KindUnauthorized:       "UNAUTHORIZED",
	KindForbidden:          "FORBIDDEN",
	KindConflict:           "CONFLICT",
}

// String returns the wire code for the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[KindInternal]
}

// HTTPStatus turns a kind into an http status code.
func HTTPStatus(k Kind) int {
	switch k {
	case KindFieldValidation, KindContentPolicy, KindPreconditionFailed, KindTooOld:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a kind, a caller facing message, an optional field name
// and an optional wrapped cause.
type Error struct {
	kind  Kind
	msg   string
	field string
	cause error
}

// New builds an error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Newf builds an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to cause. errors.Is(err, cause) keeps working.
func Wrap(cause error, kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

// WithField returns a copy of e tagged with the offending input field.
func (e *Error) WithField(field string) *Error {
	cp := *e
	cp.field = field
	return &cp
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.cause }

// Kind returns the error kind.
func (e *Error) Kind() Kind { return e.kind }

// Field returns the input field the error refers to, if any.
func (e *Error) Field() string { return e.field }

// Message returns the caller facing message.
func (e *Error) Message() string { return e.msg }

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
