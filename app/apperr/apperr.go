// Package apperr defines the typed errors every handler reports and the
// mapping from error kind to HTTP status.
package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Kind classifies a failure for clients.
type Kind string

const (
	Unauthenticated  Kind = "Unauthenticated"
	Forbidden        Kind = "Forbidden"
	NotFound         Kind = "NotFound"
	MethodNotAllowed Kind = "MethodNotAllowed"
	Validation       Kind = "ValidationError"
	Conflict         Kind = "Conflict"
	Store            Kind = "StoreError"
)

// Error is a failure with a client-facing message. Err carries the
// underlying cause and is never sent to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error without an underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error around cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf reports the kind of err. Untyped errors are store errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Store
}

// Is reports whether err is an Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Status maps a kind to its HTTP status code.
func Status(kind Kind) int {
	switch kind {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case MethodNotAllowed:
		return http.StatusMethodNotAllowed
	case Validation:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Body is the JSON envelope written for every failed request.
type Body struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// BodyOf builds the client-facing envelope for err. Untyped errors are
// reported with a generic message so internal details stay server-side.
func BodyOf(err error) Body {
	var e *Error
	if errors.As(err, &e) {
		return Body{Kind: e.Kind, Message: e.Message}
	}
	return Body{Kind: Store, Message: "internal server error"}
}

// Write renders err as a JSON envelope with the matching status code.
func Write(w http.ResponseWriter, err error) {
	body := BodyOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(Status(body.Kind))
	json.NewEncoder(w).Encode(body)
}
