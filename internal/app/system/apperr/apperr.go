// Package apperr defines the business-rule error taxonomy for PeerHub.
//
// Every rule violation is raised at the point of violation with one of the
// kinds below; nothing is silently coerced. Handlers translate kinds to
// HTTP status codes with Status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a business-rule failure.
type Kind int

const (
	// Validation is malformed or missing input, including a ratings vector
	// that does not match the assignment's question schema.
	Validation Kind = iota
	// NotFound is an absent workspace, assignment, or review.
	NotFound
	// Authorization is a wrong role or wrong reviewer.
	Authorization
	// WindowClosed is a submission outside [StartDate, DueDate].
	WindowClosed
	// NoData is an aggregation over an empty set.
	NoData
	// Internal is a storage failure that survived the retry policy.
	Internal
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Authorization:
		return "authorization"
	case WindowClosed:
		return "window_closed"
	case NoData:
		return "no_data"
	default:
		return "internal"
	}
}

// Error carries a kind, a caller-safe message, and an optional wrapped cause.
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

func (e *Error) Unwrap() error { return e.Err }

// New returns an error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

// Newf returns an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error of the given kind wrapping cause. A nil cause
// yields nil so call sites can wrap unconditionally.
func Wrap(kind Kind, msg string, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// KindOf extracts the kind from err. Unclassified errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Message returns the caller-safe message for err. Unclassified errors get
// a generic message so internal details never leak to clients.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

// Status maps an error kind to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case NotFound, NoData:
		return http.StatusNotFound
	case Authorization, WindowClosed:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
