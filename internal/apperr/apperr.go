// Package apperr defines the closed set of failure kinds the services
// report to clients and their HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the client
type Kind uint8

const (
	// KindInternal is for unclassified failures
	KindInternal Kind = iota

	// KindInvalidInput is for malformed or missing request fields
	KindInvalidInput

	// KindForbidden is for upstream access control failures
	KindForbidden

	// KindCommentsDisabled is for videos that do not accept comments
	KindCommentsDisabled

	// KindQuotaExceeded is for exhausted upstream API quota
	KindQuotaExceeded

	// KindNotFound is for missing videos or empty results
	KindNotFound

	// KindNotConfigured is for collaborators without credentials
	KindNotConfigured

	// KindUpstream is for any other failure reported by an external API
	KindUpstream
)

var kindNames = map[Kind]string{
	KindInternal:         "internal",
	KindInvalidInput:     "invalid_input",
	KindForbidden:        "forbidden",
	KindCommentsDisabled: "comments_disabled",
	KindQuotaExceeded:    "quota_exceeded",
	KindNotFound:         "not_found",
	KindNotConfigured:    "not_configured",
	KindUpstream:         "upstream",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// HTTPStatus maps a Kind to its response status
func HTTPStatus(k Kind) int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindForbidden, KindCommentsDisabled:
		return http.StatusForbidden
	case KindQuotaExceeded:
		return http.StatusTooManyRequests
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a Kind, a client facing message and the wrapped cause
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New creates an Error without a cause
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates an Error around cause
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status for e
func (e *Error) Status() int { return HTTPStatus(e.Kind) }

// KindOf returns the Kind of the first *Error in err's chain,
// or KindInternal when there is none.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
