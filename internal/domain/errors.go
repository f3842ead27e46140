package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure of the orchestration path. Every failure
// surfaces exactly one kind; none are swallowed or silently retried.
type ErrorKind string

const (
	// ErrInvalidRequest marks malformed input. Never retryable as-is.
	ErrInvalidRequest ErrorKind = "invalid_request"
	// ErrGatewayUnavailable marks a transport-level failure reaching the
	// completion endpoint: no response at all. The caller may re-invoke.
	ErrGatewayUnavailable ErrorKind = "gateway_unavailable"
	// ErrUpstream marks a non-success status from the completion endpoint.
	// The upstream's own diagnostic detail is preserved.
	ErrUpstream ErrorKind = "upstream_error"
	// ErrEmptyCompletion marks a success response carrying no usable reply
	// content: a malformed success rather than an outage.
	ErrEmptyCompletion ErrorKind = "empty_completion"
	// ErrPersistence marks an unreachable or failing transcript store.
	ErrPersistence ErrorKind = "persistence_error"
)

// Error is a classified orchestration failure.
type Error struct {
	Kind ErrorKind
	// Status is the upstream HTTP status for ErrUpstream, zero otherwise.
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s [%d]: %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a classified error wrapping cause (which may be nil).
func NewError(kind ErrorKind, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

// NewUpstreamError builds an ErrUpstream carrying the provider's status code
// and error message verbatim.
func NewUpstreamError(status int, message string) *Error {
	return &Error{Kind: ErrUpstream, Status: status, Message: message}
}

// KindOf extracts the classified kind from err, or the empty kind if err
// carries no classification.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
