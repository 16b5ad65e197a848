package predict

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorises prediction failures for diagnostics. Users never see
// it; every kind surfaces as the same analysis failure message.
type ErrorKind string

const (
	// ErrKindRequest indicates the request could not be built
	ErrKindRequest ErrorKind = "request"

	// ErrKindNetwork indicates the endpoint could not be reached
	ErrKindNetwork ErrorKind = "network"

	// ErrKindStatus indicates a non-2xx response
	ErrKindStatus ErrorKind = "status"

	// ErrKindDecode indicates a body that is not the expected JSON shape
	ErrKindDecode ErrorKind = "decode"
)

// Error is returned by every Client operation
type Error struct {
	Kind       ErrorKind
	Op         string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("op=%s", e.Op), fmt.Sprintf("kind=%s", e.Kind)}

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by kind, so errors.Is(err, &Error{Kind: ErrKindStatus}) works
func (e *Error) Is(target error) bool {
	if pe, ok := target.(*Error); ok {
		return e.Kind == pe.Kind
	}
	return false
}

func newError(kind ErrorKind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Cause: cause}
}

// KindOf returns the kind of a prediction error, or "" for foreign errors
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
