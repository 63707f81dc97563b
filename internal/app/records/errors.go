package records

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed, contradictory or incomplete requests.
	ErrInvalidInput = errors.New("InvalidInput")
	// ErrNotFound marks well-formed requests for records that do not exist.
	ErrNotFound = errors.New("NotFound")
)

// Error is a user-facing failure. Kind is ErrInvalidInput or ErrNotFound.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func invalidf(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a NotFound failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput reports whether err is an InvalidInput failure.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
