package event

import (
	"errors"
	"fmt"
)

// Predefined error values for payload handling. These are input errors: they
// abort the run before any network effect.
var (
	ErrEmptyPayload     = errors.New("empty event payload")
	ErrInvalidPayload   = errors.New("invalid event payload")
	ErrMissingIssue     = errors.New("missing issue in event")
	ErrMissingNumber    = errors.New("missing issue number in event")
	ErrUnsupportedEvent = errors.New("unsupported event type")
)

// PayloadError wraps a payload failure with the operation that produced it.
type PayloadError struct {
	Op  string // operation that failed ("read", "parse", "validate")
	Err error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("event %s failed: %v", e.Op, e.Err)
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

func readError(err error) error {
	return &PayloadError{Op: "read", Err: err}
}

func parseError(err error) error {
	return &PayloadError{Op: "parse", Err: err}
}

func validationError(err error) error {
	return &PayloadError{Op: "validate", Err: err}
}
