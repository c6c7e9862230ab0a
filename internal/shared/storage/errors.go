package storage

import (
	"errors"
	"fmt"
)

// ErrUnavailable indicates the backing store could not serve the request.
var ErrUnavailable = errors.New("store unavailable")

type unavailableError struct {
	op  string
	err error
}

func (e *unavailableError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.op, ErrUnavailable, e.err)
}

func (e *unavailableError) Unwrap() []error {
	return []error{ErrUnavailable, e.err}
}

// Unavailable wraps a driver error so callers can match ErrUnavailable
// while keeping the original cause reachable via errors.Is/As.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &unavailableError{op: op, err: err}
}
