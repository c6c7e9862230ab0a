package applications

import "errors"

var (
	// ErrNotFound indicates the application does not exist.
	ErrNotFound = errors.New("application not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates an application with the same id already exists.
	ErrConflict = errors.New("application already exists")
)
