package goals

import "errors"

var (
	// ErrNotFound indicates no goals row has been stored yet.
	ErrNotFound = errors.New("goals not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
