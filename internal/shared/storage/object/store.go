// Package object stores backup snapshots as named objects.
package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound indicates the requested key does not exist.
var ErrNotFound = errors.New("object not found")

// Store defines the contract for writing and reading keyed objects.
type Store interface {
	// Put writes r under key, replacing any previous object.
	Put(ctx context.Context, key, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// List returns the keys under prefix in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)
}
