package goals

import "context"

// Repo persists the single goals row.
type Repo interface {
	// Get returns ErrNotFound when no row exists.
	Get(ctx context.Context) (Goals, error)
	Upsert(ctx context.Context, g Goals) error
	// CreateIfAbsent stores g only when no row exists yet.
	CreateIfAbsent(ctx context.Context, g Goals) error
}
