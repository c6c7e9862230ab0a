package applications

import "context"

// Repo defines persistence operations for applications.
type Repo interface {
	// List returns every application, newest dateApplied first.
	List(ctx context.Context) ([]Application, error)
	GetByID(ctx context.Context, id int64) (Application, error)
	Create(ctx context.Context, app Application) error
	// Update replaces every mutable field of an existing record.
	Update(ctx context.Context, app Application) error
	Delete(ctx context.Context, id int64) error
	CountByDateApplied(ctx context.Context, date string) (int, error)
	// DistinctDatesApplied returns every non-empty dateApplied, ascending.
	DistinctDatesApplied(ctx context.Context) ([]string, error)
}
