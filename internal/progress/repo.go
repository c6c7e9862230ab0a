package progress

import "context"

// Repo persists daily progress rows.
type Repo interface {
	// GetRange returns rows with start <= date <= end, ascending.
	GetRange(ctx context.Context, start, end string) ([]DailyRow, error)
	Upsert(ctx context.Context, row DailyRow) error
	// ListDescending returns every row, newest date first.
	ListDescending(ctx context.Context) ([]DailyRow, error)
}
