package progress

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	rows map[string]DailyRow
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: make(map[string]DailyRow)}
}

func (r *MemoryRepo) GetRange(ctx context.Context, start, end string) ([]DailyRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]DailyRow, 0)
	for date, row := range r.rows {
		if date >= start && date <= end {
			out = append(out, row)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, row DailyRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[row.Date] = row
	return nil
}

func (r *MemoryRepo) ListDescending(ctx context.Context) ([]DailyRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]DailyRow, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}
