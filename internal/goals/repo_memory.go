package goals

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu    sync.RWMutex
	goals *Goals
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Get(ctx context.Context) (Goals, error) {
	if err := ctx.Err(); err != nil {
		return Goals{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.goals == nil {
		return Goals{}, ErrNotFound
	}
	return *r.goals, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, g Goals) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals = &g
	return nil
}

func (r *MemoryRepo) CreateIfAbsent(ctx context.Context, g Goals) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.goals == nil {
		r.goals = &g
	}
	return nil
}
