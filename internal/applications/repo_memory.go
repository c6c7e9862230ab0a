package applications

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[int64]Application
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[int64]Application)}
}

func (r *MemoryRepo) List(ctx context.Context) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	apps := make([]Application, 0, len(r.data))
	for _, app := range r.data {
		apps = append(apps, app)
	}
	r.mu.RUnlock()

	sort.Slice(apps, func(i, j int) bool {
		if apps[i].DateApplied != apps[j].DateApplied {
			return apps[i].DateApplied > apps[j].DateApplied
		}
		return apps[i].ID > apps[j].ID
	})
	return apps, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.data[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.data[app.ID]; exists {
		return ErrConflict
	}
	r.data[app.ID] = app
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[app.ID]
	if !ok {
		return ErrNotFound
	}
	app.CreatedAt = existing.CreatedAt
	r.data[app.ID] = app
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *MemoryRepo) CountByDateApplied(ctx context.Context, date string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, app := range r.data {
		if app.DateApplied == date {
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepo) DistinctDatesApplied(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	seen := make(map[string]struct{})
	for _, app := range r.data {
		if app.DateApplied != "" {
			seen[app.DateApplied] = struct{}{}
		}
	}
	r.mu.RUnlock()

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates, nil
}
