package applications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobtracker-backend/internal/shared/metrics"
	"jobtracker-backend/internal/shared/telemetry"
)

// ProgressRecomputer refreshes the daily progress rows of the given dates.
type ProgressRecomputer interface {
	RecomputeDays(ctx context.Context, dates ...string) error
}

// Mirror receives a copy of every newly created application.
type Mirror interface {
	MirrorApplication(ctx context.Context, app Application) error
}

// Service contains business logic for applications.
type Service struct {
	Repo     Repo
	Progress ProgressRecomputer
	Mirror   Mirror
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List returns every application, newest first.
func (s *Service) List(ctx context.Context) ([]Application, error) {
	return s.Repo.List(ctx)
}

// Get returns one application.
func (s *Service) Get(ctx context.Context, id int64) (Application, error) {
	return s.Repo.GetByID(ctx, id)
}

// Create stores a new application and refreshes the progress of its date.
// A zero id is replaced by the current Unix time in milliseconds.
func (s *Service) Create(ctx context.Context, app Application) (Application, error) {
	app = app.WithDefaults()
	if err := Validate(app); err != nil {
		return Application{}, err
	}
	now := s.now().UTC()
	if app.ID == 0 {
		app.ID = now.UnixMilli()
	}
	app.CreatedAt = now

	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, err
	}
	metrics.IncApplicationWrite("create")
	s.recompute(ctx, app.ID, app.DateApplied)
	s.mirror(ctx, app)
	return app, nil
}

// Update fully replaces an existing application. When dateApplied moves,
// both the old and the new day are recomputed.
func (s *Service) Update(ctx context.Context, app Application) (Application, error) {
	existing, err := s.Repo.GetByID(ctx, app.ID)
	if err != nil {
		return Application{}, err
	}
	app = app.WithDefaults()
	if err := Validate(app); err != nil {
		return Application{}, err
	}
	app.CreatedAt = existing.CreatedAt

	if err := s.Repo.Update(ctx, app); err != nil {
		return Application{}, err
	}
	metrics.IncApplicationWrite("update")
	if existing.DateApplied != app.DateApplied {
		s.recompute(ctx, app.ID, existing.DateApplied, app.DateApplied)
	}
	return app, nil
}

// Delete removes an application and recomputes the day it counted toward.
func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.IncApplicationWrite("delete")
	s.recompute(ctx, id, existing.DateApplied)
	return nil
}

// recompute logs failures; the write has already been committed.
func (s *Service) recompute(ctx context.Context, id int64, dates ...string) {
	if s.Progress == nil {
		return
	}
	if err := s.Progress.RecomputeDays(ctx, dates...); err != nil {
		telemetry.Warn("progress.recompute_failed", map[string]any{
			"application_id": id,
			"dates":          strings.Join(dates, ","),
			"error":          err,
		})
	}
}

func (s *Service) mirror(ctx context.Context, app Application) {
	if s.Mirror == nil {
		return
	}
	if err := s.Mirror.MirrorApplication(ctx, app); err != nil {
		telemetry.Warn("applications.mirror_failed", map[string]any{
			"application_id": app.ID,
			"error":          err,
		})
	}
}

// Validate checks the fields the store relies on.
func Validate(app Application) error {
	if app.ID < 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}
	if !app.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, app.Status)
	}
	if app.DateApplied != "" {
		if _, err := time.Parse(DateLayout, app.DateApplied); err != nil {
			return fmt.Errorf("%w: dateApplied must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	for _, key := range StageOrder {
		if st := app.Interviews.Stage(key).Status; !st.valid() {
			return fmt.Errorf("%w: %s has unknown status %q", ErrInvalidInput, key, st)
		}
	}
	return nil
}
