package progress

import (
	"context"
	"errors"
	"fmt"

	"jobtracker-backend/internal/shared/metrics"
	"jobtracker-backend/internal/shared/telemetry"
)

// ApplicationCounter is the read side of the application store the
// aggregator depends on.
type ApplicationCounter interface {
	CountByDateApplied(ctx context.Context, date string) (int, error)
	DistinctDatesApplied(ctx context.Context) ([]string, error)
}

// DailyGoalReader returns the current daily goal. Implementations fall back
// to the default when no goals row exists.
type DailyGoalReader interface {
	DailyGoal(ctx context.Context) (int, error)
}

// Aggregator keeps daily progress rows in step with the application store.
type Aggregator struct {
	Apps  ApplicationCounter
	Goals DailyGoalReader
	Repo  Repo
}

// RecomputeDay recounts applications sent on date and stores the row.
// An empty date is a no-op. Running it twice gives the same row.
func (a *Aggregator) RecomputeDay(ctx context.Context, date string) (err error) {
	if date == "" {
		return nil
	}
	defer func() { metrics.IncRecompute(err) }()

	count, err := a.Apps.CountByDateApplied(ctx, date)
	if err != nil {
		return fmt.Errorf("count applications for %s: %w", date, err)
	}
	goal, err := a.Goals.DailyGoal(ctx)
	if err != nil {
		return fmt.Errorf("read daily goal: %w", err)
	}
	row := DailyRow{Date: date, ApplicationsCount: count, GoalMet: count >= goal}
	if err := a.Repo.Upsert(ctx, row); err != nil {
		return fmt.Errorf("store progress for %s: %w", date, err)
	}
	return nil
}

// RecomputeDays recomputes each distinct non-empty date once. A failing
// date does not stop the others; all failures are returned joined.
func (a *Aggregator) RecomputeDays(ctx context.Context, dates ...string) error {
	seen := make(map[string]struct{}, len(dates))
	var errs []error
	for _, date := range dates {
		if date == "" {
			continue
		}
		if _, dup := seen[date]; dup {
			continue
		}
		seen[date] = struct{}{}
		if err := a.RecomputeDay(ctx, date); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecalculateAll rebuilds the row of every date that has at least one
// application. Rows of dates without applications are left untouched.
func (a *Aggregator) RecalculateAll(ctx context.Context) (int, error) {
	dates, err := a.Apps.DistinctDatesApplied(ctx)
	if err != nil {
		return 0, fmt.Errorf("list application dates: %w", err)
	}
	for i, date := range dates {
		if err := a.RecomputeDay(ctx, date); err != nil {
			return i, err
		}
	}
	telemetry.Info("progress.recalculated", map[string]any{"days": len(dates)})
	return len(dates), nil
}
