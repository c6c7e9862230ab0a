package goals

import (
	"context"
	"errors"
	"fmt"
)

// Service reads and updates the goal configuration.
type Service struct {
	Repo Repo
}

// Get returns the stored goals, creating the default row on first read.
func (s *Service) Get(ctx context.Context) (Goals, error) {
	g, err := s.Repo.Get(ctx)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Goals{}, err
	}
	def := Default()
	if err := s.Repo.CreateIfAbsent(ctx, def); err != nil {
		return Goals{}, err
	}
	return s.Repo.Get(ctx)
}

// DailyGoal returns the stored daily goal, or the default when no row
// exists. It never creates the row.
func (s *Service) DailyGoal(ctx context.Context) (int, error) {
	g, err := s.Repo.Get(ctx)
	if errors.Is(err, ErrNotFound) {
		return DefaultDailyGoal, nil
	}
	if err != nil {
		return 0, err
	}
	return g.DailyGoal, nil
}

// Set replaces both goals. Existing progress rows keep the goalMet flag
// computed under the old daily goal until their day is recomputed.
func (s *Service) Set(ctx context.Context, g Goals) (Goals, error) {
	if err := Validate(g); err != nil {
		return Goals{}, err
	}
	if err := s.Repo.Upsert(ctx, g); err != nil {
		return Goals{}, err
	}
	return g, nil
}

// Validate requires both goals to be positive.
func Validate(g Goals) error {
	if g.DailyGoal < 1 {
		return fmt.Errorf("%w: daily_goal must be a positive integer", ErrInvalidInput)
	}
	if g.WeeklyGoal < 1 {
		return fmt.Errorf("%w: weekly_goal must be a positive integer", ErrInvalidInput)
	}
	return nil
}
