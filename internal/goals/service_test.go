package goals

import (
	"context"
	"errors"
	"testing"
)

func TestGetCreatesDefaultOnFirstRead(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo}

	g, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if g != Default() {
		t.Fatalf("expected defaults, got %+v", g)
	}
	if stored, err := repo.Get(context.Background()); err != nil || stored != Default() {
		t.Fatalf("expected default row stored, got %+v err=%v", stored, err)
	}
}

func TestDailyGoalDoesNotCreateRow(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo}

	goal, err := svc.DailyGoal(context.Background())
	if err != nil {
		t.Fatalf("DailyGoal: %v", err)
	}
	if goal != DefaultDailyGoal {
		t.Fatalf("expected %d, got %d", DefaultDailyGoal, goal)
	}
	if _, err := repo.Get(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected no row, got %v", err)
	}
}

func TestSetValidatesAndStores(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	if _, err := svc.Set(ctx, Goals{DailyGoal: 0, WeeklyGoal: 10}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Set(ctx, Goals{DailyGoal: 3, WeeklyGoal: 15}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	g, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if g.DailyGoal != 3 || g.WeeklyGoal != 15 {
		t.Fatalf("unexpected goals %+v", g)
	}
}
