package progress

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func fixedNow() time.Time {
	return time.Date(2025, time.June, 10, 22, 30, 0, 0, time.UTC)
}

func seed(t *testing.T, rows ...DailyRow) *MemoryRepo {
	t.Helper()
	repo := NewMemoryRepo()
	for _, row := range rows {
		if err := repo.Upsert(context.Background(), row); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}
	return repo
}

func TestParseDays(t *testing.T) {
	cases := map[string]int{
		"":     30,
		"abc":  30,
		"7":    7,
		"0":    1,
		"-4":   1,
		"366":  366,
		"1000": 366,
	}
	for raw, want := range cases {
		if got := ParseDays(raw); got != want {
			t.Fatalf("ParseDays(%q): expected %d, got %d", raw, want, got)
		}
	}
}

func TestDailyProgressZeroFillsAndOrders(t *testing.T) {
	repo := seed(t,
		DailyRow{Date: "2025-06-08", ApplicationsCount: 6, GoalMet: true},
		DailyRow{Date: "2025-06-10", ApplicationsCount: 2},
		DailyRow{Date: "2025-06-01", ApplicationsCount: 9, GoalMet: true},
	)
	r := &Reporter{Repo: repo, Now: fixedNow}

	got, err := r.DailyProgress(context.Background(), 4)
	if err != nil {
		t.Fatalf("DailyProgress: %v", err)
	}
	want := []Day{
		{Date: "2025-06-07"},
		{Date: "2025-06-08", Count: 6, GoalMet: true},
		{Date: "2025-06-09"},
		{Date: "2025-06-10", Count: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestDailyProgressClampsDays(t *testing.T) {
	r := &Reporter{Repo: NewMemoryRepo(), Now: fixedNow}

	got, err := r.DailyProgress(context.Background(), 0)
	if err != nil {
		t.Fatalf("DailyProgress: %v", err)
	}
	if diff := cmp.Diff([]Day{{Date: "2025-06-10"}}, got); diff != "" {
		t.Fatalf("series mismatch (-want +got):\n%s", diff)
	}

	got, _ = r.DailyProgress(context.Background(), 5000)
	if len(got) != MaxDays {
		t.Fatalf("expected %d days, got %d", MaxDays, len(got))
	}
	if got[len(got)-1].Date != "2025-06-10" {
		t.Fatalf("expected series to end today, got %s", got[len(got)-1].Date)
	}
}

func TestStreaksFollowStoredRowOrder(t *testing.T) {
	desc := []DailyRow{
		{Date: "2025-06-10", GoalMet: true},
		{Date: "2025-06-09", GoalMet: true},
		{Date: "2025-06-08", GoalMet: false},
		{Date: "2025-06-07", GoalMet: true},
		{Date: "2025-06-06", GoalMet: true},
	}
	if got := CurrentStreak(desc); got != 2 {
		t.Fatalf("expected current streak 2, got %d", got)
	}
	if got := LongestStreak(desc); got != 2 {
		t.Fatalf("expected longest streak 2, got %d", got)
	}
}

func TestStatsOverWindow(t *testing.T) {
	repo := seed(t,
		DailyRow{Date: "2025-06-10", ApplicationsCount: 5, GoalMet: true},
		DailyRow{Date: "2025-06-09", ApplicationsCount: 5, GoalMet: true},
		DailyRow{Date: "2025-06-08", ApplicationsCount: 1},
		// Gap on 06-07 does not break the older run.
		DailyRow{Date: "2025-06-06", ApplicationsCount: 5, GoalMet: true},
		// Outside the 30-day window but part of the all-time run.
		DailyRow{Date: "2025-04-01", ApplicationsCount: 7, GoalMet: true},
		DailyRow{Date: "2025-03-31", ApplicationsCount: 7, GoalMet: true},
	)
	r := &Reporter{Repo: repo, Now: fixedNow}

	got, err := r.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := Stats{DaysMet: 3, TotalDays: 4, CurrentStreak: 2, LongestStreak: 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
	if got.CurrentStreak > got.TotalDays || got.LongestStreak < got.CurrentStreak {
		t.Fatalf("streak bounds violated: %+v", got)
	}
}

func TestStatsEmptyStore(t *testing.T) {
	r := &Reporter{Repo: NewMemoryRepo(), Now: fixedNow}
	got, err := r.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if diff := cmp.Diff(Stats{}, got); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestWeeklySumsLastSevenDays(t *testing.T) {
	repo := seed(t,
		DailyRow{Date: "2025-06-10", ApplicationsCount: 4},
		DailyRow{Date: "2025-06-04", ApplicationsCount: 6, GoalMet: true},
		DailyRow{Date: "2025-06-03", ApplicationsCount: 50, GoalMet: true},
	)
	r := &Reporter{Repo: repo, Now: fixedNow}

	got, err := r.Weekly(context.Background(), 20)
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}
	if got.Total != 10 || got.Goal != 20 || got.Met || got.Percent != 50 || len(got.Days) != 7 {
		t.Fatalf("unexpected weekly: %+v", got)
	}
}
