package progress

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"
)

// Reporter produces the read-side views of daily progress.
type Reporter struct {
	Repo Repo
	Now  func() time.Time
}

func (r *Reporter) today() time.Time {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	t := now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDays reads the days query parameter. Missing or non-numeric values
// give DefaultDays; numbers are clamped to [MinDays, MaxDays].
func ParseDays(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultDays
	}
	return ClampDays(n)
}

// ClampDays bounds n to [MinDays, MaxDays].
func ClampDays(n int) int {
	if n < MinDays {
		return MinDays
	}
	if n > MaxDays {
		return MaxDays
	}
	return n
}

// DailyProgress returns exactly days entries ending today (UTC), oldest
// first. Days without a stored row are reported as zero.
func (r *Reporter) DailyProgress(ctx context.Context, days int) ([]Day, error) {
	days = ClampDays(days)
	end := r.today()
	start := end.AddDate(0, 0, -(days - 1))

	rows, err := r.Repo.GetRange(ctx, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]DailyRow, len(rows))
	for _, row := range rows {
		byDate[row.Date] = row
	}

	out := make([]Day, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		row := byDate[key]
		out = append(out, Day{Date: key, Count: row.ApplicationsCount, GoalMet: row.GoalMet})
	}
	return out, nil
}

// Stats summarizes the last StatsWindowDays days. Only stored rows count
// toward totalDays, and streaks run over consecutive stored rows: a day
// with no row does not break a streak.
func (r *Reporter) Stats(ctx context.Context) (Stats, error) {
	end := r.today()
	start := end.AddDate(0, 0, -(StatsWindowDays - 1))

	recent, err := r.Repo.GetRange(ctx, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return Stats{}, err
	}
	reverse(recent)

	all, err := r.Repo.ListDescending(ctx)
	if err != nil {
		return Stats{}, err
	}

	daysMet := 0
	for _, row := range recent {
		if row.GoalMet {
			daysMet++
		}
	}
	return Stats{
		DaysMet:       daysMet,
		TotalDays:     len(recent),
		CurrentStreak: CurrentStreak(recent),
		LongestStreak: LongestStreak(all),
	}, nil
}

// Weekly sums the last seven days and compares the total to weeklyGoal.
func (r *Reporter) Weekly(ctx context.Context, weeklyGoal int) (Weekly, error) {
	days, err := r.DailyProgress(ctx, weekDays)
	if err != nil {
		return Weekly{}, err
	}
	total := 0
	for _, d := range days {
		total += d.Count
	}
	percent := 100.0
	if weeklyGoal > 0 {
		percent = math.Min(float64(total)/float64(weeklyGoal)*100, 100)
	}
	return Weekly{
		Total:   total,
		Goal:    weeklyGoal,
		Met:     total >= weeklyGoal,
		Percent: percent,
		Days:    days,
	}, nil
}

// CurrentStreak counts the leading goal-met rows of a newest-first slice.
func CurrentStreak(desc []DailyRow) int {
	streak := 0
	for _, row := range desc {
		if !row.GoalMet {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak is the longest run of consecutive goal-met rows.
func LongestStreak(rows []DailyRow) int {
	longest, run := 0, 0
	for _, row := range rows {
		if !row.GoalMet {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return longest
}

func reverse(rows []DailyRow) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
