package goals

import (
	"context"
	"database/sql"
	"errors"

	"jobtracker-backend/internal/shared/storage"
)

// singletonID is the primary key of the only goals row.
const singletonID = 1

// PGRepo implements Repo on database/sql (Postgres or SQLite).
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Get(ctx context.Context) (Goals, error) {
	var g Goals
	err := r.DB.QueryRowContext(ctx, `SELECT daily_goal, weekly_goal FROM goals WHERE id = $1`, singletonID).
		Scan(&g.DailyGoal, &g.WeeklyGoal)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Goals{}, ErrNotFound
		}
		return Goals{}, storage.Unavailable("goals.get", err)
	}
	return g, nil
}

func (r *PGRepo) Upsert(ctx context.Context, g Goals) error {
	const query = `
INSERT INTO goals (id, daily_goal, weekly_goal)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET
    daily_goal = EXCLUDED.daily_goal,
    weekly_goal = EXCLUDED.weekly_goal`
	if _, err := r.DB.ExecContext(ctx, query, singletonID, g.DailyGoal, g.WeeklyGoal); err != nil {
		return storage.Unavailable("goals.upsert", err)
	}
	return nil
}

func (r *PGRepo) CreateIfAbsent(ctx context.Context, g Goals) error {
	const query = `
INSERT INTO goals (id, daily_goal, weekly_goal)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO NOTHING`
	if _, err := r.DB.ExecContext(ctx, query, singletonID, g.DailyGoal, g.WeeklyGoal); err != nil {
		return storage.Unavailable("goals.create_if_absent", err)
	}
	return nil
}
