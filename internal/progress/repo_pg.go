package progress

import (
	"context"
	"database/sql"

	"jobtracker-backend/internal/shared/storage"
)

// PGRepo implements Repo on database/sql (Postgres or SQLite).
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) GetRange(ctx context.Context, start, end string) ([]DailyRow, error) {
	const query = `
SELECT date, applications_count, goal_met
FROM daily_progress
WHERE date >= $1 AND date <= $2
ORDER BY date ASC`
	return r.query(ctx, "progress.get_range", query, start, end)
}

func (r *PGRepo) Upsert(ctx context.Context, row DailyRow) error {
	const query = `
INSERT INTO daily_progress (date, applications_count, goal_met)
VALUES ($1, $2, $3)
ON CONFLICT (date) DO UPDATE SET
    applications_count = EXCLUDED.applications_count,
    goal_met = EXCLUDED.goal_met`
	if _, err := r.DB.ExecContext(ctx, query, row.Date, row.ApplicationsCount, row.GoalMet); err != nil {
		return storage.Unavailable("progress.upsert", err)
	}
	return nil
}

func (r *PGRepo) ListDescending(ctx context.Context) ([]DailyRow, error) {
	const query = `
SELECT date, applications_count, goal_met
FROM daily_progress
ORDER BY date DESC`
	return r.query(ctx, "progress.list", query)
}

func (r *PGRepo) query(ctx context.Context, op, query string, args ...any) ([]DailyRow, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storage.Unavailable(op, err)
	}
	defer rows.Close()

	out := make([]DailyRow, 0)
	for rows.Next() {
		var row DailyRow
		if err := rows.Scan(&row.Date, &row.ApplicationsCount, &row.GoalMet); err != nil {
			return nil, storage.Unavailable(op, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Unavailable(op, err)
	}
	return out, nil
}
