package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"jobtracker-backend/internal/shared/storage"
)

// PGRepo implements Repo on database/sql. The queries run unchanged on
// Postgres (pgx) and SQLite.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, date_applied, week, position, company, location, seniority, specialization,
       job_posting_url, status, salary, notes, rejection_reason, interviews, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var (
		app                                   Application
		dateApplied, week, location           sql.NullString
		seniority, specialization, postingURL sql.NullString
		status, salary, notes, reason         sql.NullString
		interviews                            sql.NullString
	)
	if err := row.Scan(
		&app.ID,
		&dateApplied,
		&week,
		&app.Position,
		&app.Company,
		&location,
		&seniority,
		&specialization,
		&postingURL,
		&status,
		&salary,
		&notes,
		&reason,
		&interviews,
		&app.CreatedAt,
	); err != nil {
		return Application{}, err
	}
	app.DateApplied = dateApplied.String
	app.Week = week.String
	app.Location = location.String
	app.Seniority = seniority.String
	app.Specialization = specialization.String
	app.JobPostingURL = postingURL.String
	app.Status = Status(status.String)
	app.Salary = salary.String
	app.Notes = notes.String
	app.RejectionReason = reason.String

	app.Interviews = NewInterviews()
	if interviews.Valid && strings.TrimSpace(interviews.String) != "" {
		if err := json.Unmarshal([]byte(interviews.String), &app.Interviews); err != nil {
			return Application{}, fmt.Errorf("decode interviews for application %d: %w", app.ID, err)
		}
	}
	return app, nil
}

// List returns every application, newest dateApplied first.
func (r *PGRepo) List(ctx context.Context) ([]Application, error) {
	query := `SELECT ` + selectColumns + `
FROM applications
ORDER BY date_applied DESC NULLS LAST, id DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, storage.Unavailable("applications.list", err)
	}
	defer rows.Close()

	apps := make([]Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, storage.Unavailable("applications.list", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Unavailable("applications.list", err)
	}
	return apps, nil
}

// GetByID returns one application.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (Application, error) {
	query := `SELECT ` + selectColumns + `
FROM applications
WHERE id = $1`
	app, err := scanApplication(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, storage.Unavailable("applications.get", err)
	}
	return app, nil
}

// Create inserts a new application.
func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (
    id,
    date_applied,
    week,
    position,
    company,
    location,
    seniority,
    specialization,
    job_posting_url,
    status,
    salary,
    notes,
    rejection_reason,
    interviews,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	interviews, err := json.Marshal(app.Interviews)
	if err != nil {
		return fmt.Errorf("encode interviews: %w", err)
	}
	_, err = r.DB.ExecContext(
		ctx,
		query,
		app.ID,
		nullString(app.DateApplied),
		nullString(app.Week),
		app.Position,
		app.Company,
		nullString(app.Location),
		app.Seniority,
		app.Specialization,
		nullString(app.JobPostingURL),
		string(app.Status),
		nullString(app.Salary),
		nullString(app.Notes),
		nullString(app.RejectionReason),
		string(interviews),
		app.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return storage.Unavailable("applications.create", err)
	}
	return nil
}

// Update replaces every mutable field; id and created_at are kept.
func (r *PGRepo) Update(ctx context.Context, app Application) error {
	const query = `
UPDATE applications SET
    date_applied = $1,
    week = $2,
    position = $3,
    company = $4,
    location = $5,
    seniority = $6,
    specialization = $7,
    job_posting_url = $8,
    status = $9,
    salary = $10,
    notes = $11,
    rejection_reason = $12,
    interviews = $13
WHERE id = $14`

	interviews, err := json.Marshal(app.Interviews)
	if err != nil {
		return fmt.Errorf("encode interviews: %w", err)
	}
	res, err := r.DB.ExecContext(
		ctx,
		query,
		nullString(app.DateApplied),
		nullString(app.Week),
		app.Position,
		app.Company,
		nullString(app.Location),
		app.Seniority,
		app.Specialization,
		nullString(app.JobPostingURL),
		string(app.Status),
		nullString(app.Salary),
		nullString(app.Notes),
		nullString(app.RejectionReason),
		string(interviews),
		app.ID,
	)
	if err != nil {
		return storage.Unavailable("applications.update", err)
	}
	return requireAffected(res, "applications.update")
}

// Delete removes one application.
func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return storage.Unavailable("applications.delete", err)
	}
	return requireAffected(res, "applications.delete")
}

// CountByDateApplied counts applications sent on date.
func (r *PGRepo) CountByDateApplied(ctx context.Context, date string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications WHERE date_applied = $1`, date).Scan(&count)
	if err != nil {
		return 0, storage.Unavailable("applications.count_by_date", err)
	}
	return count, nil
}

// DistinctDatesApplied returns every non-empty dateApplied, ascending.
func (r *PGRepo) DistinctDatesApplied(ctx context.Context) ([]string, error) {
	const query = `
SELECT DISTINCT date_applied
FROM applications
WHERE date_applied IS NOT NULL AND date_applied <> ''
ORDER BY date_applied`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, storage.Unavailable("applications.distinct_dates", err)
	}
	defer rows.Close()

	dates := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, storage.Unavailable("applications.distinct_dates", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Unavailable("applications.distinct_dates", err)
	}
	return dates, nil
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storage.Unavailable(op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// modernc sqlite reports constraint failures only through the message.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
