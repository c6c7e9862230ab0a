package applications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"jobtracker-backend/internal/shared/storage"
)

var applicationColumns = []string{
	"id", "date_applied", "week", "position", "company", "location", "seniority", "specialization",
	"job_posting_url", "status", "salary", "notes", "rejection_reason", "interviews", "created_at",
}

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateStoresInterviewsAsJSON(t *testing.T) {
	repo, mock := newMockRepo(t)
	app := Application{
		ID:             1717000000000,
		DateApplied:    "2025-06-01",
		Position:       "Backend Engineer",
		Company:        "Acme",
		Seniority:      "Senior",
		Specialization: "Backend",
		Status:         StatusApplied,
		Interviews:     NewInterviews(),
		CreatedAt:      time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO applications").
		WithArgs(
			app.ID,
			"2025-06-01",
			nil, // week
			app.Position,
			app.Company,
			nil, // location
			"Senior",
			"Backend",
			nil, // job_posting_url
			"Applied",
			nil, // salary
			nil, // notes
			nil, // rejection_reason
			sqlmock.AnyArg(),
			app.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDDecodesPartialInterviews(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(applicationColumns).AddRow(
		int64(5), "2025-06-01", nil, "Engineer", "Acme", nil, "Senior", "Backend",
		nil, "Rejected", nil, nil, "After HR", `{"hrCall":{"status":"failed"}}`, created,
	)
	mock.ExpectQuery("FROM applications").WithArgs(int64(5)).WillReturnRows(rows)

	app, err := repo.GetByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if app.Status != StatusRejected || app.RejectionReason != "After HR" {
		t.Fatalf("unexpected app: %+v", app)
	}
	if app.Interviews.HRCall.Status != InterviewFailed {
		t.Fatalf("expected hrCall failed, got %q", app.Interviews.HRCall.Status)
	}
	if app.Interviews.ScreeningCall.Status != InterviewPending {
		t.Fatalf("expected screening pending, got %q", app.Interviews.ScreeningCall.Status)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM applications").WithArgs(int64(9)).WillReturnRows(sqlmock.NewRows(applicationColumns))

	if _, err := repo.GetByID(context.Background(), 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateMissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE applications").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), Application{ID: 3, Status: StatusApplied, Interviews: NewInterviews()})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoCountWrapsDriverErrors(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT COUNT").WithArgs("2025-06-01").WillReturnError(errors.New("connection refused"))

	_, err := repo.CountByDateApplied(context.Background(), "2025-06-01")
	if !errors.Is(err, storage.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestPGRepoDistinctDatesApplied(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT DISTINCT date_applied").
		WillReturnRows(sqlmock.NewRows([]string{"date_applied"}).AddRow("2025-05-30").AddRow("2025-06-01"))

	dates, err := repo.DistinctDatesApplied(context.Background())
	if err != nil {
		t.Fatalf("DistinctDatesApplied: %v", err)
	}
	if len(dates) != 2 || dates[0] != "2025-05-30" || dates[1] != "2025-06-01" {
		t.Fatalf("unexpected dates: %v", dates)
	}
}
