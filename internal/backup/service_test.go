package backup

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"jobtracker-backend/internal/applications"
	"jobtracker-backend/internal/goals"
	"jobtracker-backend/internal/progress"
	"jobtracker-backend/internal/shared/storage/object/local"
)

type harness struct {
	apps  *applications.MemoryRepo
	goals *goals.MemoryRepo
	rows  *progress.MemoryRepo
	svc   *Service
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		apps:  applications.NewMemoryRepo(),
		goals: goals.NewMemoryRepo(),
		rows:  progress.NewMemoryRepo(),
	}
	agg := &progress.Aggregator{Apps: h.apps, Goals: &goals.Service{Repo: h.goals}, Repo: h.rows}
	h.svc = &Service{
		Apps:      h.apps,
		Goals:     h.goals,
		Progress:  h.rows,
		Recalc:    agg,
		Store:     local.New(t.TempDir()),
		BatchSize: 2,
		Now: func() time.Time {
			return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
		},
	}
	return h
}

const legacyExport = `[
  // exported from the old SQLite file
  {"id": 1, "date_applied": "2025-05-30", "company": "Acme", "position": "Backend",
   "interviews": "{\"hrCall\":{\"status\":\"passed\",\"date\":\"2025-06-02\"}}"},
  {"id": 2, "date_applied": "2025-05-30", "company": "Globex", "status": "Rejected",
   "interviews": {"screeningCall": {"status": "failed"}}},
  {"id": 3, "company": "Initech", "interviews": null},
  {"id": 4, "company": "Broken", "status": "Ghosted"},
]`

func TestImportLegacyExport(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	res, err := h.svc.Import(ctx, strings.NewReader(legacyExport))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Imported != 3 || res.Invalid != 1 || res.Skipped != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.DaysRebuilt != 1 {
		t.Fatalf("expected one day rebuilt, got %d", res.DaysRebuilt)
	}

	acme, err := h.apps.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if acme.Interviews.HRCall.Status != applications.InterviewPassed || acme.Status != applications.StatusApplied {
		t.Fatalf("unexpected acme: %+v", acme)
	}
	if acme.Seniority != "Senior" || acme.Interviews.Offer.Status != applications.InterviewPending {
		t.Fatalf("defaults not applied: %+v", acme)
	}
	globex, _ := h.apps.GetByID(ctx, 2)
	if globex.Interviews.ScreeningCall.Status != applications.InterviewFailed {
		t.Fatalf("unexpected globex interviews: %+v", globex.Interviews)
	}

	g, err := h.goals.Get(ctx)
	if err != nil || g != goals.Default() {
		t.Fatalf("expected default goals stored, got %+v err=%v", g, err)
	}

	rows, _ := h.rows.GetRange(ctx, "2025-05-30", "2025-05-30")
	if len(rows) != 1 || rows[0].ApplicationsCount != 2 {
		t.Fatalf("unexpected progress rows %+v", rows)
	}
}

func TestImportIsRerunnable(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.svc.Import(ctx, strings.NewReader(legacyExport)); err != nil {
		t.Fatalf("first Import: %v", err)
	}
	res, err := h.svc.Import(ctx, strings.NewReader(legacyExport))
	if err != nil {
		t.Fatalf("second Import: %v", err)
	}
	if res.Imported != 0 || res.Skipped != 3 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestImportKeepsExistingGoals(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.goals.Upsert(ctx, goals.Goals{DailyGoal: 2, WeeklyGoal: 10})

	if _, err := h.svc.Import(ctx, strings.NewReader(`[]`)); err != nil {
		t.Fatalf("Import: %v", err)
	}
	g, _ := h.goals.Get(ctx)
	if g.DailyGoal != 2 {
		t.Fatalf("expected existing goals kept, got %+v", g)
	}
}

func TestExportThenRestoreRoundTrip(t *testing.T) {
	src := newHarness(t)
	ctx := context.Background()
	_ = src.goals.Upsert(ctx, goals.Goals{DailyGoal: 3, WeeklyGoal: 12})
	_ = src.apps.Create(ctx, applications.Application{ID: 9, Company: "Acme", DateApplied: "2025-05-31"}.WithDefaults())

	key, n, err := src.svc.Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if key != "snapshots/snapshot-20250601T120000Z.json" || n == 0 {
		t.Fatalf("unexpected export key=%s bytes=%d", key, n)
	}
	latest, err := src.svc.Latest(ctx)
	if err != nil || latest != key {
		t.Fatalf("expected latest %s, got %s err=%v", key, latest, err)
	}

	dst := newHarness(t)
	dst.svc.Store = src.svc.Store
	res, err := dst.svc.Restore(ctx, key)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if res.Imported != 1 || !res.GoalsRestored {
		t.Fatalf("unexpected result %+v", res)
	}
	g, _ := dst.goals.Get(ctx)
	if g.DailyGoal != 3 || g.WeeklyGoal != 12 {
		t.Fatalf("unexpected goals %+v", g)
	}
	rows, _ := dst.rows.GetRange(ctx, "2025-05-31", "2025-05-31")
	if len(rows) != 1 || rows[0].ApplicationsCount != 1 || rows[0].GoalMet {
		t.Fatalf("expected rebuilt progress under the restored goal, got %+v", rows)
	}
}

func TestLatestWithoutSnapshots(t *testing.T) {
	h := newHarness(t)
	if _, err := h.svc.Latest(context.Background()); err != ErrNoSnapshot {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestParseRejectsNewerVersion(t *testing.T) {
	if _, err := parse([]byte(`{"version": 99, "applications": []}`)); err == nil {
		t.Fatalf("expected version error")
	}
}

func TestImportRejectsInvalidGoalsBeforeWriting(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	snapshot := `{
  "version": 1,
  "goals": {"daily_goal": 0, "weekly_goal": 25},
  "applications": [{"id": 10, "company": "Acme", "dateApplied": "2025-06-01"}]
}`
	_, err := h.svc.Import(ctx, strings.NewReader(snapshot))
	if !errors.Is(err, goals.ErrInvalidInput) {
		t.Fatalf("expected invalid goals error, got %v", err)
	}
	apps, _ := h.apps.List(ctx)
	if len(apps) != 0 {
		t.Fatalf("expected nothing imported, got %d applications", len(apps))
	}
}
