// Package backup exports the tracker to an object store and imports
// snapshots or legacy JSON exports back into the record store.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"jobtracker-backend/internal/applications"
	"jobtracker-backend/internal/goals"
	"jobtracker-backend/internal/progress"
	"jobtracker-backend/internal/shared/metrics"
	"jobtracker-backend/internal/shared/storage/object"
	"jobtracker-backend/internal/shared/telemetry"
)

const (
	// KeyPrefix prefixes every snapshot key; keys sort by export time.
	KeyPrefix = "snapshots/snapshot-"
	keyLayout = "20060102T150405Z"

	// DefaultBatchSize is how many records are imported between progress logs.
	DefaultBatchSize = 20
)

// ErrNoSnapshot indicates the store holds no snapshot yet.
var ErrNoSnapshot = errors.New("no snapshot found")

// Recalculator rebuilds daily progress after a bulk load.
type Recalculator interface {
	RecalculateAll(ctx context.Context) (int, error)
}

// Service moves tracker data in and out of the record store.
type Service struct {
	Apps      applications.Repo
	Goals     goals.Repo
	Progress  progress.Repo
	Recalc    Recalculator
	Store     object.Store
	BatchSize int
	Now       func() time.Time
}

// ImportResult counts what an import did.
type ImportResult struct {
	Imported      int  `json:"imported"`
	Skipped       int  `json:"skipped"`
	Invalid       int  `json:"invalid"`
	DaysRebuilt   int  `json:"daysRebuilt"`
	GoalsRestored bool `json:"goalsRestored"`
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Snapshot reads the full record store.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	apps, err := s.Apps.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list applications: %w", err)
	}
	snap := Snapshot{
		Version:      snapshotVersion,
		ExportedAt:   s.now().UTC(),
		Applications: apps,
	}
	g, err := s.Goals.Get(ctx)
	switch {
	case err == nil:
		snap.Goals = &g
	case !errors.Is(err, goals.ErrNotFound):
		return Snapshot{}, fmt.Errorf("read goals: %w", err)
	}
	if s.Progress != nil {
		rows, err := s.Progress.ListDescending(ctx)
		if err != nil {
			return Snapshot{}, fmt.Errorf("list progress: %w", err)
		}
		snap.DailyProgress = rows
	}
	return snap, nil
}

// Export writes a snapshot to the object store and returns its key.
func (s *Service) Export(ctx context.Context) (string, int64, error) {
	if s.Store == nil {
		return "", 0, errors.New("object store not configured")
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return "", 0, err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", 0, fmt.Errorf("encode snapshot: %w", err)
	}

	key := KeyPrefix + snap.ExportedAt.Format(keyLayout) + ".json"
	n, err := s.Store.Put(ctx, key, "application/json", bytes.NewReader(data))
	if err != nil {
		return "", 0, fmt.Errorf("store snapshot: %w", err)
	}
	telemetry.Info("backup.exported", map[string]any{
		"key":          key,
		"bytes":        n,
		"applications": len(snap.Applications),
	})
	return key, n, nil
}

// Latest returns the key of the newest snapshot in the store.
func (s *Service) Latest(ctx context.Context) (string, error) {
	keys, err := s.Store.List(ctx, KeyPrefix)
	if err != nil {
		return "", fmt.Errorf("list snapshots: %w", err)
	}
	if len(keys) == 0 {
		return "", ErrNoSnapshot
	}
	latest := keys[0]
	for _, k := range keys[1:] {
		if k > latest {
			latest = k
		}
	}
	return latest, nil
}

// Restore imports the snapshot stored under key.
func (s *Service) Restore(ctx context.Context, key string) (ImportResult, error) {
	rc, err := s.Store.Open(ctx, key)
	if err != nil {
		return ImportResult{}, err
	}
	defer rc.Close()
	return s.Import(ctx, rc)
}

// Import loads a snapshot or legacy export. Records whose id already exists
// are skipped, so an import can be re-run. Missing fields get the same
// defaults as a create; records that still fail validation are counted as
// invalid and skipped. Goals come from the snapshot when present, otherwise
// the defaults are stored if no goals row exists. Daily progress is rebuilt
// from the imported applications afterwards.
func (s *Service) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read export: %w", err)
	}
	snap, err := parse(data)
	if err != nil {
		return ImportResult{}, err
	}
	if snap.Goals != nil {
		if err := goals.Validate(*snap.Goals); err != nil {
			return ImportResult{}, err
		}
	}

	batch := s.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	var res ImportResult
	total := len(snap.Applications)
	for start := 0; start < total; start += batch {
		end := start + batch
		if end > total {
			end = total
		}
		for _, app := range snap.Applications[start:end] {
			if err := s.importOne(ctx, app, &res); err != nil {
				return res, err
			}
		}
		telemetry.Info("backup.import_batch", map[string]any{
			"done":  end,
			"total": total,
		})
	}

	if snap.Goals != nil {
		if err := s.Goals.Upsert(ctx, *snap.Goals); err != nil {
			return res, fmt.Errorf("restore goals: %w", err)
		}
		res.GoalsRestored = true
	} else if err := s.Goals.CreateIfAbsent(ctx, goals.Default()); err != nil {
		return res, fmt.Errorf("store default goals: %w", err)
	}

	if s.Recalc != nil {
		days, err := s.Recalc.RecalculateAll(ctx)
		if err != nil {
			return res, fmt.Errorf("rebuild progress: %w", err)
		}
		res.DaysRebuilt = days
	}

	telemetry.Info("backup.imported", map[string]any{
		"imported": res.Imported,
		"skipped":  res.Skipped,
		"invalid":  res.Invalid,
	})
	return res, nil
}

func (s *Service) importOne(ctx context.Context, app applications.Application, res *ImportResult) error {
	app = app.WithDefaults()
	if app.CreatedAt.IsZero() {
		app.CreatedAt = s.now().UTC()
	}
	if app.ID <= 0 {
		res.Invalid++
		telemetry.Warn("backup.invalid_record", map[string]any{"company": app.Company, "error": "missing id"})
		return nil
	}
	if err := applications.Validate(app); err != nil {
		res.Invalid++
		telemetry.Warn("backup.invalid_record", map[string]any{"application_id": app.ID, "error": err})
		return nil
	}
	err := s.Apps.Create(ctx, app)
	switch {
	case err == nil:
		res.Imported++
		metrics.IncApplicationWrite("import")
	case errors.Is(err, applications.ErrConflict):
		res.Skipped++
	default:
		return fmt.Errorf("import application %d: %w", app.ID, err)
	}
	return nil
}
