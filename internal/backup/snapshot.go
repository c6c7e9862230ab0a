package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tailscale/hujson"

	"jobtracker-backend/internal/applications"
	"jobtracker-backend/internal/goals"
	"jobtracker-backend/internal/progress"
)

const snapshotVersion = 1

// Snapshot is the export document.
type Snapshot struct {
	Version       int                        `json:"version"`
	ExportedAt    time.Time                  `json:"exportedAt"`
	Goals         *goals.Goals               `json:"goals,omitempty"`
	Applications  []applications.Application `json:"applications"`
	DailyProgress []progress.DailyRow        `json:"dailyProgress,omitempty"`
}

// legacyRow is one record of the flat export produced by the first
// SQLite-backed version of the tracker: snake_case columns, interviews
// stored either as an object or as a JSON-encoded string.
type legacyRow struct {
	ID              int64           `json:"id"`
	DateApplied     string          `json:"date_applied"`
	Week            string          `json:"week"`
	Position        string          `json:"position"`
	Company         string          `json:"company"`
	Location        string          `json:"location"`
	Seniority       string          `json:"seniority"`
	Specialization  string          `json:"specialization"`
	JobPostingURL   string          `json:"job_posting_url"`
	Status          string          `json:"status"`
	Salary          string          `json:"salary"`
	Notes           string          `json:"notes"`
	RejectionReason string          `json:"rejection_reason"`
	Interviews      json.RawMessage `json:"interviews"`
}

func (r legacyRow) toApplication() (applications.Application, error) {
	app := applications.Application{
		ID:              r.ID,
		DateApplied:     r.DateApplied,
		Week:            r.Week,
		Position:        r.Position,
		Company:         r.Company,
		Location:        r.Location,
		Seniority:       r.Seniority,
		Specialization:  r.Specialization,
		JobPostingURL:   r.JobPostingURL,
		Status:          applications.Status(r.Status),
		Salary:          r.Salary,
		Notes:           r.Notes,
		RejectionReason: r.RejectionReason,
	}
	iv, err := decodeInterviews(r.Interviews)
	if err != nil {
		return applications.Application{}, fmt.Errorf("application %d: %w", r.ID, err)
	}
	app.Interviews = iv
	return app, nil
}

// decodeInterviews accepts an object, a JSON string holding an object, or
// nothing at all.
func decodeInterviews(raw json.RawMessage) (applications.Interviews, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return applications.NewInterviews(), nil
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return applications.Interviews{}, fmt.Errorf("decode interviews string: %w", err)
		}
		if inner == "" {
			return applications.NewInterviews(), nil
		}
		raw = json.RawMessage(inner)
	}
	var iv applications.Interviews
	if err := json.Unmarshal(raw, &iv); err != nil {
		return applications.Interviews{}, fmt.Errorf("decode interviews: %w", err)
	}
	return iv, nil
}

// parse reads either a Snapshot or a legacy row array. Comments and
// trailing commas are tolerated so hand-edited exports still load.
func parse(data []byte) (Snapshot, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse export: %w", err)
	}
	std = bytes.TrimSpace(std)
	if len(std) == 0 {
		return Snapshot{}, fmt.Errorf("parse export: empty document")
	}

	if std[0] == '[' {
		var rows []legacyRow
		if err := json.Unmarshal(std, &rows); err != nil {
			return Snapshot{}, fmt.Errorf("decode legacy export: %w", err)
		}
		snap := Snapshot{Applications: make([]applications.Application, 0, len(rows))}
		for _, row := range rows {
			app, err := row.toApplication()
			if err != nil {
				return Snapshot{}, err
			}
			snap.Applications = append(snap.Applications, app)
		}
		return snap, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(std, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version > snapshotVersion {
		return Snapshot{}, fmt.Errorf("snapshot version %d is newer than supported version %d", snap.Version, snapshotVersion)
	}
	return snap, nil
}
