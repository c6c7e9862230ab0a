package stats

import (
	"sort"
	"strings"
	"time"

	"jobtracker-backend/internal/applications"
)

const (
	// ReapplyMonths is how long to wait before applying to a company again.
	ReapplyMonths = 6
	daysPerMonth  = 30.44
)

// Company aggregates the applications sent to one employer.
type Company struct {
	Company  string `json:"company"`
	LastDate string `json:"lastDate"`
	Count    int    `json:"count"`
	// Months since LastDate; nil when no application carries a date.
	Months     *float64 `json:"months"`
	CanReapply bool     `json:"canReapply"`
}

// Companies groups applications by company name, case-insensitively. The
// first spelling seen is kept. Results are ordered most recent first;
// companies without any dated application come last.
func Companies(apps []applications.Application, now time.Time) []Company {
	byKey := make(map[string]*Company)
	order := make([]string, 0)
	for _, app := range apps {
		if app.Company == "" {
			continue
		}
		key := strings.ToLower(app.Company)
		c, ok := byKey[key]
		if !ok {
			byKey[key] = &Company{Company: app.Company, LastDate: app.DateApplied, Count: 1}
			order = append(order, key)
			continue
		}
		c.Count++
		if app.DateApplied > c.LastDate {
			c.LastDate = app.DateApplied
		}
	}

	out := make([]Company, 0, len(order))
	for _, key := range order {
		c := *byKey[key]
		c.CanReapply = true
		if last, err := time.Parse(applications.DateLayout, c.LastDate); err == nil {
			months := now.Sub(last).Hours() / hoursPerDay / daysPerMonth
			c.Months = &months
			c.CanReapply = months >= ReapplyMonths
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Months, out[j].Months
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return out
}
