// Package stats derives the dashboard statistics from the full list of
// applications. Everything here is pure and recomputed on each request.
package stats

import (
	"fmt"
	"sort"
	"time"

	"jobtracker-backend/internal/applications"
)

// FunnelStage is how many applications reached one interview stage.
type FunnelStage struct {
	Stage applications.StageKey `json:"stage"`
	Label string                `json:"label"`
	Count int                   `json:"count"`
}

// Summary is the statistics view over all applications.
type Summary struct {
	Total             int                         `json:"total"`
	Rejected          int                         `json:"rejected"`
	InProcess         int                         `json:"inProcess"`
	Offers            int                         `json:"offers"`
	NoResponse        int                         `json:"noResponse"`
	ResponseRate      float64                     `json:"responseRate"`
	ResponseRateClass string                      `json:"responseRateClass"`
	AvgResponseDays   *float64                    `json:"avgResponseDays"`
	AvgPerMonth       float64                     `json:"avgPerMonth"`
	ByStatus          map[applications.Status]int `json:"byStatus"`
	SpecMap           map[string]int              `json:"specMap"`
	WeekMap           map[string]int              `json:"weekMap"`
	Weeks             []string                    `json:"weeks"`
	Funnel            []FunnelStage               `json:"funnel"`
}

const hoursPerDay = 24

// Compute derives the summary. An empty slice yields zero rates and a nil
// average response time.
func Compute(apps []applications.Application) Summary {
	s := Summary{
		Total:    len(apps),
		ByStatus: make(map[applications.Status]int, len(applications.Statuses)),
		SpecMap:  make(map[string]int),
		WeekMap:  make(map[string]int),
	}
	for _, st := range applications.Statuses {
		s.ByStatus[st] = 0
	}

	stillApplied := 0
	months := make(map[string]struct{})
	var responseSum float64
	responses := 0

	for _, app := range apps {
		s.ByStatus[app.Status]++
		switch app.Status {
		case applications.StatusRejected:
			s.Rejected++
			if silentRejection(app) {
				s.NoResponse++
			}
		case applications.StatusInProcess:
			s.InProcess++
		case applications.StatusOffer:
			s.Offers++
		case applications.StatusApplied:
			stillApplied++
		}

		spec := app.Specialization
		if spec == "" {
			spec = applications.OtherSpecialization
		}
		s.SpecMap[spec]++

		if app.DateApplied == "" {
			continue
		}
		if len(app.DateApplied) >= 7 {
			months[app.DateApplied[:7]] = struct{}{}
		}
		applied, err := time.Parse(applications.DateLayout, app.DateApplied)
		if err != nil {
			continue
		}
		s.WeekMap[WeekKey(applied)]++

		if hr := app.Interviews.HRCall.Date; hr != "" {
			if called, err := time.Parse(applications.DateLayout, hr); err == nil {
				responseSum += called.Sub(applied).Hours() / hoursPerDay
				responses++
			}
		}
	}

	if s.Total > 0 {
		active := s.Total - stillApplied - s.NoResponse
		s.ResponseRate = float64(active) / float64(s.Total) * 100
	}
	s.ResponseRateClass = RateClass(s.ResponseRate)

	if responses > 0 {
		avg := responseSum / float64(responses)
		s.AvgResponseDays = &avg
	}
	if len(months) > 0 {
		s.AvgPerMonth = float64(s.Total) / float64(len(months))
	}

	s.Weeks = make([]string, 0, len(s.WeekMap))
	for week := range s.WeekMap {
		s.Weeks = append(s.Weeks, week)
	}
	sort.Strings(s.Weeks)

	s.Funnel = make([]FunnelStage, 0, len(applications.StageOrder))
	for _, key := range applications.StageOrder {
		stage := FunnelStage{Stage: key, Label: key.Label()}
		for _, app := range apps {
			if app.Interviews.Stage(key).Reached() {
				stage.Count++
			}
		}
		s.Funnel = append(s.Funnel, stage)
	}
	return s
}

// silentRejection is a rejection where neither the HR call nor the
// screening call moved past pending.
func silentRejection(app applications.Application) bool {
	pending := func(st applications.InterviewStatus) bool {
		return st == "" || st == applications.InterviewPending
	}
	return pending(app.Interviews.HRCall.Status) && pending(app.Interviews.ScreeningCall.Status)
}

// WeekKey buckets a date as YYYY-W##. The week number counts from the
// week containing January 1st with Sunday as the first weekday; it is not
// an ISO-8601 week.
func WeekKey(d time.Time) string {
	jan1 := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	n := d.YearDay() - 1 + int(jan1.Weekday()) + 1
	week := (n + 6) / 7
	return fmt.Sprintf("%d-W%02d", d.Year(), week)
}

// RateClass grades a response rate: above 15% is good, above 8% is
// normal, anything lower is bad.
func RateClass(rate float64) string {
	switch {
	case rate > 15:
		return "good"
	case rate > 8:
		return "warn"
	default:
		return "bad"
	}
}
