package applications

import "time"

// Status is the pipeline state of an application.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusInProcess Status = "In Process"
	StatusRejected  Status = "Rejected"
	StatusOffer     Status = "Offer"
	StatusArchived  Status = "Archived"
)

// Statuses lists every accepted status in display order.
var Statuses = []Status{StatusApplied, StatusInProcess, StatusRejected, StatusOffer, StatusArchived}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

const (
	DefaultSeniority      = "Senior"
	DefaultSpecialization = "Backend"
	OtherSpecialization   = "Other"
)

// Seniorities and Specializations are the options offered by the UI. They
// are not enforced on write.
var (
	Seniorities     = []string{"Junior", "Mid", "Senior", "Lead", "Principal"}
	Specializations = []string{
		"Backend", "Frontend", "Fullstack", "DevOps", "Data Engineering",
		"Platform", "Mobile", "ML/AI", "Security", OtherSpecialization,
	}
	RejectionReasons = []string{
		"No response", "After HR", "After technical", "After take home",
		"After offer negotiation", "Salary", "Other",
	}
)

// DateLayout is the calendar-date format used for dateApplied and stage dates.
const DateLayout = "2006-01-02"

// Application is one job application.
type Application struct {
	ID              int64      `json:"id"`
	DateApplied     string     `json:"dateApplied"`
	Week            string     `json:"week"`
	Position        string     `json:"position"`
	Company         string     `json:"company"`
	Location        string     `json:"location"`
	Seniority       string     `json:"seniority"`
	Specialization  string     `json:"specialization"`
	JobPostingURL   string     `json:"jobPostingUrl"`
	Status          Status     `json:"status"`
	Salary          string     `json:"salary"`
	Notes           string     `json:"notes"`
	RejectionReason string     `json:"rejectionReason"`
	Interviews      Interviews `json:"interviews"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// WithDefaults fills the fields a new record gets when the caller leaves
// them empty.
func (a Application) WithDefaults() Application {
	if a.Seniority == "" {
		a.Seniority = DefaultSeniority
	}
	if a.Specialization == "" {
		a.Specialization = DefaultSpecialization
	}
	if a.Status == "" {
		a.Status = StatusApplied
	}
	a.Interviews = a.Interviews.Normalize()
	return a
}
