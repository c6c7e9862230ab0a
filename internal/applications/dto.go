package applications

// applicationRequest is the create/update body. Timestamps are owned by the
// store and ignored on input.
type applicationRequest struct {
	ID              int64       `json:"id"`
	DateApplied     string      `json:"dateApplied"`
	Week            string      `json:"week"`
	Position        string      `json:"position"`
	Company         string      `json:"company"`
	Location        string      `json:"location"`
	Seniority       string      `json:"seniority"`
	Specialization  string      `json:"specialization"`
	JobPostingURL   string      `json:"jobPostingUrl"`
	Status          Status      `json:"status"`
	Salary          string      `json:"salary"`
	Notes           string      `json:"notes"`
	RejectionReason string      `json:"rejectionReason"`
	Interviews      *Interviews `json:"interviews"`
}

func (r applicationRequest) toApplication() Application {
	app := Application{
		ID:              r.ID,
		DateApplied:     r.DateApplied,
		Week:            r.Week,
		Position:        r.Position,
		Company:         r.Company,
		Location:        r.Location,
		Seniority:       r.Seniority,
		Specialization:  r.Specialization,
		JobPostingURL:   r.JobPostingURL,
		Status:          r.Status,
		Salary:          r.Salary,
		Notes:           r.Notes,
		RejectionReason: r.RejectionReason,
		Interviews:      NewInterviews(),
	}
	if r.Interviews != nil {
		app.Interviews = *r.Interviews
	}
	return app
}

type deleteResponse struct {
	OK bool `json:"ok"`
}
