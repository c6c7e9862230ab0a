package applications

// StageOption names one interview stage for form rendering.
type StageOption struct {
	Key   StageKey `json:"key"`
	Label string   `json:"label"`
}

// Options lists the values the application forms offer.
type Options struct {
	Statuses          []Status          `json:"statuses"`
	Seniorities       []string          `json:"seniorities"`
	Specializations   []string          `json:"specializations"`
	RejectionReasons  []string          `json:"rejectionReasons"`
	Stages            []StageOption     `json:"stages"`
	InterviewStatuses []InterviewStatus `json:"interviewStatuses"`
	Ratings           []string          `json:"ratings"`
	Defaults          map[string]string `json:"defaults"`
}

// FormOptions returns the option lists with the create defaults.
func FormOptions() Options {
	stages := make([]StageOption, 0, len(StageOrder))
	for _, key := range StageOrder {
		stages = append(stages, StageOption{Key: key, Label: key.Label()})
	}
	return Options{
		Statuses:          Statuses,
		Seniorities:       Seniorities,
		Specializations:   Specializations,
		RejectionReasons:  RejectionReasons,
		Stages:            stages,
		InterviewStatuses: []InterviewStatus{InterviewPending, InterviewPassed, InterviewFailed},
		Ratings:           Ratings,
		Defaults: map[string]string{
			"status":         string(StatusApplied),
			"seniority":      DefaultSeniority,
			"specialization": DefaultSpecialization,
			"interviewColor": DefaultInterviewColor,
		},
	}
}
