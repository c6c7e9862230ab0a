package applications

import "encoding/json"

// InterviewStatus is the outcome of a single stage.
type InterviewStatus string

const (
	InterviewPending InterviewStatus = "pending"
	InterviewPassed  InterviewStatus = "passed"
	InterviewFailed  InterviewStatus = "failed"
)

func (s InterviewStatus) valid() bool {
	switch s {
	case InterviewPending, InterviewPassed, InterviewFailed:
		return true
	}
	return false
}

// DefaultInterviewColor is the marker color of a stage nobody has touched.
const DefaultInterviewColor = "#4f8bff"

// Ratings offered for a stage; empty means unrated.
var Ratings = []string{"😫 Bad", "😐 OK", "🙂 Good", "😄 Great"}

// Interview is one stage record.
type Interview struct {
	Date   string          `json:"date"`
	Status InterviewStatus `json:"status"`
	Rating string          `json:"rating"`
	Notes  string          `json:"notes"`
	Color  string          `json:"color"`
}

// Reached reports whether the candidate got to this stage at all.
func (iv Interview) Reached() bool {
	return iv.Status == InterviewPassed || iv.Status == InterviewFailed || iv.Date != ""
}

// StageKey names one of the eight pipeline stages.
type StageKey string

const (
	StageHRCall        StageKey = "hrCall"
	StageScreeningCall StageKey = "screeningCall"
	StageHiringManager StageKey = "hiringManager"
	StageTakeHome      StageKey = "takeHome"
	StageSystemDesign  StageKey = "systemDesign"
	StageLiveCoding    StageKey = "liveCoding"
	StageCulturalFit   StageKey = "culturalFit"
	StageOffer         StageKey = "offer"
)

// StageOrder is the fixed pipeline order.
var StageOrder = []StageKey{
	StageHRCall, StageScreeningCall, StageHiringManager, StageTakeHome,
	StageSystemDesign, StageLiveCoding, StageCulturalFit, StageOffer,
}

var stageLabels = map[StageKey]string{
	StageHRCall:        "1. HR Call",
	StageScreeningCall: "2. Screening",
	StageHiringManager: "3. Hiring Mgr",
	StageTakeHome:      "4.1 Take Home",
	StageSystemDesign:  "4.2 System Design",
	StageLiveCoding:    "4.3 Live Coding",
	StageCulturalFit:   "5. Cultural Fit",
	StageOffer:         "6. Offer",
}

// Label is the funnel label of the stage.
func (k StageKey) Label() string {
	return stageLabels[k]
}

// Interviews holds all eight stages of an application.
type Interviews struct {
	HRCall        Interview `json:"hrCall"`
	ScreeningCall Interview `json:"screeningCall"`
	HiringManager Interview `json:"hiringManager"`
	TakeHome      Interview `json:"takeHome"`
	SystemDesign  Interview `json:"systemDesign"`
	LiveCoding    Interview `json:"liveCoding"`
	CulturalFit   Interview `json:"culturalFit"`
	Offer         Interview `json:"offer"`
}

// NewInterviews returns all stages pending.
func NewInterviews() Interviews {
	var iv Interviews
	return iv.Normalize()
}

// Stage returns the record for key. Unknown keys yield a zero Interview.
func (iv Interviews) Stage(key StageKey) Interview {
	if p := iv.stage(key); p != nil {
		return *p
	}
	return Interview{}
}

func (iv *Interviews) stage(key StageKey) *Interview {
	switch key {
	case StageHRCall:
		return &iv.HRCall
	case StageScreeningCall:
		return &iv.ScreeningCall
	case StageHiringManager:
		return &iv.HiringManager
	case StageTakeHome:
		return &iv.TakeHome
	case StageSystemDesign:
		return &iv.SystemDesign
	case StageLiveCoding:
		return &iv.LiveCoding
	case StageCulturalFit:
		return &iv.CulturalFit
	case StageOffer:
		return &iv.Offer
	}
	return nil
}

// Normalize fills an empty status with pending and an empty color with the
// default marker color on every stage.
func (iv Interviews) Normalize() Interviews {
	for _, key := range StageOrder {
		s := iv.stage(key)
		if s.Status == "" {
			s.Status = InterviewPending
		}
		if s.Color == "" {
			s.Color = DefaultInterviewColor
		}
	}
	return iv
}

// UnmarshalJSON accepts partial or null objects; missing stages and fields
// come out as the pending default.
func (iv *Interviews) UnmarshalJSON(data []byte) error {
	type plain Interviews
	p := plain(NewInterviews())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*iv = Interviews(p).Normalize()
	return nil
}
