package progress

// DailyRow is the stored progress of one calendar day.
type DailyRow struct {
	Date              string `json:"date"`
	ApplicationsCount int    `json:"applicationsCount"`
	GoalMet           bool   `json:"goalMet"`
}

// Day is one entry of the zero-filled daily series.
type Day struct {
	Date    string `json:"date"`
	Count   int    `json:"count"`
	GoalMet bool   `json:"goalMet"`
}

// Stats summarizes goal streaks.
type Stats struct {
	DaysMet       int `json:"daysMet"`
	TotalDays     int `json:"totalDays"`
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

// Weekly compares the last seven days against the weekly goal.
type Weekly struct {
	Total   int     `json:"total"`
	Goal    int     `json:"goal"`
	Met     bool    `json:"met"`
	Percent float64 `json:"percent"`
	Days    []Day   `json:"days"`
}

const (
	DefaultDays = 30
	MinDays     = 1
	MaxDays     = 366

	// StatsWindowDays is the window of the streak summary, today included.
	StatsWindowDays = 30
	weekDays        = 7
)

const dateLayout = "2006-01-02"
