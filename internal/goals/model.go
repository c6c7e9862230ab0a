package goals

const (
	DefaultDailyGoal  = 5
	DefaultWeeklyGoal = 25
)

// Goals is the singleton goal configuration.
type Goals struct {
	DailyGoal  int `json:"daily_goal"`
	WeeklyGoal int `json:"weekly_goal"`
}

// Default returns the goals used before the user sets any.
func Default() Goals {
	return Goals{DailyGoal: DefaultDailyGoal, WeeklyGoal: DefaultWeeklyGoal}
}
