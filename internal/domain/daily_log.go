package domain

import "time" // Calendar dates

// DateLayout is the yyyy-MM-dd layout used for dates
const DateLayout = "2006-01-02"

// DateOf truncates t to midnight of its calendar date in its own location
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DailyLog is a computed view of one user's meals for one date.
// It is assembled on demand and never loaded back from storage.
type DailyLog struct {
	Username         string
	Date             time.Time
	DailyCalorieGoal int // Goal at the time the log was built
	Meals            []Meal
}

// TotalCaloriesConsumed sums the calories of every meal
func (l DailyLog) TotalCaloriesConsumed() int {
	total := 0
	for _, m := range l.Meals {
		total += m.TotalCalories()
	}
	return total
}

// RemainingCalories is goal minus consumed and may be negative
func (l DailyLog) RemainingCalories() int {
	return l.DailyCalorieGoal - l.TotalCaloriesConsumed()
}

// GoalPercentage is consumed/goal as a fraction, 0 when the goal is 0
func (l DailyLog) GoalPercentage() float64 {
	if l.DailyCalorieGoal == 0 {
		return 0
	}
	return float64(l.TotalCaloriesConsumed()) / float64(l.DailyCalorieGoal)
}

// IsGoalExceeded reports whether consumed is strictly above the goal
func (l DailyLog) IsGoalExceeded() bool {
	return l.TotalCaloriesConsumed() > l.DailyCalorieGoal
}

// MealsByType returns the log's meals of the given type
func (l DailyLog) MealsByType(t MealType) []Meal {
	var out []Meal
	for _, m := range l.Meals {
		if m.MealType == t {
			out = append(out, m)
		}
	}
	return out
}

// Summary snapshots the aggregate fields of the log
func (l DailyLog) Summary() DailySummary {
	return DailySummary{
		Username:      l.Username,
		Date:          DateOf(l.Date),
		TotalCalories: l.TotalCaloriesConsumed(),
		DailyGoal:     l.DailyCalorieGoal,
	}
}

// DailySummary is the persisted form of a DailyLog.
// Only aggregates are kept, the constituent meals are not recoverable from it.
type DailySummary struct {
	Username      string
	Date          time.Time
	TotalCalories int
	DailyGoal     int
}
