package shell

import (
	"fmt"     // Output formatting
	"io"      // Writer
	"sort"    // Ordering history
	"strconv" // Quantity formatting

	"diet_tracker/internal/domain"  // Record types
	"diet_tracker/internal/service" // Statistics type
)

// writeProgress prints a daily log with goal status and per-type subtotals
func writeProgress(w io.Writer, log *domain.DailyLog) {
	fmt.Fprintf(w, "Date: %s\n", log.Date.Format(domain.DateLayout))
	fmt.Fprintf(w, "Daily Goal: %d calories\n", log.DailyCalorieGoal)
	fmt.Fprintf(w, "Consumed: %d calories\n", log.TotalCaloriesConsumed())
	fmt.Fprintf(w, "Remaining: %d calories\n", log.RemainingCalories())

	percentage := log.GoalPercentage() * 100
	fmt.Fprintf(w, "Progress: %.1f%%\n", percentage)
	switch {
	case log.IsGoalExceeded():
		fmt.Fprintln(w, "⚠️  You have exceeded your daily calorie goal!")
	case percentage >= 90:
		fmt.Fprintln(w, "🎉 Great job! You're close to your goal!")
	case percentage >= 70:
		fmt.Fprintln(w, "👍 Good progress! Keep it up!")
	default:
		fmt.Fprintln(w, "💪 You still have room to reach your goal!")
	}

	fmt.Fprintln(w, "\nMeals today:")
	for _, t := range domain.MealTypes() {
		meals := log.MealsByType(t)
		if len(meals) == 0 {
			continue
		}
		total := 0
		for _, m := range meals {
			total += m.TotalCalories()
		}
		fmt.Fprintf(w, "  %s: %d calories\n", t.DisplayName(), total)
	}
}

// writeHistory prints meals newest first, grouped by date
func writeHistory(w io.Writer, meals []domain.Meal) {
	if len(meals) == 0 {
		fmt.Fprintln(w, "No meals found in your history.")
		return
	}
	sorted := append([]domain.Meal(nil), meals...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp.After(sorted[j].Timestamp) })

	currentDate := ""
	for _, m := range sorted {
		if date := m.FormattedDate(); date != currentDate {
			currentDate = date
			fmt.Fprintf(w, "\n%s:\n", date)
		}
		fmt.Fprintf(w, "  %s - %s (%d calories)\n", m.FormattedTime(), m.MealType.DisplayName(), m.TotalCalories())
		for _, item := range m.FoodItems {
			fmt.Fprintf(w, "    • %s - %s %s (%d calories)\n",
				item.Name, strconv.FormatFloat(item.Quantity, 'f', -1, 64), item.Unit, item.TotalCalories())
		}
	}
}

// writeStatistics prints a statistics report and the average goal achievement
func writeStatistics(w io.Writer, stats service.Statistics, days, goal int) {
	fmt.Fprintf(w, "\nStatistics for the last %d days:\n", days)
	fmt.Fprintf(w, "Total meals logged: %d\n", stats.Count)
	fmt.Fprintf(w, "Total calories consumed: %d\n", stats.TotalCalories)
	fmt.Fprintf(w, "Average calories per day: %.1f\n", stats.AvgPerDay)
	if stats.AvgPerDay > 0 && goal > 0 {
		fmt.Fprintf(w, "Average daily goal achievement: %.1f%%\n", stats.AvgPerDay/float64(goal)*100)
	}
}
