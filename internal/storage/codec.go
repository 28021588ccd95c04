package storage

import (
	"errors"  // Sentinel errors
	"fmt"     // Error wrapping
	"strconv" // Number formatting and parsing
	"strings" // Line splitting
	"time"    // Timestamps

	"diet_tracker/internal/domain" // Record types
)

// Delimiter separates fields within a record line
const Delimiter = ","

// TimestampLayout is ISO local date-time with an optional fractional second
const TimestampLayout = "2006-01-02T15:04:05.999999999"

// shortTimestampLayout is accepted when seconds were omitted
const shortTimestampLayout = "2006-01-02T15:04"

// foodItemFields is the width of one food item group in a meal line
const foodItemFields = 4

// ErrTooFewFields is returned for lines missing required fields
var ErrTooFewFields = errors.New("too few fields")

// FormatUser encodes a user as username,password,dailyCalorieGoal
func FormatUser(u domain.User) string {
	return strings.Join([]string{u.Username, u.Password, strconv.Itoa(u.DailyCalorieGoal)}, Delimiter)
}

// ParseUser decodes a users file line. The goal is the last field and
// everything between the username and the goal is the password, which may contain the delimiter.
func ParseUser(line string) (domain.User, error) {
	parts := strings.Split(line, Delimiter)
	if len(parts) < 3 {
		return domain.User{}, ErrTooFewFields
	}
	last := len(parts) - 1
	goal, err := strconv.Atoi(strings.TrimSpace(parts[last]))
	if err != nil {
		return domain.User{}, fmt.Errorf("calorie goal: %w", err)
	}
	password := strings.Join(parts[1:last], Delimiter)
	return domain.User{Username: parts[0], Password: password, DailyCalorieGoal: goal}, nil
}

// FormatMeal encodes a meal as username,MEAL_TYPE,timestamp followed by
// one name,caloriesPerUnit,quantity,unit group per food item
func FormatMeal(m domain.Meal) string {
	fields := make([]string, 0, 3+foodItemFields*len(m.FoodItems))
	fields = append(fields, m.Username, m.MealType.String(), m.Timestamp.Format(TimestampLayout))
	for _, item := range m.FoodItems {
		fields = append(fields,
			item.Name,
			strconv.Itoa(item.CaloriesPerUnit),
			strconv.FormatFloat(item.Quantity, 'f', -1, 64),
			item.Unit,
		)
	}
	return strings.Join(fields, Delimiter)
}

// ParseMeal decodes a meals file line. A trailing incomplete food item group is ignored.
func ParseMeal(line string) (domain.Meal, error) {
	parts := strings.Split(line, Delimiter)
	if len(parts) < 3 {
		return domain.Meal{}, ErrTooFewFields
	}
	mealType, err := domain.ParseMealType(parts[1])
	if err != nil {
		return domain.Meal{}, err
	}
	ts, err := ParseTimestamp(parts[2])
	if err != nil {
		return domain.Meal{}, err
	}
	meal := domain.NewMeal(parts[0], mealType, ts)
	for i := 3; i+foodItemFields <= len(parts); i += foodItemFields {
		calories, err := strconv.Atoi(parts[i+1])
		if err != nil {
			return domain.Meal{}, fmt.Errorf("food item %q calories: %w", parts[i], err)
		}
		quantity, err := strconv.ParseFloat(parts[i+2], 64)
		if err != nil {
			return domain.Meal{}, fmt.Errorf("food item %q quantity: %w", parts[i], err)
		}
		meal.AddFoodItem(domain.FoodItem{Name: parts[i], CaloriesPerUnit: calories, Quantity: quantity, Unit: parts[i+3]})
	}
	return meal, nil
}

// ParseTimestamp reads an ISO local date-time in the local time zone
func ParseTimestamp(s string) (time.Time, error) {
	ts, err := time.ParseInLocation(TimestampLayout, s, time.Local)
	if err == nil {
		return ts, nil
	}
	if ts, shortErr := time.ParseInLocation(shortTimestampLayout, s, time.Local); shortErr == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("timestamp: %w", err)
}

// FormatSummary encodes a daily summary as username,yyyy-MM-dd,totalCalories,dailyGoal
func FormatSummary(s domain.DailySummary) string {
	return strings.Join([]string{
		s.Username,
		s.Date.Format(domain.DateLayout),
		strconv.Itoa(s.TotalCalories),
		strconv.Itoa(s.DailyGoal),
	}, Delimiter)
}

// ParseSummary decodes a daily logs file line
func ParseSummary(line string) (domain.DailySummary, error) {
	parts := strings.Split(line, Delimiter)
	if len(parts) < 4 {
		return domain.DailySummary{}, ErrTooFewFields
	}
	date, err := time.ParseInLocation(domain.DateLayout, parts[1], time.Local)
	if err != nil {
		return domain.DailySummary{}, fmt.Errorf("date: %w", err)
	}
	total, err := strconv.Atoi(parts[2])
	if err != nil {
		return domain.DailySummary{}, fmt.Errorf("total calories: %w", err)
	}
	goal, err := strconv.Atoi(parts[3])
	if err != nil {
		return domain.DailySummary{}, fmt.Errorf("daily goal: %w", err)
	}
	return domain.DailySummary{Username: parts[0], Date: date, TotalCalories: total, DailyGoal: goal}, nil
}
