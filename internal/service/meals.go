package service

import (
	"time" // Timestamps and date windows

	"diet_tracker/internal/domain" // Record types

	"github.com/sirupsen/logrus" // Logging library
)

// MealStore persists the full meal ledger
type MealStore interface {
	LoadMeals() ([]domain.Meal, error)
	SaveMeals(meals []domain.Meal) error
}

// Statistics summarises a user's meals over a window of days
type Statistics struct {
	Count         int     `json:"count"`          // Meals logged in the window
	TotalCalories int     `json:"total_calories"` // Calories across those meals
	AvgPerDay     float64 `json:"avg_per_day"`    // TotalCalories divided by the window length
}

// MealService is the in-memory meal ledger
type MealService struct {
	store MealStore        // Backing storage
	users *UserService     // Ownership checks and goals
	meals []domain.Meal    // Ledger in insertion order
	now   func() time.Time // Clock
}

// Option configures a MealService
type Option func(*MealService)

// WithClock replaces time.Now for timestamps and statistics windows
func WithClock(now func() time.Time) Option {
	return func(s *MealService) { s.now = now }
}

// NewMealService loads the ledger from store. A load failure is logged and yields an empty ledger.
func NewMealService(store MealStore, users *UserService, opts ...Option) *MealService {
	s := &MealService{store: store, users: users, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	meals, err := store.LoadMeals()
	if err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to load meals")
	}
	s.meals = meals
	return s
}

// AddMeal logs a meal stamped with the current time for an existing user.
// Every food item must be valid.
func (s *MealService) AddMeal(username string, mealType domain.MealType, foodItems []domain.FoodItem) bool {
	if username == "" || !mealType.Valid() || len(foodItems) == 0 {
		return false
	}
	for _, item := range foodItems {
		if !item.Valid() {
			return false
		}
	}
	user := s.users.FindByUsername(username)
	if user == nil {
		return false
	}
	meal := domain.NewMeal(user.Username, mealType, s.now())
	for _, item := range foodItems {
		meal.AddFoodItem(item)
	}
	s.meals = append(s.meals, meal)
	s.persist()
	logrus.WithFields(logrus.Fields{
		"username":  meal.Username,                       // Owner
		"meal_type": mealType.String(),                   // Meal type
		"items":     len(meal.FoodItems),                 // Number of food items
		"calories":  meal.TotalCalories(),                // Meal total
		"timestamp": meal.Timestamp.Format(time.RFC3339), // Logged at
	}).Info("Meal logged")
	return true
}

// MealsByUser returns the user's meals in ledger order
func (s *MealService) MealsByUser(username string) []domain.Meal {
	return s.filter(func(m domain.Meal) bool { return m.Username == username })
}

// MealsByUserAndDate returns the user's meals whose timestamp falls on date
func (s *MealService) MealsByUserAndDate(username string, date time.Time) []domain.Meal {
	return s.filter(func(m domain.Meal) bool {
		return m.Username == username && domain.SameDay(m.Timestamp, date)
	})
}

// MealsByUserAndType returns the user's meals of one type
func (s *MealService) MealsByUserAndType(username string, mealType domain.MealType) []domain.Meal {
	return s.filter(func(m domain.Meal) bool {
		return m.Username == username && m.MealType == mealType
	})
}

// TotalCaloriesForDate sums the user's calories on date
func (s *MealService) TotalCaloriesForDate(username string, date time.Time) int {
	total := 0
	for _, m := range s.MealsByUserAndDate(username, date) {
		total += m.TotalCalories()
	}
	return total
}

// BuildDailyLog assembles the user's log for date using their current goal.
// It returns nil for an unknown user.
func (s *MealService) BuildDailyLog(username string, date time.Time) *domain.DailyLog {
	user := s.users.FindByUsername(username)
	if user == nil {
		return nil
	}
	return &domain.DailyLog{
		Username:         user.Username,
		Date:             domain.DateOf(date),
		DailyCalorieGoal: user.DailyCalorieGoal,
		Meals:            s.MealsByUserAndDate(user.Username, date),
	}
}

// RemoveMeal deletes the first meal matching user, type and timestamp
func (s *MealService) RemoveMeal(username string, mealType domain.MealType, timestamp time.Time) bool {
	for i, m := range s.meals {
		if m.Username == username && m.MealType == mealType && m.Timestamp.Equal(timestamp) {
			s.meals = append(s.meals[:i], s.meals[i+1:]...)
			s.persist()
			logrus.WithFields(logrus.Fields{
				"username":  username,
				"meal_type": mealType.String(),
			}).Info("Meal removed")
			return true
		}
	}
	return false
}

// MostRecentMeal returns the user's latest meal by timestamp, or nil
func (s *MealService) MostRecentMeal(username string) *domain.Meal {
	var latest *domain.Meal
	for i := range s.meals {
		m := &s.meals[i]
		if m.Username != username {
			continue
		}
		if latest == nil || m.Timestamp.After(latest.Timestamp) {
			latest = m
		}
	}
	if latest == nil {
		return nil
	}
	meal := *latest
	return &meal
}

// Statistics covers the inclusive window [today-(days-1), today].
// The average divides by days, not by days with meals.
func (s *MealService) Statistics(username string, days int) Statistics {
	if username == "" || days <= 0 {
		return Statistics{}
	}
	end := domain.DateOf(s.now())
	start := end.AddDate(0, 0, -(days - 1))
	var stats Statistics
	for _, m := range s.meals {
		if m.Username != username {
			continue
		}
		date := m.Date()
		if date.Before(start) || date.After(end) {
			continue
		}
		stats.Count++
		stats.TotalCalories += m.TotalCalories()
	}
	stats.AvgPerDay = float64(stats.TotalCalories) / float64(days)
	return stats
}

// filter returns the ledger entries accepted by keep, preserving order
func (s *MealService) filter(keep func(domain.Meal) bool) []domain.Meal {
	var out []domain.Meal
	for _, m := range s.meals {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

// persist rewrites the whole ledger. Errors are logged and swallowed.
func (s *MealService) persist() {
	if err := s.store.SaveMeals(s.meals); err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to save meals")
	}
}
