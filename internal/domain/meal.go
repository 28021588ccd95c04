package domain

import (
	"fmt"  // Error formatting
	"time" // Meal timestamps
)

// MealType is the closed classification of a meal
type MealType int

// Meal types in menu order
const (
	Breakfast MealType = iota + 1
	Lunch
	Dinner
	Snack
)

// mealTypeInfo maps each meal type to its stored code and display name
var mealTypeInfo = map[MealType]struct {
	code    string
	display string
}{
	Breakfast: {"BREAKFAST", "Breakfast"},
	Lunch:     {"LUNCH", "Lunch"},
	Dinner:    {"DINNER", "Dinner"},
	Snack:     {"SNACK", "Snack"},
}

// MealTypes lists every meal type in menu order
func MealTypes() []MealType {
	return []MealType{Breakfast, Lunch, Dinner, Snack}
}

// Valid reports whether t is one of the known meal types
func (t MealType) Valid() bool {
	_, ok := mealTypeInfo[t]
	return ok
}

// String returns the code used in the meals file
func (t MealType) String() string {
	if info, ok := mealTypeInfo[t]; ok {
		return info.code
	}
	return fmt.Sprintf("MealType(%d)", int(t))
}

// DisplayName returns the human readable name
func (t MealType) DisplayName() string {
	if info, ok := mealTypeInfo[t]; ok {
		return info.display
	}
	return "Unknown"
}

// ParseMealType resolves a stored code such as "BREAKFAST"
func ParseMealType(code string) (MealType, error) {
	for t, info := range mealTypeInfo {
		if info.code == code {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown meal type %q", code)
}

// Meal is a set of food items eaten by one user at one time
type Meal struct {
	Username  string     // Owner, foreign key to User
	MealType  MealType   // Breakfast, Lunch, Dinner or Snack
	FoodItems []FoodItem // Insertion order
	Timestamp time.Time  // When the meal was logged
}

// NewMeal creates a meal stamped with the given time
func NewMeal(username string, mealType MealType, timestamp time.Time) Meal {
	return Meal{Username: username, MealType: mealType, Timestamp: timestamp}
}

// AddFoodItem appends an item to the meal
func (m *Meal) AddFoodItem(item FoodItem) {
	m.FoodItems = append(m.FoodItems, item)
}

// TotalCalories sums the totals of every food item
func (m Meal) TotalCalories() int {
	total := 0
	for _, item := range m.FoodItems {
		total += item.TotalCalories()
	}
	return total
}

// Date returns the calendar date of the meal at midnight
func (m Meal) Date() time.Time {
	return DateOf(m.Timestamp)
}

// FormattedDate returns the meal date as yyyy-MM-dd
func (m Meal) FormattedDate() string {
	return m.Timestamp.Format(DateLayout)
}

// FormattedTime returns the meal time as HH:mm
func (m Meal) FormattedTime() string {
	return m.Timestamp.Format("15:04")
}
