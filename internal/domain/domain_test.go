package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodItemTotalCaloriesFloors(t *testing.T) {
	cases := []struct {
		calories int
		quantity float64
		want     int
	}{
		{70, 2, 140},
		{52, 1.5, 78},
		{33, 0.5, 16},
		{10, 0.09, 0},
		{0, 3, 0},
	}
	for _, c := range cases {
		item := NewFoodItem("x", c.calories, c.quantity, "pieces")
		assert.Equal(t, c.want, item.TotalCalories(), "%d x %v", c.calories, c.quantity)
		assert.GreaterOrEqual(t, item.TotalCalories(), 0)
	}
}

func TestNewFoodItemDefaultsUnit(t *testing.T) {
	assert.Equal(t, DefaultUnit, NewFoodItem("rice", 1, 100, " ").Unit)
	assert.Equal(t, "cups", NewFoodItem("rice", 1, 100, "cups").Unit)
}

func TestFoodItemValid(t *testing.T) {
	assert.True(t, NewFoodItem("egg", 70, 1, "pieces").Valid())
	assert.False(t, NewFoodItem("  ", 70, 1, "pieces").Valid())
	assert.True(t, NewFoodItem("water", 0, 1, "cups").Valid())
	assert.False(t, NewFoodItem("egg", -1, 1, "pieces").Valid())
	assert.False(t, NewFoodItem("egg", 70, 0, "pieces").Valid())
}

func TestMealTotalCaloriesSumsItems(t *testing.T) {
	m := NewMeal("alice", Lunch, time.Now())
	m.AddFoodItem(NewFoodItem("bread", 25, 2.5, "slices"))
	m.AddFoodItem(NewFoodItem("cheese", 4, 30, "grams"))
	assert.Equal(t, 62+120, m.TotalCalories())
	assert.Equal(t, "bread", m.FoodItems[0].Name)
}

func TestMealTypeLookup(t *testing.T) {
	for _, mt := range MealTypes() {
		parsed, err := ParseMealType(mt.String())
		require.NoError(t, err)
		assert.Equal(t, mt, parsed)
		assert.True(t, mt.Valid())
	}
	assert.Equal(t, "Snack", Snack.DisplayName())
	assert.Equal(t, "DINNER", Dinner.String())

	_, err := ParseMealType("BRUNCH")
	assert.Error(t, err)
	assert.False(t, MealType(0).Valid())
	assert.Equal(t, "Unknown", MealType(9).DisplayName())
}

func TestDailyLogDerivedValues(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
	breakfast := NewMeal("alice", Breakfast, day.Add(8*time.Hour))
	breakfast.AddFoodItem(NewFoodItem("egg", 70, 2, "pieces"))
	dinner := NewMeal("alice", Dinner, day.Add(19*time.Hour))
	dinner.AddFoodItem(NewFoodItem("pasta", 2, 500, "grams"))

	log := DailyLog{Username: "alice", Date: day, DailyCalorieGoal: 1000, Meals: []Meal{breakfast, dinner}}
	assert.Equal(t, 1140, log.TotalCaloriesConsumed())
	assert.Equal(t, -140, log.RemainingCalories())
	assert.InDelta(t, 1.14, log.GoalPercentage(), 1e-9)
	assert.True(t, log.IsGoalExceeded())
	assert.Len(t, log.MealsByType(Dinner), 1)
	assert.Empty(t, log.MealsByType(Snack))

	exact := DailyLog{DailyCalorieGoal: 140, Meals: []Meal{breakfast}}
	assert.False(t, exact.IsGoalExceeded())
	assert.Equal(t, 0, exact.RemainingCalories())
}

func TestDailyLogZeroGoal(t *testing.T) {
	m := NewMeal("bob", Snack, time.Now())
	m.AddFoodItem(NewFoodItem("apple", 95, 1, "pieces"))
	log := DailyLog{DailyCalorieGoal: 0, Meals: []Meal{m}}
	assert.Equal(t, 0.0, log.GoalPercentage())
	assert.True(t, log.IsGoalExceeded())
}

func TestDailyLogSummaryDropsMeals(t *testing.T) {
	at := time.Date(2024, 3, 10, 13, 45, 0, 0, time.Local)
	m := NewMeal("alice", Lunch, at)
	m.AddFoodItem(NewFoodItem("soup", 150, 1, "bowls"))
	s := DailyLog{Username: "alice", Date: at, DailyCalorieGoal: 1800, Meals: []Meal{m}}.Summary()
	assert.Equal(t, DailySummary{Username: "alice", Date: DateOf(at), TotalCalories: 150, DailyGoal: 1800}, s)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 1, 0, time.Local)
	b := time.Date(2024, 1, 1, 23, 59, 59, 0, time.Local)
	c := time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), DateOf(b))
}
