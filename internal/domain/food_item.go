package domain

import (
	"math"    // Floor for calorie truncation
	"strings" // String trimming
)

// DefaultUnit is used when a food item is created without a unit
const DefaultUnit = "grams"

// FoodItem is a named consumable with a per-unit calorie value
type FoodItem struct {
	Name            string  // Display name
	CaloriesPerUnit int     // Calories for one unit, >= 0
	Quantity        float64 // Consumed quantity, > 0
	Unit            string  // Unit of the quantity
}

// NewFoodItem creates a food item, falling back to DefaultUnit for a blank unit
func NewFoodItem(name string, caloriesPerUnit int, quantity float64, unit string) FoodItem {
	if strings.TrimSpace(unit) == "" {
		unit = DefaultUnit
	}
	return FoodItem{Name: name, CaloriesPerUnit: caloriesPerUnit, Quantity: quantity, Unit: unit}
}

// TotalCalories is floor(caloriesPerUnit * quantity), never negative
func (f FoodItem) TotalCalories() int {
	total := int(math.Floor(float64(f.CaloriesPerUnit) * f.Quantity))
	if total < 0 {
		return 0
	}
	return total
}

// Valid reports whether the item has a name, non-negative calories and a positive quantity
func (f FoodItem) Valid() bool {
	return strings.TrimSpace(f.Name) != "" && f.CaloriesPerUnit >= 0 && f.Quantity > 0
}
