package db

import (
	"time" // Timestamps

	"diet_tracker/internal/domain" // Record types
)

// UserRow is the users table
type UserRow struct {
	ID               uint   `gorm:"primaryKey"`                   // Primary key
	Username         string `gorm:"size:64;uniqueIndex;not null"` // Unique username
	Password         string `gorm:"not null"`                     // Plain text password
	DailyCalorieGoal int    `gorm:"not null;default:2000"`        // Daily goal
}

// TableName pins the table name
func (UserRow) TableName() string { return "users" }

// MealRow is the meals table
type MealRow struct {
	ID        uint          `gorm:"primaryKey"`                                    // Primary key
	Username  string        `gorm:"size:64;index;not null"`                        // Owner
	MealType  string        `gorm:"size:16;not null"`                              // BREAKFAST, LUNCH, DINNER or SNACK
	Timestamp time.Time     `gorm:"index;not null"`                                // When the meal was logged
	Items     []FoodItemRow `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE"` // Food items in order
}

// TableName pins the table name
func (MealRow) TableName() string { return "meals" }

// FoodItemRow is the food_items table
type FoodItemRow struct {
	ID              uint    `gorm:"primaryKey"`     // Primary key
	MealID          uint    `gorm:"index;not null"` // Foreign key to MealRow
	Position        int     `gorm:"not null"`       // Order within the meal
	Name            string  `gorm:"not null"`       // Food name
	CaloriesPerUnit int     `gorm:"not null"`       // Calories per unit
	Quantity        float64 `gorm:"not null"`       // Quantity
	Unit            string  `gorm:"not null"`       // Unit
}

// TableName pins the table name
func (FoodItemRow) TableName() string { return "food_items" }

// DailySummaryRow is the daily_summaries table
type DailySummaryRow struct {
	ID            uint   `gorm:"primaryKey"`                                 // Primary key
	Username      string `gorm:"size:64;uniqueIndex:idx_user_date;not null"` // Owner
	Date          string `gorm:"size:10;uniqueIndex:idx_user_date;not null"` // yyyy-MM-dd, free of time zone conversion
	TotalCalories int    `gorm:"not null"`                                   // Consumed that day
	DailyGoal     int    `gorm:"not null"`                                   // Goal snapshot
}

// TableName pins the table name
func (DailySummaryRow) TableName() string { return "daily_summaries" }

// NewUserRow converts a user
func NewUserRow(u domain.User) UserRow {
	return UserRow{Username: u.Username, Password: u.Password, DailyCalorieGoal: u.DailyCalorieGoal}
}

// NewMealRow converts a meal and its items
func NewMealRow(m domain.Meal) MealRow {
	row := MealRow{Username: m.Username, MealType: m.MealType.String(), Timestamp: m.Timestamp}
	for i, item := range m.FoodItems {
		row.Items = append(row.Items, FoodItemRow{
			Position:        i,
			Name:            item.Name,
			CaloriesPerUnit: item.CaloriesPerUnit,
			Quantity:        item.Quantity,
			Unit:            item.Unit,
		})
	}
	return row
}

// NewDailySummaryRow converts a daily summary
func NewDailySummaryRow(s domain.DailySummary) DailySummaryRow {
	return DailySummaryRow{
		Username:      s.Username,
		Date:          s.Date.Format(domain.DateLayout),
		TotalCalories: s.TotalCalories,
		DailyGoal:     s.DailyGoal,
	}
}
