package db

import (
	"fmt" // Error wrapping

	"diet_tracker/internal/domain" // Record types

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Snapshot is everything read from the flat files
type Snapshot struct {
	Users     []domain.User
	Meals     []domain.Meal
	Summaries []domain.DailySummary
}

// ImportResult counts the rows written by Import
type ImportResult struct {
	Users     int
	Meals     int
	FoodItems int
	Summaries int
}

// Open connects to MySQL
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(&UserRow{}, &MealRow{}, &FoodItemRow{}, &DailySummaryRow{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.")
	return nil
}

// Import replaces the database contents with snap in a single transaction
func Import(db *gorm.DB, snap Snapshot) (ImportResult, error) {
	var res ImportResult
	err := db.Transaction(func(tx *gorm.DB) error {
		// Children first so foreign keys hold
		for _, model := range []any{&FoodItemRow{}, &MealRow{}, &DailySummaryRow{}, &UserRow{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err // Return error to rollback
			}
		}
		for _, u := range snap.Users {
			row := NewUserRow(u)
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("user %s: %w", u.Username, err)
			}
			res.Users++
		}
		for _, m := range snap.Meals {
			row := NewMealRow(m) // Items are created through the association
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("meal %s %s: %w", m.Username, m.MealType, err)
			}
			res.Meals++
			res.FoodItems += len(row.Items)
		}
		for _, s := range snap.Summaries {
			row := NewDailySummaryRow(s)
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("daily summary %s: %w", s.Username, err)
			}
			res.Summaries++
		}
		return nil // Commit transaction
	})
	if err != nil {
		return ImportResult{}, err
	}
	logrus.WithFields(logrus.Fields{
		"users":      res.Users,
		"meals":      res.Meals,
		"food_items": res.FoodItems,
		"summaries":  res.Summaries,
	}).Info("Import completed")
	return res, nil
}
