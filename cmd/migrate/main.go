package main

import (
	"flag" // Command line flags

	"diet_tracker/internal/config"  // Custom import path (Config)
	"diet_tracker/internal/db"      // Custom import path (Database)
	"diet_tracker/internal/storage" // Flat file persistence

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration: copies the flat files into MySQL
func main() {
	cfg := config.LoadConfig() // Load configuration
	dataDir := flag.String("data", cfg.DataDir, "directory holding users.txt, meals.txt and daily_logs.txt")
	schemaOnly := flag.Bool("schema-only", false, "create tables without importing data")
	clearAfter := flag.Bool("clear-after", false, "delete the flat files once the import succeeds")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	conn, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(conn); err != nil {
		logrus.Fatalf("%v", err)
	}
	if *schemaOnly {
		return
	}

	store := storage.NewFileStore(*dataDir)
	var snap db.Snapshot
	if snap.Users, err = store.LoadUsers(); err != nil {
		logrus.Fatalf("failed to load users: %v", err)
	}
	if snap.Meals, err = store.LoadMeals(); err != nil {
		logrus.Fatalf("failed to load meals: %v", err)
	}
	if snap.Summaries, err = store.LoadDailySummaries(); err != nil {
		logrus.Fatalf("failed to load daily summaries: %v", err)
	}
	if _, err := db.Import(conn, snap); err != nil {
		logrus.Fatalf("import failed: %v", err)
	}
	if *clearAfter {
		if err := store.Clear(); err != nil {
			logrus.Fatalf("failed to clear data files: %v", err)
		}
		logrus.WithField("dir", store.Dir()).Info("Data files cleared")
	}
}
