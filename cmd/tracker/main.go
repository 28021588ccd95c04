package main

import (
	"context" // context package is needed for Redis operations
	"os"      // Standard input and output
	"time"    // Session lifetime

	"diet_tracker/internal/cache"   // Statistics cache
	"diet_tracker/internal/config"  // Custom package for configuration
	"diet_tracker/internal/service" // User directory and meal ledger
	"diet_tracker/internal/session" // Remembered logins
	"diet_tracker/internal/shell"   // Interactive console
	"diet_tracker/internal/storage" // Flat file persistence

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the console
func main() {
	cfg := config.LoadConfig() // Load configuration

	setupLogger(cfg) // Setup logger

	// Services own their in-memory lists, loaded once here
	store := storage.NewFileStore(cfg.DataDir)
	users := service.NewUserService(store)
	meals := service.NewMealService(store, users)

	opts := []shell.Option{shell.WithSummaryStore(store)}

	// Setup Redis client when configured
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		defer redisClient.Close()
		// Test Redis connection, the cache is optional
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logrus.WithField("error", err.Error()).Warn("Redis unavailable, statistics cache disabled")
		} else {
			opts = append(opts, shell.WithStatsCache(cache.NewStatsCache(redisClient, cache.DefaultTTL)))
		}
	}

	if sessions := session.NewManager(cfg.DataDir, cfg.SessionSecret, time.Duration(cfg.SessionTTLHours)*time.Hour); sessions != nil {
		opts = append(opts, shell.WithSessions(sessions))
	}

	app := shell.New(users, meals, os.Stdin, os.Stdout, opts...)
	if err := app.Run(); err != nil {
		logrus.Fatalf("console failed: %v", err)
	}
}

// setupLogger configures logrus from the config.
// Production logs JSON and never below warn.
func setupLogger(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		if level > logrus.WarnLevel {
			level = logrus.WarnLevel
		}
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetLevel(level)
}
