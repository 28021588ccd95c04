package cache

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Error inspection
	"strconv"       // Key building
	"time"          // Time durations

	"diet_tracker/internal/service" // Statistics type

	"github.com/redis/go-redis/v9" // Redis client
)

// DefaultTTL is how long a statistics report stays cached
const DefaultTTL = 60 * time.Second

// Windows are the statistics windows offered by the console, in days
var Windows = []int{7, 30, 365}

// StatsCache caches statistics reports per user and window
type StatsCache struct {
	rdb *redis.Client // Redis client
	ttl time.Duration // Entry lifetime
}

// NewStatsCache wraps a Redis client
func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

// Key returns the cache key for a user's report over days
func Key(username string, days int) string {
	return "stats:user:" + username + ":days:" + strconv.Itoa(days)
}

// Get retrieves a cached report. found is false on a miss.
func (c *StatsCache) Get(ctx context.Context, username string, days int) (stats service.Statistics, found bool, err error) {
	val, err := c.rdb.Get(ctx, Key(username, days)).Result() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return stats, false, nil // Key does not exist
	} else if err != nil {
		return stats, false, err // Other Redis error
	}
	if err := json.Unmarshal([]byte(val), &stats); err != nil {
		return service.Statistics{}, false, err
	}
	return stats, true, nil
}

// Set stores a report with the cache TTL
func (c *StatsCache) Set(ctx context.Context, username string, days int, stats service.Statistics) error {
	b, err := json.Marshal(stats) // Marshal value to JSON
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, Key(username, days), b, c.ttl).Err()
}

// Invalidate drops every cached window for the user
func (c *StatsCache) Invalidate(ctx context.Context, username string) error {
	keys := make([]string, 0, len(Windows))
	for _, days := range Windows {
		keys = append(keys, Key(username, days))
	}
	return c.rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}
