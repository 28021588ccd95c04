package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	DataDir         string // Directory holding the flat data files
	LogLevel        string // Logrus level name
	IsProd          bool   // Is production environment
	SessionSecret   string // Secret used to sign remembered sessions, empty disables them
	SessionTTLHours int    // Lifetime of a remembered session
	RedisAddr       string // Redis server address, empty disables the statistics cache
	RedisPass       string // Redis password
	RedisDB         int    // Redis database number
	DBUser          string // Database user (migrate tool)
	DBPassword      string // Database password
	DBHost          string // Database host
	DBPort          string // Database port
	DBName          string // Database name
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		DataDir:         getEnv("DATA_DIR", "data"),         // Data directory
		LogLevel:        getEnv("LOG_LEVEL", "warn"),        // Log level
		IsProd:          os.Getenv("IS_PROD") == "true",     // Is production environment
		SessionSecret:   os.Getenv("SESSION_SECRET"),        // Session signing secret
		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 24), // Session lifetime
		RedisAddr:       os.Getenv("REDIS_ADDR"),            // Redis server address
		RedisPass:       os.Getenv("REDIS_PASS"),            // Redis password
		RedisDB:         redisDB,                            // Redis database number
		DBUser:          os.Getenv("DB_USER"),               // Database user
		DBPassword:      os.Getenv("DB_PASSWORD"),           // Database password
		DBHost:          getEnv("DB_HOST", "127.0.0.1"),     // Database host
		DBPort:          getEnv("DB_PORT", "3306"),          // Database port
		DBName:          getEnv("DB_NAME", "diet_tracker"),  // Database name
	}
}

// DSN builds the MySQL Data Source Name for GORM.
// loc=Local keeps meal timestamps in the same zone the flat files use.
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&loc=Local"
}

// getEnv returns the variable or the fallback when it is unset or empty
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt returns the variable parsed as a positive integer, or the fallback
func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}
