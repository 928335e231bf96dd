package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DatabaseURL string
	RedisURL    string
	ServerAddr  string
	DatePattern string // default date pattern for API responses
	TimeZone    string
	LogLevel    string
	AutoMigrate bool
	DBAttempts  uint

	Location *time.Location
}

// LoadConfig reads configuration from environment variables (.env file)
func LoadConfig() (*Config, error) {
	// In production, env variables are often set directly.
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
		ServerAddr:  getEnv("SERVER_ADDR", ":8080"),
		DatePattern: getEnv("DATE_PATTERN", "yyyyMMddHHmmss"),
		TimeZone:    getEnv("TIME_ZONE", "Local"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	autoMigrate, err := strconv.ParseBool(getEnv("AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_MIGRATE: %w", err)
	}
	cfg.AutoMigrate = autoMigrate

	attempts, err := strconv.ParseUint(getEnv("DB_CONNECT_ATTEMPTS", "5"), 10, 32)
	if err != nil || attempts == 0 {
		return nil, fmt.Errorf("invalid DB_CONNECT_ATTEMPTS %q", getEnv("DB_CONNECT_ATTEMPTS", "5"))
	}
	cfg.DBAttempts = uint(attempts)

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE %q: %w", cfg.TimeZone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

// Helper function to get env var or return default
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
