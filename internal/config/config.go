package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath     string
	LogLevel         string
	Port             int
	DevMode          bool
	ReminderSchedule string // cron spec for the customer-response reminder job
	CacheRefresh     string // cron spec for the overview report cache refresh
	CacheTTLMinutes  int
	BackupSchedule   string // cron spec for the nightly database backup
	BackupBucket     string // S3 bucket for backups; empty disables the job
	BackupRegion     string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnvAsInt("PORT", 8000),
		DevMode:          getEnvAsBool("DEV_MODE", false),
		DatabasePath:     getEnv("DATABASE_PATH", "./data/exportwins.db"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		ReminderSchedule: getEnv("REMINDER_SCHEDULE", "0 0 8 * * *"),
		CacheRefresh:     getEnv("CACHE_REFRESH_SCHEDULE", "0 */15 * * * *"),
		CacheTTLMinutes:  getEnvAsInt("CACHE_TTL_MINUTES", 30),
		BackupSchedule:   getEnv("BACKUP_SCHEDULE", "0 0 2 * * *"),
		BackupBucket:     getEnv("BACKUP_S3_BUCKET", ""),
		BackupRegion:     getEnv("BACKUP_S3_REGION", "eu-west-2"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.CacheTTLMinutes < 1 {
		return fmt.Errorf("CACHE_TTL_MINUTES must be at least 1")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
