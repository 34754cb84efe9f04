package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	JWTSecret   string
	JWTExpiry   int64
	SeedFile    string

	NotificationTTL          time.Duration
	NotificationClearDelay   time.Duration
	NotificationClickDelay   time.Duration
	NotificationVisibleLimit int

	DraftAutosaveDelay time.Duration

	RateLimitRPS float64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		JWTSecret:   getEnv("JWT_SECRET", "campus-market-dev-secret"),
		JWTExpiry:   getEnvAsInt64("JWT_EXPIRY", 24*60*60), // 24 hours
		SeedFile:    getEnv("SEED_FILE", ""),

		NotificationTTL:          getEnvAsDuration("NOTIFICATION_TTL", 5*time.Second),
		NotificationClearDelay:   getEnvAsDuration("NOTIFICATION_CLEAR_DELAY", time.Second),
		NotificationClickDelay:   getEnvAsDuration("NOTIFICATION_CLICK_DELAY", 300*time.Millisecond),
		NotificationVisibleLimit: int(getEnvAsInt64("NOTIFICATION_VISIBLE_LIMIT", 3)),

		DraftAutosaveDelay: getEnvAsDuration("DRAFT_AUTOSAVE_DELAY", time.Second),

		RateLimitRPS: getEnvAsFloat64("RATE_LIMIT_RPS", 20),
	}

	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		floatValue, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings ("5s", "300ms").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil && d >= 0 {
			return d
		}
	}
	return defaultValue
}
