package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// app config, loaded once at startup
type Config struct {
	Port           string
	DatabaseURL    string
	RedisAddr      string
	JWTSecret      string
	ChallengeTTL   time.Duration
	ExpirySchedule string
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	ttlHours, err := strconv.Atoi(getEnvOrDefault("CHALLENGE_TTL_HOURS", "48"))
	if err != nil || ttlHours < 1 {
		return nil, fmt.Errorf("invalid CHALLENGE_TTL_HOURS: %s", os.Getenv("CHALLENGE_TTL_HOURS"))
	}

	config := &Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", "dev"),
		ChallengeTTL:   time.Duration(ttlHours) * time.Hour,
		ExpirySchedule: getEnvOrDefault("CHALLENGE_EXPIRY_CRON", "@every 15m"),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
