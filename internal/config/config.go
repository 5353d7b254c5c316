// Package config reads the process configuration from the environment once
// at startup. Components receive what they need through constructors; there
// are no ambient singletons.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr  string
	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	SendgridAPIKey string
	EmailSender    string
	EmailName      string
	FrontendURL    string

	GoogleClientID    string
	FacebookAppID     string
	FacebookAppSecret string

	RateLimitWindow      time.Duration
	RateLimitMaxRequests int
}

func Load() *Config {
	return &Config{
		ListenAddr:  GetEnvAsString("LISTEN_ADDR", ":8080"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       GetEnvAsInt("REDIS_DB", 0),

		JWTSecret: os.Getenv("JWT_SECRET"),

		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		EmailSender:    os.Getenv("EMAIL_SENDER"),
		EmailName:      GetEnvAsString("EMAIL_NAME", "Expensave"),
		FrontendURL:    GetEnvAsString("FRONTEND_URL", "http://localhost:3000"),

		GoogleClientID:    os.Getenv("GOOGLE_CLIENT_ID"),
		FacebookAppID:     os.Getenv("FB_APP_ID"),
		FacebookAppSecret: os.Getenv("FB_APP_SECRET"),

		RateLimitWindow:      GetEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		RateLimitMaxRequests: GetEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 30),
	}
}

// GetEnvAsString gets environment variable as string with default value
func GetEnvAsString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets environment variable as int with default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsDuration gets environment variable as duration with default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
