// Package config handles configuration loading for the blog service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the blog service.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	Port string

	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	NatsURL string

	RedisAddr     string
	RedisPassword string

	RateLimitMax        int
	RateLimitExpiration time.Duration

	OtelEndpoint string

	PostMutationPolicy string
	LogLevel           string
}

// Load reads .env.dev when present, then configuration from environment
// variables.
func Load() *Config {
	_ = godotenv.Load(".env.dev")

	return &Config{
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", ""),
		DBPassword:          getEnv("DB_PASSWORD", ""),
		DBName:              getEnv("DB_NAME", ""),
		Port:                getEnv("APP_PORT", "8001"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:     parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry:    parseDuration(getEnv("JWT_REFRESH_EXPIRY", "720h"), 720*time.Hour),
		NatsURL:             getEnv("NATS_URL", ""),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RateLimitMax:        parseInt(getEnv("RATE_LIMIT_MAX", "100"), 100),
		RateLimitExpiration: parseDuration(getEnv("RATE_LIMIT_EXPIRATION", "60s"), 60*time.Second),
		OtelEndpoint:        getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		PostMutationPolicy:  getEnv("POST_MUTATION_POLICY", "owner_or_admin"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}
}

// Validate reports every required value that is missing.
func (c *Config) Validate() error {
	var missing []string
	if c.DBUser == "" {
		missing = append(missing, "DB_USER")
	}
	if c.DBName == "" {
		missing = append(missing, "DB_NAME")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func parseInt(value string, defaultValue int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
