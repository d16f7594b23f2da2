// Package config handles configuration loading for the patient-management service.
package config

import (
	"log"
	"os"
	"strings"
	"time"
)

// Config holds all configuration for the service.
type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	SessionSecret  string
	SessionExpiry  time.Duration
	Port           string
	AllowedOrigins []string
	CookieSecure   bool
	Environment    string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		DBHost:         getEnvRequired("DB_HOST"),
		DBPort:         getEnvRequired("DB_PORT"),
		DBUser:         getEnvRequired("DB_USER"),
		DBPassword:     getEnvRequired("DB_PASSWORD"),
		DBName:         getEnvRequired("DB_NAME"),
		RedisHost:      getEnvRequired("REDIS_HOST"),
		RedisPort:      getEnvRequired("REDIS_PORT"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		SessionSecret:  getEnvRequired("SESSION_SECRET"),
		SessionExpiry:  parseDuration(getEnv("SESSION_EXPIRY", "12h"), 12*time.Hour),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		CookieSecure:   getEnv("COOKIE_SECURE", "false") == "true",
		Environment:    getEnv("ENVIRONMENT", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("required environment variable %s is not set", key)
	}
	return value
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
