// Package config reads typed settings from environment variables and
// validates them.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the value of key, or defaultValue when unset or empty.
func GetEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt returns key parsed as an int. Unparsable values fall back to
// defaultValue with a warning.
func GetEnvInt(key string, defaultValue int) int {
	return getEnv(key, defaultValue, strconv.Atoi)
}

// GetEnvInt64 is GetEnvInt for byte sizes and other large values.
func GetEnvInt64(key string, defaultValue int64) int64 {
	return getEnv(key, defaultValue, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

// GetEnvFloat returns key parsed as a float64.
func GetEnvFloat(key string, defaultValue float64) float64 {
	return getEnv(key, defaultValue, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// GetEnvBool accepts the forms understood by strconv.ParseBool.
//
// Example:
//
//	enabled := GetEnvBool("TRACING_ENABLED", false)
func GetEnvBool(key string, defaultValue bool) bool {
	return getEnv(key, defaultValue, strconv.ParseBool)
}

// GetEnvDuration returns key parsed with time.ParseDuration ("30s", "1m30s").
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return getEnv(key, defaultValue, time.ParseDuration)
}

// GetEnvStringList splits a comma-separated value, trimming blanks and
// dropping empty items. An all-empty value yields defaultValue.
//
// Example:
//
//	// CORS_ALLOWED_ORIGINS="http://localhost:3000, https://journal.example.com"
//	origins := GetEnvStringList("CORS_ALLOWED_ORIGINS", []string{"*"})
func GetEnvStringList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}

func getEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := parse(strings.TrimSpace(raw))
	if err != nil {
		slog.Warn("invalid value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Any("default", defaultValue),
			slog.String("error", err.Error()))
		return defaultValue
	}
	return value
}
