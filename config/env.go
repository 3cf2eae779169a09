package config

import (
	"os"
	"strings"
)

// GetEnv reads an environment variable, trimming surrounding whitespace.
func GetEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// GetEnvOr reads an environment variable with a fallback default.
func GetEnvOr(key, fallback string) string {
	value := GetEnv(key)
	if value == "" {
		return fallback
	}
	return value
}

// IsProduction reports whether the service runs with APP_ENV=production.
// Controllers use this to decide whether error details may leave the process.
func IsProduction() bool {
	return strings.EqualFold(GetEnv("APP_ENV"), "production")
}
