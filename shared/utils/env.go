package utils

import "os"

// GetEnvOrDefault gets an environment variable or returns the default value
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
