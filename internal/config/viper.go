package config

import (
	"os"

	"github.com/spf13/viper"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	// Check OS env directly first
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// ManifestPath resolves the manifest location: the explicit flag value wins,
// then the REFINERY_MANIFEST environment variable, then the default.
func ManifestPath(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	if env := GetString("REFINERY_MANIFEST"); env != "" {
		return env
	}
	return fallback
}
