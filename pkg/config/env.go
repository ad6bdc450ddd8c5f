// Package config provides small helpers for reading typed values from environment variables.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the value of the first non-empty environment variable in keys,
// or defaultValue when none is set.
//
// Multiple keys allow a preferred name followed by legacy aliases:
//
//	url := GetEnvString("", "WATSON_API_URL", "WATSON_NLU_URL")
func GetEnvString(defaultValue string, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return defaultValue
}

// GetEnvInt returns the value of an environment variable as an integer.
//
// If the variable is unset, empty, or not an integer, defaultValue is returned.
// An unparsable value is logged as a warning.
func GetEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		slog.Warn("invalid integer value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.Int("default", defaultValue),
			slog.String("error", err.Error()))
		return defaultValue
	}

	return value
}

// GetEnvFloat returns the value of an environment variable as a float64.
//
// If the variable is unset, empty, or not a number, defaultValue is returned.
func GetEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
	if err != nil {
		slog.Warn("invalid float value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.Float64("default", defaultValue),
			slog.String("error", err.Error()))
		return defaultValue
	}

	return value
}

// GetEnvBool returns the value of an environment variable as a boolean.
//
// Accepted values are those understood by strconv.ParseBool ("1", "t", "true", "0", "f", "false", ...).
// Anything else yields defaultValue and a warning.
func GetEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(strings.TrimSpace(valueStr))
	if err != nil {
		slog.Warn("invalid boolean value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.Bool("default", defaultValue))
		return defaultValue
	}

	return value
}

// LookupEnvDuration parses an environment variable with time.ParseDuration.
//
// Unlike the other helpers it reports parse failures to the caller, because an
// unreadable timeout should stop startup rather than silently fall back.
// The boolean result is false when the variable is unset or empty.
func LookupEnvDuration(key string) (time.Duration, bool, error) {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return 0, false, nil
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, true, err
	}
	return value, true, nil
}
