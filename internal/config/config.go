package config

import (
	"os"
	"strconv"
)

// DefaultRouteFallbackKm is the approximate length of the full coastal
// loop, used whenever a route has no usable polyline. Historical builds
// also shipped a 572 km inland profile; deployments pick via env instead
// of carrying two hardcoded constants.
const DefaultRouteFallbackKm = 1585.0

// RouteFallbackLengthKm reads the configured fallback route length.
func RouteFallbackLengthKm() float64 {
	if v := os.Getenv("ROUTE_FALLBACK_LENGTH_KM"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return DefaultRouteFallbackKm
}

// SyncCronSpec is the recurring sync schedule, every two hours by default.
func SyncCronSpec() string {
	if v := os.Getenv("SYNC_CRON"); v != "" {
		return v
	}
	return "0 */2 * * *"
}

// ListenAddr is the HTTP bind address.
func ListenAddr() string {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		return v
	}
	return "0.0.0.0:8080"
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
