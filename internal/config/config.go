package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Square scheduling vendor
	SquareBaseURL     string
	SquareAccessToken string
	SquareLocationID  string
	SquareTimeout     time.Duration

	// Business settings
	BusinessTimezone    string
	ServiceResourceJSON string
	ServiceFamilyJSON   string
	PrimarySpaServiceID string
	SpaResourceID       string
	CatalogWarmup       bool

	// Client/pet roster cache
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	RosterTTL     time.Duration

	// Booking history
	DatabaseURL string

	// Staff API auth
	StaffJWTSecret string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		SquareBaseURL:     getEnv("SQUARE_BASE_URL", "https://connect.squareup.com"),
		SquareAccessToken: getEnv("SQUARE_ACCESS_TOKEN", ""),
		SquareLocationID:  getEnv("SQUARE_LOCATION_ID", ""),
		SquareTimeout:     getEnvAsDuration("SQUARE_TIMEOUT", 20*time.Second),

		BusinessTimezone:    getEnv("BUSINESS_TZ", "America/Denver"),
		ServiceResourceJSON: getEnv("SERVICE_RESOURCE_MAP_JSON", ""),
		ServiceFamilyJSON:   getEnv("SERVICE_FAMILY_MAP_JSON", ""),
		PrimarySpaServiceID: getEnv("PRIMARY_SPA_SERVICE_ID", ""),
		SpaResourceID:       getEnv("SPA_RESOURCE_ID", ""),
		CatalogWarmup:       getEnvAsBool("CATALOG_WARMUP", true),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
		RosterTTL:     getEnvAsDuration("ROSTER_TTL", 24*time.Hour),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		StaffJWTSecret: getEnv("STAFF_JWT_SECRET", ""),
	}
}

// ServiceResourceMap decodes the service-id to resource-id assignment table.
// Returns an empty map when the variable is unset or malformed.
func (c *Config) ServiceResourceMap() map[string]string {
	return decodeStringMap(c.ServiceResourceJSON)
}

// ServiceFamilyMap decodes the service-id to service-family classification table.
func (c *Config) ServiceFamilyMap() map[string]string {
	return decodeStringMap(c.ServiceFamilyJSON)
}

func decodeStringMap(raw string) map[string]string {
	out := map[string]string{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return map[string]string{}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
