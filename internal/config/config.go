package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Env      string
	LogLevel string

	// Clinic backend API
	APIBaseURL     string
	APIToken       string
	LoginEmail     string
	LoginPassword  string
	OwnerID        string
	RequestTimeout time.Duration
	HealthTimeout  time.Duration

	// Search pipeline
	SearchDebounce  time.Duration
	DefaultPageSize int

	// Settings cache
	SettingsCacheTTL time.Duration
	RedisAddr        string
	RedisPassword    string
	RedisTLS         bool

	// Weather widget
	WeatherLocation string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Env:              getEnv("ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		APIBaseURL:       getEnv("CLINIC_API_BASE_URL", "http://localhost:8000"),
		APIToken:         getEnv("CLINIC_API_TOKEN", ""),
		LoginEmail:       getEnv("CLINIC_LOGIN_EMAIL", ""),
		LoginPassword:    getEnv("CLINIC_LOGIN_PASSWORD", ""),
		OwnerID:          getEnv("CLINIC_OWNER_ID", ""),
		RequestTimeout:   getEnvAsDuration("CLINIC_REQUEST_TIMEOUT", 30*time.Second),
		HealthTimeout:    getEnvAsDuration("CLINIC_HEALTH_TIMEOUT", 5*time.Second),
		SearchDebounce:   getEnvAsDuration("SEARCH_DEBOUNCE", 300*time.Millisecond),
		DefaultPageSize:  getEnvAsInt("DEFAULT_PAGE_SIZE", 10),
		SettingsCacheTTL: getEnvAsDuration("SETTINGS_CACHE_TTL", 5*time.Minute),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisTLS:         getEnvAsBool("REDIS_TLS", false),
		WeatherLocation:  getEnv("WEATHER_LOCATION", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
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
