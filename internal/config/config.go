package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	LogLevel          string
	BackendURL        string
	BackendTimeout    time.Duration
	FrontendURL       string
	AllowedOrigins    []string
	JWTSecret         string
	HistoryPageSize   int
	DisplayTimezone   string
	TextbeltAPIKey    string
	TextbeltURL       string
	ReviewNoticeDelay time.Duration
	RedirectDelay     time.Duration
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:              getEnv("API_PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		BackendURL:        strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:5001"), "/"),
		BackendTimeout:    getEnvAsDuration("BACKEND_TIMEOUT", 15*time.Second),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		AllowedOrigins:    getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		HistoryPageSize:   getEnvAsInt("HISTORY_PAGE_SIZE", 5),
		DisplayTimezone:   getEnv("DISPLAY_TIMEZONE", "UTC"),
		TextbeltAPIKey:    getEnv("TEXTBELT_API_KEY", ""),
		TextbeltURL:       getEnv("TEXTBELT_URL", "https://textbelt.com/text"),
		ReviewNoticeDelay: getEnvAsDuration("REVIEW_NOTICE_DELAY", 3*time.Second),
		RedirectDelay:     getEnvAsDuration("REDIRECT_DELAY", 2*time.Second),
	}
}

// Location resolves DisplayTimezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
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

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
