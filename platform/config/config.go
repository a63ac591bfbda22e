// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// GeocoderConfig provides settings for the Nominatim reverse geocoder.
type GeocoderConfig interface {
	GetNominatimBaseURL() string
	GetGeocoderUserAgent() string
	GetGeocoderRateRPS() float64
}

// NotifyCopyConfig provides settings for the notification copy service.
type NotifyCopyConfig interface {
	GetNotifyCopyURL() string
	GetNotifyCopyTTL() time.Duration
	IsNotifyCopyRemoteEnabled() bool
}

// ImportConfig provides settings for the URL import module.
type ImportConfig interface {
	GetImportRateRPS() float64
	GetImportRateBurst() int
	GetFetchUserAgent() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env               string
	HTTPAddr          string
	CORSAllowAll      bool
	CORSOrigins       []string
	CORSAllowCreds    bool
	NominatimBaseURL  string
	GeocoderUserAgent string
	GeocoderRateRPS   float64
	NotifyCopyURL     string
	NotifyCopyTTL     time.Duration
	ImportRateRPS     float64
	ImportRateBurst   int
	FetchUserAgent    string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// GeocoderConfig implementation
func (c *Config) GetNominatimBaseURL() string  { return c.NominatimBaseURL }
func (c *Config) GetGeocoderUserAgent() string { return c.GeocoderUserAgent }
func (c *Config) GetGeocoderRateRPS() float64  { return c.GeocoderRateRPS }

// NotifyCopyConfig implementation
func (c *Config) GetNotifyCopyURL() string        { return c.NotifyCopyURL }
func (c *Config) GetNotifyCopyTTL() time.Duration { return c.NotifyCopyTTL }
func (c *Config) IsNotifyCopyRemoteEnabled() bool { return c.NotifyCopyURL != "" }

// ImportConfig implementation
func (c *Config) GetImportRateRPS() float64 { return c.ImportRateRPS }
func (c *Config) GetImportRateBurst() int   { return c.ImportRateBurst }
func (c *Config) GetFetchUserAgent() string { return c.FetchUserAgent }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:      corsAllowAll,
		CORSOrigins:       corsOrigins,
		CORSAllowCreds:    strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		NominatimBaseURL:  getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent: getEnv("GEOCODER_USER_AGENT", "SpotsApp/1.0"),
		GeocoderRateRPS:   mustFloat(getEnv("GEOCODER_RATE_LIMIT_RPS", "1")),
		NotifyCopyURL:     getEnv("NOTIFY_COPY_URL", ""),
		NotifyCopyTTL:     mustDuration(getEnv("NOTIFY_COPY_TTL", "1h")),
		ImportRateRPS:     mustFloat(getEnv("IMPORT_RATE_LIMIT_RPS", "1")),
		ImportRateBurst:   mustInt(getEnv("IMPORT_RATE_LIMIT_BURST", "5")),
		FetchUserAgent:    getEnv("FETCH_USER_AGENT", "SpotsApp/1.0"),
	}

	if cfg.NominatimBaseURL == "" {
		return nil, fmt.Errorf("NOMINATIM_BASE_URL cannot be empty")
	}
	if cfg.GeocoderRateRPS <= 0 {
		return nil, fmt.Errorf("GEOCODER_RATE_LIMIT_RPS must be a positive number")
	}
	if cfg.NotifyCopyURL != "" && cfg.NotifyCopyTTL <= 0 {
		return nil, fmt.Errorf("NOTIFY_COPY_TTL must be a valid duration")
	}
	if cfg.ImportRateRPS <= 0 || cfg.ImportRateBurst <= 0 {
		return nil, fmt.Errorf("IMPORT_RATE_LIMIT_RPS and IMPORT_RATE_LIMIT_BURST must be positive")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
