// Package config provides application configuration management with support
// for command-line flags, environment variables, and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Config holds the application configuration.
type Config struct {
	App        AppConfig
	Logger     LoggerConfig
	Server     ServerConfig
	Storefront StorefrontConfig
	Facets     FacetConfig
	HTTP       HTTPConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 30s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// StorefrontConfig holds the Storefront API connection.
type StorefrontConfig struct {
	Domain             string // e.g. reuse-market.myshopify.com
	APIVersion         string // default: 2024-10
	PublicToken        string // public Storefront access token
	Timeout            time.Duration
	RPS                float64 // outbound requests per second (default: 4)
	Burst              int     // default: 8
	PageSize           int     // products per page (default: 8)
	MetafieldNamespace string  // default: custom
	DefaultLocale      string  // used when a request names no locale (default: ja-JP)
}

// FacetConfig holds facet definition settings.
type FacetConfig struct {
	// DefinitionsPath is an optional YAML file; empty means built-in definitions.
	DefinitionsPath string
	// Watch reloads DefinitionsPath on change (default: true).
	Watch bool
}

// HTTPConfig holds inbound HTTP policy.
type HTTPConfig struct {
	CORSAllowedOrigins []string
	RateLimitPerMinute int // per client IP; 0 disables (default: 120)
	RateLimitBurst     int // default: 30
}

// LoadConfig loads configuration from the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load builds configuration with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")

	serverPort := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 30s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	domain := fs.String("storefront-domain", "", "Shop domain, e.g. shop.myshopify.com")
	apiVersion := fs.String("storefront-api-version", "", "Storefront API version (default: 2024-10)")
	sfTimeout := fs.String("storefront-timeout", "", "Storefront request timeout (default: 15s)")
	pageSize := fs.String("page-size", "", "Products per page (default: 8)")
	defaultLocale := fs.String("default-locale", "", "Locale when none is requested (default: ja-JP)")

	definitionsPath := fs.String("facet-definitions", "", "Path to facet definitions YAML")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Load .env file if it exists. Variables already set in the environment win.
	if err := loadEnvFile(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},
		Storefront: StorefrontConfig{
			Domain:             getConfigValue(*domain, "STOREFRONT_DOMAIN", ""),
			APIVersion:         getConfigValue(*apiVersion, "STOREFRONT_API_VERSION", "2024-10"),
			PublicToken:        getConfigValue("", "STOREFRONT_PUBLIC_TOKEN", ""),
			RPS:                getFloatConfigValue("", "STOREFRONT_RPS", 4),
			Burst:              getIntConfigValue("", "STOREFRONT_BURST", 8),
			PageSize:           getIntConfigValue(*pageSize, "STOREFRONT_PAGE_SIZE", 8),
			MetafieldNamespace: getConfigValue("", "STOREFRONT_METAFIELD_NAMESPACE", "custom"),
			DefaultLocale:      getConfigValue(*defaultLocale, "DEFAULT_LOCALE", "ja-JP"),
		},
		Facets: FacetConfig{
			DefinitionsPath: getConfigValue(*definitionsPath, "FACET_DEFINITIONS_PATH", ""),
			Watch:           getBoolConfigValue("", "FACET_DEFINITIONS_WATCH", true),
		},
		HTTP: HTTPConfig{
			CORSAllowedOrigins: splitList(getConfigValue("", "CORS_ALLOWED_ORIGINS", "*")),
			RateLimitPerMinute: getIntConfigValue("", "RATE_LIMIT_PER_MINUTE", 120),
			RateLimitBurst:     getIntConfigValue("", "RATE_LIMIT_BURST", 30),
		},
	}

	durations := []struct {
		flagValue, envKey, def string
		dst                    *time.Duration
	}{
		{*readTimeout, "SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{*writeTimeout, "SERVER_WRITE_TIMEOUT", "30s", &cfg.Server.WriteTimeout},
		{*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
		{*sfTimeout, "STOREFRONT_TIMEOUT", "15s", &cfg.Storefront.Timeout},
	}
	for _, d := range durations {
		value, err := getDurationConfigValue(d.flagValue, d.envKey, d.def)
		if err != nil {
			return nil, err
		}
		*d.dst = value
	}

	if cfg.Facets.DefinitionsPath != "" {
		expanded, err := expandPath(cfg.Facets.DefinitionsPath)
		if err != nil {
			return nil, fmt.Errorf("invalid facet definitions path: %w", err)
		}
		cfg.Facets.DefinitionsPath = expanded
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port: %q", c.Server.Port)
	}

	if c.Storefront.Domain == "" {
		return errors.New("STOREFRONT_DOMAIN is required")
	}
	if strings.Contains(c.Storefront.Domain, "/") {
		return fmt.Errorf("STOREFRONT_DOMAIN must be a bare host, got %q", c.Storefront.Domain)
	}
	if c.Storefront.PageSize < 1 || c.Storefront.PageSize > 250 {
		return fmt.Errorf("invalid page size: %d (must be 1-250)", c.Storefront.PageSize)
	}
	if c.Storefront.RPS <= 0 || c.Storefront.Burst < 1 {
		return errors.New("STOREFRONT_RPS and STOREFRONT_BURST must be positive")
	}
	if _, err := language.Parse(c.Storefront.DefaultLocale); err != nil {
		return fmt.Errorf("invalid default locale %q: %w", c.Storefront.DefaultLocale, err)
	}

	if c.HTTP.RateLimitPerMinute < 0 || c.HTTP.RateLimitBurst < 0 {
		return errors.New("rate limit settings cannot be negative")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(strValue)
	if err != nil {
		return defaultValue
	}
	return result
}

// getFloatConfigValue returns a float64 from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.ParseFloat(strValue, 64)
	if err != nil {
		return defaultValue
	}
	return result
}

// getDurationConfigValue parses a duration from flag, env var, or default.
func getDurationConfigValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	strValue := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(strValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, strValue, err)
	}
	return d, nil
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadEnvFile loads variables from a .env file without overriding variables
// already present in the environment.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	return godotenv.Load(path)
}
