package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Server: ServerConfig{Port: "8080"},
		Storefront: StorefrontConfig{
			Domain:        "reuse-market.myshopify.com",
			PageSize:      8,
			RPS:           4,
			Burst:         8,
			DefaultLocale: "ja-JP",
		},
	}
}

// isolateEnv clears every variable Load reads and points the .env lookup at
// an empty directory.
func isolateEnv(t *testing.T) string {
	t.Helper()
	for _, key := range []string{
		"ENV", "LOG_LEVEL", "SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"SERVER_IDLE_TIMEOUT", "STOREFRONT_DOMAIN", "STOREFRONT_API_VERSION",
		"STOREFRONT_PUBLIC_TOKEN", "STOREFRONT_TIMEOUT", "STOREFRONT_RPS", "STOREFRONT_BURST",
		"STOREFRONT_PAGE_SIZE", "STOREFRONT_METAFIELD_NAMESPACE", "DEFAULT_LOCALE",
		"FACET_DEFINITIONS_PATH", "FACET_DEFINITIONS_WATCH", "CORS_ALLOWED_ORIGINS",
		"RATE_LIMIT_PER_MINUTE", "RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "") // restores the original value on cleanup
		require.NoError(t, os.Unsetenv(key))
	}
	return t.TempDir()
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true}, // case insensitive
		{"trace", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing domain", func(c *Config) { c.Storefront.Domain = "" }},
		{"domain with scheme", func(c *Config) { c.Storefront.Domain = "https://shop.example/" }},
		{"port not a number", func(c *Config) { c.Server.Port = "http" }},
		{"port out of range", func(c *Config) { c.Server.Port = "70000" }},
		{"page size zero", func(c *Config) { c.Storefront.PageSize = 0 }},
		{"page size too large", func(c *Config) { c.Storefront.PageSize = 251 }},
		{"no outbound budget", func(c *Config) { c.Storefront.RPS = 0 }},
		{"bad locale", func(c *Config) { c.Storefront.DefaultLocale = "not a locale" }},
		{"negative rate limit", func(c *Config) { c.HTTP.RateLimitPerMinute = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolateEnv(t)
	t.Setenv("STOREFRONT_DOMAIN", "reuse-market.myshopify.com")

	cfg, err := Load([]string{"-env-file", filepath.Join(dir, ".env")})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, "2024-10", cfg.Storefront.APIVersion)
	assert.Equal(t, 15*time.Second, cfg.Storefront.Timeout)
	assert.Equal(t, 8, cfg.Storefront.PageSize)
	assert.Equal(t, "custom", cfg.Storefront.MetafieldNamespace)
	assert.Equal(t, "ja-JP", cfg.Storefront.DefaultLocale)
	assert.Empty(t, cfg.Facets.DefinitionsPath)
	assert.True(t, cfg.Facets.Watch)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, 120, cfg.HTTP.RateLimitPerMinute)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolateEnv(t)
	envFile := filepath.Join(dir, ".env")
	content := `# shop settings
STOREFRONT_DOMAIN=from-dotenv.myshopify.com
SERVER_PORT=7000
LOG_LEVEL=warn
STOREFRONT_PAGE_SIZE=12
CORS_ALLOWED_ORIGINS="https://shop.example, https://admin.example"
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	// Environment beats .env, flags beat environment.
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load([]string{"-env-file", envFile, "-log-level", "error"})
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv.myshopify.com", cfg.Storefront.Domain)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "error", cfg.Logger.Level)
	assert.Equal(t, 12, cfg.Storefront.PageSize)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.HTTP.CORSAllowedOrigins)
}

func TestLoad_FacetDefinitionsPathIsAbsolute(t *testing.T) {
	dir := isolateEnv(t)
	t.Setenv("STOREFRONT_DOMAIN", "shop.example")

	cfg, err := Load([]string{"-env-file", filepath.Join(dir, ".env"), "-facet-definitions", "configs/facets.yaml"})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.Facets.DefinitionsPath))
	assert.Equal(t, "facets.yaml", filepath.Base(cfg.Facets.DefinitionsPath))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "missing domain"},
		{
			name: "bad duration",
			env:  map[string]string{"STOREFRONT_DOMAIN": "shop.example", "STOREFRONT_TIMEOUT": "soon"},
		},
		{
			name: "unknown flag",
			env:  map[string]string{"STOREFRONT_DOMAIN": "shop.example"},
			args: []string{"-bogus"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			args := append([]string{"-env-file", filepath.Join(dir, ".env")}, tt.args...)

			_, err := Load(args)
			assert.Error(t, err)
		})
	}
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("TEST_CONFIG_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "TEST_CONFIG_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "TEST_CONFIG_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "TEST_CONFIG_MISSING", "default"))
}

func TestTypedConfigValues(t *testing.T) {
	t.Setenv("TEST_BOOL", "YES")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty")
	t.Setenv("TEST_FLOAT", "0.5")

	assert.True(t, getBoolConfigValue("", "TEST_BOOL", false))
	assert.False(t, getBoolConfigValue("no", "TEST_BOOL", true))
	assert.True(t, getBoolConfigValue("", "TEST_BOOL_MISSING", true))

	assert.Equal(t, 42, getIntConfigValue("", "TEST_INT", 1))
	assert.Equal(t, 1, getIntConfigValue("", "TEST_BAD_INT", 1))
	assert.InDelta(t, 0.5, getFloatConfigValue("", "TEST_FLOAT", 1), 1e-9)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Nil(t, splitList(""))
}

func TestLoadEnvFile_NonExistentFile(t *testing.T) {
	err := loadEnvFile(filepath.Join(t.TempDir(), "nope.env"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
