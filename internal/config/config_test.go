package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no config.yaml is found.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "charmander.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "au", cfg.Adzuna.Country)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "sonar-pro", cfg.Perplexity.Model)

	assert.True(t, cfg.Collect.ParallelExecution)
	assert.Equal(t, 30, cfg.Collect.TimeoutPerSource)
	assert.True(t, cfg.Collect.RetryFailedSources)
	assert.Equal(t, 2, cfg.Collect.MaxRetries)
	assert.Equal(t, "linear", cfg.Collect.BackoffPolicy)

	assert.True(t, cfg.Enhance.LLMEnabled)
	assert.Equal(t, "anthropic", cfg.Enhance.Provider)
	assert.Equal(t, 60, cfg.Enhance.TimeoutSeconds)
	assert.Equal(t, "graceful", cfg.Enhance.FallbackMode)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/charmander
log:
  level: debug
  format: console
server:
  port: 9090
enhance:
  provider: gemini
collect:
  max_retries: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/charmander", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.Enhance.Provider)
	assert.Equal(t, 5, cfg.Collect.MaxRetries)
	// Defaults still apply for unset values.
	assert.Equal(t, 30, cfg.Collect.TimeoutPerSource)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := "log:\n  level: warn\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("CHARMANDER_LOG_LEVEL", "debug")
	t.Setenv("CHARMANDER_APOLLO_API_KEY", "env-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "env-key", cfg.Apollo.Key)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("CHARMANDER_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Store:   StoreConfig{Driver: "sqlite"},
			Collect: CollectConfig{TimeoutPerSource: 30, BackoffPolicy: "linear"},
			Enhance: EnhanceConfig{Provider: "anthropic", FallbackMode: "graceful"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:   "perplexity_provider_allowed",
			mutate: func(c *Config) { c.Enhance.Provider = "perplexity" },
		},
		{
			name:    "unknown_driver",
			mutate:  func(c *Config) { c.Store.Driver = "mysql" },
			wantErr: "unknown store driver",
		},
		{
			name:    "unknown_backoff",
			mutate:  func(c *Config) { c.Collect.BackoffPolicy = "fibonacci" },
			wantErr: "unknown backoff policy",
		},
		{
			name:    "unknown_provider",
			mutate:  func(c *Config) { c.Enhance.Provider = "openai" },
			wantErr: "unknown enhancement provider",
		},
		{
			name:    "unsupported_fallback_mode",
			mutate:  func(c *Config) { c.Enhance.FallbackMode = "strict" },
			wantErr: "unsupported fallback mode",
		},
		{
			name:    "negative_retries",
			mutate:  func(c *Config) { c.Collect.MaxRetries = -1 },
			wantErr: "max_retries must be >= 0",
		},
		{
			name:    "zero_timeout",
			mutate:  func(c *Config) { c.Collect.TimeoutPerSource = 0 },
			wantErr: "timeout_per_source must be > 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "verbose", Format: "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}
