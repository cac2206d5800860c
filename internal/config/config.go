package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration. It is built once at
// startup and passed into constructors; nothing reads the environment after
// Load returns.
type Config struct {
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Apollo      ApolloConfig      `yaml:"apollo" mapstructure:"apollo"`
	Serper      SerperConfig      `yaml:"serper" mapstructure:"serper"`
	Browserless BrowserlessConfig `yaml:"browserless" mapstructure:"browserless"`
	LinkedIn    LinkedInConfig    `yaml:"linkedin" mapstructure:"linkedin"`
	Adzuna      AdzunaConfig      `yaml:"adzuna" mapstructure:"adzuna"`
	NewsAPI     NewsAPIConfig     `yaml:"newsapi" mapstructure:"newsapi"`
	SAM         SAMConfig         `yaml:"sam" mapstructure:"sam"`
	Anthropic   AnthropicConfig   `yaml:"anthropic" mapstructure:"anthropic"`
	Gemini      GeminiConfig      `yaml:"gemini" mapstructure:"gemini"`
	Perplexity  PerplexityConfig  `yaml:"perplexity" mapstructure:"perplexity"`
	Notion      NotionConfig      `yaml:"notion" mapstructure:"notion"`
	Collect     CollectConfig     `yaml:"collect" mapstructure:"collect"`
	Enhance     EnhanceConfig     `yaml:"enhance" mapstructure:"enhance"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ApolloConfig holds Apollo.io API settings.
type ApolloConfig struct {
	Key     string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// SerperConfig holds Serper.dev API settings.
type SerperConfig struct {
	Key     string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// BrowserlessConfig holds headless-browser service settings.
type BrowserlessConfig struct {
	Token   string `yaml:"token" mapstructure:"token"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// LinkedInConfig holds authenticated-browsing credentials.
type LinkedInConfig struct {
	Email         string `yaml:"email" mapstructure:"email"`
	Password      string `yaml:"password" mapstructure:"password"`
	SessionCookie string `yaml:"session_cookie" mapstructure:"session_cookie"`
}

// AdzunaConfig holds job-board API settings.
type AdzunaConfig struct {
	AppID   string `yaml:"app_id" mapstructure:"app_id"`
	AppKey  string `yaml:"app_key" mapstructure:"app_key"`
	Country string `yaml:"country" mapstructure:"country"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// NewsAPIConfig holds NewsAPI settings.
type NewsAPIConfig struct {
	Key     string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// SAMConfig holds SAM.gov registry settings.
type SAMConfig struct {
	Key     string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"api_key" mapstructure:"api_key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// GeminiConfig holds Gemini API settings.
type GeminiConfig struct {
	Key   string `yaml:"api_key" mapstructure:"api_key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// PerplexityConfig holds Perplexity API settings.
type PerplexityConfig struct {
	Key   string `yaml:"api_key" mapstructure:"api_key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// NotionConfig holds the optional report-publishing settings.
type NotionConfig struct {
	Token     string `yaml:"token" mapstructure:"token"`
	ReportsDB string `yaml:"reports_db" mapstructure:"reports_db"`
}

// CollectConfig configures the collection orchestrator.
type CollectConfig struct {
	ParallelExecution  bool   `yaml:"parallel_execution" mapstructure:"parallel_execution"`
	TimeoutPerSource   int    `yaml:"timeout_per_source" mapstructure:"timeout_per_source"`
	RetryFailedSources bool   `yaml:"retry_failed_sources" mapstructure:"retry_failed_sources"`
	MaxRetries         int    `yaml:"max_retries" mapstructure:"max_retries"`
	BackoffPolicy      string `yaml:"backoff_policy" mapstructure:"backoff_policy"`
	ModeParamsFile     string `yaml:"mode_params_file" mapstructure:"mode_params_file"`
}

// EnhanceConfig configures the enhancement coordinator.
type EnhanceConfig struct {
	LLMEnabled     bool   `yaml:"llm_enabled" mapstructure:"llm_enabled"`
	Provider       string `yaml:"provider" mapstructure:"provider"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	FallbackMode   string `yaml:"fallback_mode" mapstructure:"fallback_mode"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CHARMANDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "charmander.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("adzuna.country", "au")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("perplexity.model", "sonar-pro")
	v.SetDefault("collect.parallel_execution", true)
	v.SetDefault("collect.timeout_per_source", 30)
	v.SetDefault("collect.retry_failed_sources", true)
	v.SetDefault("collect.max_retries", 2)
	v.SetDefault("collect.backoff_policy", "linear")
	v.SetDefault("enhance.llm_enabled", true)
	v.SetDefault("enhance.provider", "anthropic")
	v.SetDefault("enhance.timeout_seconds", 60)
	v.SetDefault("enhance.fallback_mode", "graceful")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks option values that have a fixed domain.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		return eris.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	switch c.Collect.BackoffPolicy {
	case "linear", "exponential":
	default:
		return eris.Errorf("config: unknown backoff policy %q", c.Collect.BackoffPolicy)
	}
	switch c.Enhance.Provider {
	case "anthropic", "gemini", "perplexity":
	default:
		return eris.Errorf("config: unknown enhancement provider %q", c.Enhance.Provider)
	}
	// Only graceful degradation is implemented.
	if c.Enhance.FallbackMode != "graceful" {
		return eris.Errorf("config: unsupported fallback mode %q", c.Enhance.FallbackMode)
	}
	if c.Collect.MaxRetries < 0 {
		return eris.Errorf("config: max_retries must be >= 0, got %d", c.Collect.MaxRetries)
	}
	if c.Collect.TimeoutPerSource <= 0 {
		return eris.Errorf("config: timeout_per_source must be > 0, got %d", c.Collect.TimeoutPerSource)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
