// Package config loads application configuration from config.yaml and
// INTEL_-prefixed environment variables, with defaults for every knob.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Serper     SerperConfig     `yaml:"serper" mapstructure:"serper"`
	Proxycurl  ProxycurlConfig  `yaml:"proxycurl" mapstructure:"proxycurl"`
	Apollo     ApolloConfig     `yaml:"apollo" mapstructure:"apollo"`
	BrightData BrightDataConfig `yaml:"brightdata" mapstructure:"brightdata"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Budgets    BudgetConfig     `yaml:"budgets" mapstructure:"budgets"`
	Engine     EngineConfig     `yaml:"engine" mapstructure:"engine"`
	Catalog    CatalogConfig    `yaml:"catalog" mapstructure:"catalog"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// CacheConfig configures the cache backend.
type CacheConfig struct {
	// Driver is one of "memory", "sqlite" or "postgres".
	Driver      string `yaml:"driver" mapstructure:"driver"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// SerperConfig holds Serper.dev search API settings.
type SerperConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// ProxycurlConfig holds Proxycurl API settings.
type ProxycurlConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// ApolloConfig holds Apollo.io API settings.
type ApolloConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// BrightDataConfig holds Bright Data marketplace dataset settings.
type BrightDataConfig struct {
	Key              string `yaml:"key" mapstructure:"key"`
	BaseURL          string `yaml:"base_url" mapstructure:"base_url"`
	PollIntervalSecs int    `yaml:"poll_interval_secs" mapstructure:"poll_interval_secs"`
}

// AnthropicConfig holds Anthropic API settings for narrative generation.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// BudgetConfig holds per-consumer default budgets in USD.
type BudgetConfig struct {
	Profile              float64 `yaml:"profile" mapstructure:"profile"`
	VendorContext        float64 `yaml:"vendor_context" mapstructure:"vendor_context"`
	CustomerIntelligence float64 `yaml:"customer_intelligence" mapstructure:"customer_intelligence"`
	Research             float64 `yaml:"research" mapstructure:"research"`
	Test                 float64 `yaml:"test" mapstructure:"test"`
}

// EngineConfig configures collection fan-out and retry.
type EngineConfig struct {
	MaxParallelSources int `yaml:"max_parallel_sources" mapstructure:"max_parallel_sources"`
	BatchPacingMillis  int `yaml:"batch_pacing_millis" mapstructure:"batch_pacing_millis"`
	MaxRetries         int `yaml:"max_retries" mapstructure:"max_retries"`
	RetryBaseDelaySecs int `yaml:"retry_base_delay_secs" mapstructure:"retry_base_delay_secs"`
}

// CatalogConfig points at an optional YAML override for the source table.
type CatalogConfig struct {
	OverridePath string `yaml:"override_path" mapstructure:"override_path"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// BatchPacing returns the configured inter-batch delay.
func (e EngineConfig) BatchPacing() time.Duration {
	return time.Duration(e.BatchPacingMillis) * time.Millisecond
}

// RetryBaseDelay returns the configured backoff seed.
func (e EngineConfig) RetryBaseDelay() time.Duration {
	return time.Duration(e.RetryBaseDelaySecs) * time.Second
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("INTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("cache.driver", "sqlite")
	v.SetDefault("cache.sqlite_path", "intel-cache.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("serper.base_url", "https://google.serper.dev")
	v.SetDefault("proxycurl.base_url", "https://nubela.co/proxycurl/api")
	v.SetDefault("apollo.base_url", "https://api.apollo.io/api/v1")
	v.SetDefault("brightdata.base_url", "https://api.brightdata.com/datasets/v3")
	v.SetDefault("brightdata.poll_interval_secs", 2)
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 2048)
	v.SetDefault("budgets.profile", 2.00)
	v.SetDefault("budgets.vendor_context", 5.00)
	v.SetDefault("budgets.customer_intelligence", 7.00)
	v.SetDefault("budgets.research", 5.00)
	v.SetDefault("budgets.test", 1.00)
	v.SetDefault("engine.max_parallel_sources", 5)
	v.SetDefault("engine.batch_pacing_millis", 500)
	v.SetDefault("engine.max_retries", 2)
	v.SetDefault("engine.retry_base_delay_secs", 1)

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

	return &cfg, nil
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
