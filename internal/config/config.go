package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Engine     EngineConfig     `mapstructure:"engine"`
	Assets     AssetsConfig     `mapstructure:"assets"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	Security   SecurityConfig   `mapstructure:"security"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CatalogConfig selects where the phone catalog is loaded from at startup.
// Source is "file" (CSV) or "postgres".
type CatalogConfig struct {
	Source         string        `mapstructure:"source"`
	Path           string        `mapstructure:"path"`
	DatabaseURL    string        `mapstructure:"database_url"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type CacheConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	URL        string        `mapstructure:"url"`
	TTL        time.Duration `mapstructure:"ttl"`
	MaxRetries int           `mapstructure:"max_retries"`
	PoolSize   int           `mapstructure:"pool_size"`
}

type EngineConfig struct {
	DefaultTopN    int    `mapstructure:"default_top_n"`
	ColdStartCount int    `mapstructure:"cold_start_count"`
	EncoderCommand string `mapstructure:"encoder_command"`
	ScorerCommand  string `mapstructure:"scorer_command"`
}

type AssetsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
	Command string `mapstructure:"command"`
}

type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}

type SecurityConfig struct {
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	// Set defaults
	setDefaults()

	// Environment variable overrides
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, continue with env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "development")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Catalog defaults
	viper.SetDefault("catalog.source", "file")
	viper.SetDefault("catalog.path", "./data/catalog.csv")
	viper.SetDefault("catalog.connect_timeout", "10s")

	// Cache defaults
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.url", "redis://localhost:6379/0")
	viper.SetDefault("cache.ttl", "15m")
	viper.SetDefault("cache.max_retries", 3)
	viper.SetDefault("cache.pool_size", 10)

	// Engine defaults
	viper.SetDefault("engine.default_top_n", 5)
	viper.SetDefault("engine.cold_start_count", 5)

	// Assets defaults
	viper.SetDefault("assets.enabled", false)
	viper.SetDefault("assets.dir", "./assets/previews")

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")

	// Security defaults
	viper.SetDefault("security.cors.allowed_origins", []string{"*"})
	viper.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	viper.SetDefault("security.cors.allowed_headers", []string{"*"})
}
