package config

import "time"

// Config represents the complete application configuration, assembled from
// defaults, an optional YAML file, BIZWHIZ_* environment variables (including
// those loaded from .env), and command-line flags.
type Config struct {
	APIKey  string        `mapstructure:"api_key"`
	Places  PlacesConfig  `mapstructure:"places"`
	Scrape  ScrapeConfig  `mapstructure:"scrape"`
	Store   StoreConfig   `mapstructure:"store"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// PlacesConfig configures the geocoding and places web services.
type PlacesConfig struct {
	BaseURL string `mapstructure:"base_url"`

	// Timeout bounds each upstream call. Zero means no timeout.
	Timeout time.Duration `mapstructure:"timeout"`
}

// ScrapeConfig configures website fetches for the email scraper.
type ScrapeConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// StoreConfig selects where the result set is persisted.
//
// Driver "json" writes Path as a flat JSON array. Driver "libsql" uses Path
// (or URL plus AuthToken for a remote database) as a libsql database.
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	// Level controls the minimum log level
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Port is the dedicated Prometheus exporter port. The main server also
	// proxies it at /metrics.
	Port int `mapstructure:"port"`
}
