// Package config provides configuration management for BizWhiz.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable BizWhiz reads.
const EnvPrefix = "BIZWHIZ"

const (
	DriverJSON   = "json"
	DriverLibsql = "libsql"

	// DefaultResultsFile is where the result set lives when nothing else is configured.
	DefaultResultsFile = "businesses_results.json"
	defaultLibsqlFile  = "bizwhiz.db"
)

var (
	appConfig *Config
	configMu  sync.RWMutex
)

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api_key", "")

	v.SetDefault("places.base_url", "https://maps.googleapis.com/maps/api")
	v.SetDefault("places.timeout", "0s")

	v.SetDefault("scrape.timeout", "0s")
	v.SetDefault("scrape.user_agent", "Mozilla/5.0 (compatible; BizWhiz/1.0)")

	v.SetDefault("store.driver", DriverJSON)
	v.SetDefault("store.path", "")
	v.SetDefault("store.url", "")
	v.SetDefault("store.auth_token", "")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "0s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("logging.level", "info")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
}

// BindEnv makes v read BIZWHIZ_* variables, mapping nested keys with
// underscores (places.base_url -> BIZWHIZ_PLACES_BASE_URL).
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load decodes the settings held by v into a typed Config.
//
// This function is safe to call multiple times (e.g., for config reload)
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.GetViper()
	}

	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = DriverJSON
	}
	if strings.TrimSpace(cfg.Store.URL) == "" && strings.TrimSpace(cfg.Store.Path) == "" {
		cfg.Store.Path = DefaultStorePath(cfg.Store.Driver)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	setConfig(cfg)
	return cfg, nil
}

// Validate rejects settings that cannot work.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverJSON:
		if strings.TrimSpace(c.Store.Path) == "" {
			return errors.New("store.path is required for the json driver")
		}
	case DriverLibsql:
	default:
		return fmt.Errorf("unsupported store driver: %s", c.Store.Driver)
	}
	if c.Places.Timeout < 0 || c.Scrape.Timeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}

// DefaultStorePath returns the default persistence location for a driver.
func DefaultStorePath(driver string) string {
	if driver == DriverLibsql {
		return defaultLibsqlFile
	}
	return DefaultResultsFile
}

// GetConfig returns the current application configuration (thread-safe)
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

// setConfig updates the current configuration (thread-safe)
func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}
