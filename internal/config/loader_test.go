package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

func TestLoad(t *testing.T) {
	t.Run("LoadDefaults", func(t *testing.T) {
		cfg, err := Load(newViper(t))
		require.NoError(t, err)

		assert.Equal(t, "", cfg.APIKey)
		assert.Equal(t, "https://maps.googleapis.com/maps/api", cfg.Places.BaseURL)
		assert.Equal(t, time.Duration(0), cfg.Places.Timeout)
		assert.Equal(t, time.Duration(0), cfg.Scrape.Timeout)

		assert.Equal(t, DriverJSON, cfg.Store.Driver)
		assert.Equal(t, DefaultResultsFile, cfg.Store.Path)

		assert.Equal(t, "localhost", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.True(t, cfg.Metrics.Enabled)

		assert.Same(t, cfg, GetConfig())
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		t.Setenv("BIZWHIZ_API_KEY", "  env-key  ")
		t.Setenv("BIZWHIZ_PLACES_TIMEOUT", "15s")
		t.Setenv("BIZWHIZ_STORE_DRIVER", "LIBSQL")

		cfg, err := Load(newViper(t))
		require.NoError(t, err)
		assert.Equal(t, "env-key", cfg.APIKey)
		assert.Equal(t, 15*time.Second, cfg.Places.Timeout)
		assert.Equal(t, DriverLibsql, cfg.Store.Driver)
		assert.Equal(t, "bizwhiz.db", cfg.Store.Path)
	})

	t.Run("ConfigFile", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
api_key: file-key
store:
  path: /tmp/leads.json
scrape:
  timeout: 5s
`), 0o600))

		v := newViper(t)
		v.SetConfigFile(path)
		require.NoError(t, v.ReadInConfig())

		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, "file-key", cfg.APIKey)
		assert.Equal(t, "/tmp/leads.json", cfg.Store.Path)
		assert.Equal(t, 5*time.Second, cfg.Scrape.Timeout)
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		v := newViper(t)
		v.Set("store.driver", "mongo")

		_, err := Load(v)
		require.Error(t, err)
	})
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("BIZWHIZ_TEST_DOTENV=from-file\n"), 0o600))

	t.Setenv("BIZWHIZ_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("BIZWHIZ_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("BIZWHIZ_TEST_DOTENV"))

	t.Setenv("BIZWHIZ_TEST_DOTENV", "already-set")
	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "already-set", os.Getenv("BIZWHIZ_TEST_DOTENV"))
}
