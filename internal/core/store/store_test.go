package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bizwhiz/bizwhiz/internal/config"
	"github.com/bizwhiz/bizwhiz/internal/core"
)

func TestBuildLibsqlDSN(t *testing.T) {
	t.Run("URLUsesRawValue", func(t *testing.T) {
		cfg := config.StoreConfig{
			URL:       "libsql://example.turso.io",
			AuthToken: "token123",
		}

		dsn, err := buildLibsqlDSN(cfg)
		require.NoError(t, err)
		require.Equal(t, "libsql://example.turso.io?authToken=token123", dsn)
	})

	t.Run("URLWithExistingQuery", func(t *testing.T) {
		cfg := config.StoreConfig{
			URL:       "libsql://example.turso.io?foo=bar",
			AuthToken: "token123",
		}

		dsn, err := buildLibsqlDSN(cfg)
		require.NoError(t, err)
		require.Equal(t, "libsql://example.turso.io?authToken=token123&foo=bar", dsn)
	})

	t.Run("PathWithFilePrefix", func(t *testing.T) {
		cfg := config.StoreConfig{Path: "file:./bizwhiz.db"}

		dsn, err := buildLibsqlDSN(cfg)
		require.NoError(t, err)
		require.Equal(t, "file:./bizwhiz.db", dsn)
	})

	t.Run("PathMissing", func(t *testing.T) {
		_, err := buildLibsqlDSN(config.StoreConfig{})
		require.Error(t, err)
	})

	t.Run("MemoryPath", func(t *testing.T) {
		dsn, err := buildLibsqlDSN(config.StoreConfig{Path: ":memory:"})
		require.NoError(t, err)
		require.Equal(t, ":memory:", dsn)
	})
}

func sampleRecords() []core.BusinessRecord {
	return []core.BusinessRecord{
		{
			Name:          "Joe's Diner",
			Website:       "https://joes.example",
			Phone:         "(555) 010-2000",
			Emails:        "hello@joes.example, owner@joes.example",
			StreetAddress: "1 Main St, Springfield",
			Status:        string(core.StatusNotContacted),
		},
		{
			Name:          "Corner Cafe",
			Website:       core.WebsiteNotAvailable,
			Phone:         core.PhoneNotAvailable,
			Emails:        "",
			StreetAddress: core.AddressNotAvailable,
			Status:        "Legacy Label",
		},
	}
}

func TestJSONStoreMissingFileLoadsEmpty(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "businesses_results.json"))

	records, err := s.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, records)
	require.Empty(t, records)
}

func TestJSONStoreMalformedFileLoadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "businesses_results.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"`), 0o600))

	var corrupt []string
	s := NewJSONStore(path)
	s.OnCorrupt = func(p string, err error) {
		require.Error(t, err)
		corrupt = append(corrupt, p)
	}

	records, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
	require.Equal(t, []string{path}, corrupt)
}

func TestJSONStoreRoundTripIsByteIdentical(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "businesses_results.json")
	s := NewJSONStore(path)

	require.NoError(t, s.Replace(ctx, sampleRecords()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, sampleRecords(), loaded)

	require.NoError(t, s.Replace(ctx, loaded))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(first), string(second))
}

func TestJSONStoreUsesOriginalKeys(t *testing.T) {
	data, err := Encode(sampleRecords()[:1])
	require.NoError(t, err)

	for _, key := range []string{`"Name"`, `"Website"`, `"Phone"`, `"Emails"`, `"Street Address"`, `"Status"`} {
		require.Contains(t, string(data), key)
	}
}

func TestEncodeEmptyIsArray(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	require.Equal(t, "[]\n", string(data))
}

func TestJSONStoreReplaceDiscardsPrevious(t *testing.T) {
	ctx := context.Background()
	s := NewJSONStore(filepath.Join(t.TempDir(), "results.json"))

	require.NoError(t, s.Replace(ctx, sampleRecords()))
	require.NoError(t, s.Replace(ctx, sampleRecords()[1:]))

	records, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Corner Cafe", records[0].Name)
}

func TestJSONStoreUpdateStatus(t *testing.T) {
	ctx := context.Background()
	s := NewJSONStore(filepath.Join(t.TempDir(), "results.json"))
	require.NoError(t, s.Replace(ctx, sampleRecords()))

	require.NoError(t, s.UpdateStatus(ctx, 1, core.StatusSignedUp))

	records, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, string(core.StatusNotContacted), records[0].Status)
	require.Equal(t, string(core.StatusSignedUp), records[1].Status)
}

func TestJSONStoreUpdateStatusOutOfRange(t *testing.T) {
	ctx := context.Background()
	s := NewJSONStore(filepath.Join(t.TempDir(), "results.json"))
	require.NoError(t, s.Replace(ctx, sampleRecords()))

	require.ErrorIs(t, s.UpdateStatus(ctx, 2, core.StatusContacted), ErrRowNotFound)
	require.ErrorIs(t, s.UpdateStatus(ctx, -1, core.StatusContacted), ErrRowNotFound)
}

func TestOpenDefaultsToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.json")

	rs, err := Open(context.Background(), config.StoreConfig{Path: path})
	require.NoError(t, err)
	defer rs.Close() // nolint:errcheck // test cleanup

	js, ok := rs.(*JSONStore)
	require.True(t, ok)
	require.Equal(t, path, js.Path())

	_, err = os.Stat(filepath.Dir(path))
	require.NoError(t, err)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "postgres"})
	require.Error(t, err)
}
