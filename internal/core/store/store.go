package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/bizwhiz/bizwhiz/internal/config"
	"github.com/bizwhiz/bizwhiz/internal/core"
)

// ErrRowNotFound is returned when a status update targets a row outside the
// current result set.
var ErrRowNotFound = errors.New("row not found")

// ResultStore persists the ordered result set of the latest search.
type ResultStore interface {
	// Load returns the saved records in order. Missing or unreadable data
	// yields an empty set.
	Load(ctx context.Context) ([]core.BusinessRecord, error)
	// Replace discards the saved records and stores records in their place.
	Replace(ctx context.Context, records []core.BusinessRecord) error
	// UpdateStatus changes the status of the record at row (zero based).
	UpdateStatus(ctx context.Context, row int, status core.Status) error
	Close() error
}

// Open returns the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (ResultStore, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = config.DriverJSON
	}

	switch driver {
	case config.DriverJSON:
		path := strings.TrimSpace(cfg.Path)
		if path == "" {
			path = config.DefaultResultsFile
		}
		if err := ensureStoreDir(path); err != nil {
			return nil, err
		}
		return NewJSONStore(path), nil
	case config.DriverLibsql:
		return OpenLibsql(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", driver)
	}
}

func buildLibsqlDSN(cfg config.StoreConfig) (string, error) {
	if dsn := strings.TrimSpace(cfg.URL); dsn != "" {
		return addAuthToken(dsn, cfg.AuthToken)
	}

	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return "", errors.New("store path or url is required")
	}

	if path == ":memory:" {
		return path, nil
	}

	if strings.HasPrefix(path, "file:") {
		localPath, err := extractFilePath(path)
		if err != nil {
			return "", err
		}
		if err := ensureStoreDir(localPath); err != nil {
			return "", err
		}
		return path, nil
	}

	if strings.HasPrefix(path, "libsql:") {
		return path, nil
	}

	if err := ensureStoreDir(path); err != nil {
		return "", err
	}
	return "file:" + filepath.Clean(path), nil
}

func addAuthToken(dsn string, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return dsn, nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid store url: %w", err)
	}

	query := parsed.Query()
	if query.Get("authToken") == "" {
		query.Set("authToken", token)
		parsed.RawQuery = query.Encode()
	}

	return parsed.String(), nil
}

func extractFilePath(dsn string) (string, error) {
	parsed, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid store path: %w", err)
	}

	if parsed.Path != "" {
		return strings.TrimPrefix(parsed.Path, "//"), nil
	}

	return strings.TrimPrefix(parsed.Opaque, "//"), nil
}

func ensureStoreDir(path string) error {
	if strings.TrimSpace(path) == "" || path == ":memory:" {
		return nil
	}

	dir := filepath.Dir(filepath.Clean(path))
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}

	// #nosec G301 -- data directories use 0755 for multi-user access compatibility
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	return nil
}

// nonNil keeps an empty result set encoding as [] rather than null.
func nonNil(records []core.BusinessRecord) []core.BusinessRecord {
	if records == nil {
		return []core.BusinessRecord{}
	}
	return records
}
