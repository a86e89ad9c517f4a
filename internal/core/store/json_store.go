package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bizwhiz/bizwhiz/internal/core"
)

// JSONStore keeps the result set as a single JSON array on disk.
type JSONStore struct {
	path string
	mu   sync.Mutex

	// OnCorrupt receives decode failures that Load treats as an empty set.
	OnCorrupt func(path string, err error)
}

// NewJSONStore returns a store backed by the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the result set. A missing file or malformed content yields an
// empty set without error. Other read failures are returned.
func (s *JSONStore) Load(ctx context.Context) ([]core.BusinessRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *JSONStore) load() ([]core.BusinessRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []core.BusinessRecord{}, nil
		}
		return nil, fmt.Errorf("read results: %w", err)
	}

	var records []core.BusinessRecord
	if err := json.Unmarshal(data, &records); err != nil {
		if s.OnCorrupt != nil {
			s.OnCorrupt(s.path, err)
		}
		return []core.BusinessRecord{}, nil
	}

	return nonNil(records), nil
}

// Replace overwrites the file with records.
func (s *JSONStore) Replace(ctx context.Context, records []core.BusinessRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(records)
}

// UpdateStatus rewrites the file with one row's status changed.
func (s *JSONStore) UpdateStatus(ctx context.Context, row int, status core.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	if row < 0 || row >= len(records) {
		return fmt.Errorf("%w: %d", ErrRowNotFound, row)
	}

	records[row].Status = string(status)
	return s.write(records)
}

// Close is a no-op; the file is not held open between calls.
func (s *JSONStore) Close() error {
	return nil
}

// Encode renders records exactly as Replace writes them.
func Encode(records []core.BusinessRecord) ([]byte, error) {
	data, err := json.MarshalIndent(nonNil(records), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode results: %w", err)
	}
	return append(data, '\n'), nil
}

func (s *JSONStore) write(records []core.BusinessRecord) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write results: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write results: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
