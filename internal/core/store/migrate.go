package store

import (
	"context"
	"errors"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS business_results (
		row_index INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		website TEXT NOT NULL,
		phone TEXT NOT NULL,
		emails TEXT NOT NULL,
		street_address TEXT NOT NULL,
		status TEXT NOT NULL
	);`,
}

// Migrate ensures the required database tables exist.
func (s *LibsqlStore) Migrate(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	for _, stmt := range schemaStatements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store migration failed: %w", err)
		}
	}

	return nil
}
