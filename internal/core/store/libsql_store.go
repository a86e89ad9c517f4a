package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/bizwhiz/bizwhiz/internal/config"
	"github.com/bizwhiz/bizwhiz/internal/core"
)

const driverLibsql = "libsql"

// LibsqlStore keeps the result set in a libsql (SQLite or Turso) database.
type LibsqlStore struct {
	DB *sql.DB
}

// OpenLibsql connects to the database described by cfg and migrates it.
func OpenLibsql(ctx context.Context, cfg config.StoreConfig) (*LibsqlStore, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	dsn, err := buildLibsqlDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverLibsql, dsn)
	if err != nil {
		return nil, fmt.Errorf("open libsql store: %w", err)
	}
	if dsn == ":memory:" {
		// each pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping libsql store: %w", err)
	}

	s := &LibsqlStore{DB: db}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Load returns the saved records ordered by row.
func (s *LibsqlStore) Load(ctx context.Context) ([]core.BusinessRecord, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT name, website, phone, emails, street_address, status
		FROM business_results
		ORDER BY row_index
	`)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	records := []core.BusinessRecord{}
	for rows.Next() {
		var r core.BusinessRecord
		if err := rows.Scan(&r.Name, &r.Website, &r.Phone, &r.Emails, &r.StreetAddress, &r.Status); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	return records, nil
}

// Replace swaps the saved records for records in one transaction.
func (s *LibsqlStore) Replace(ctx context.Context, records []core.BusinessRecord) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM business_results`); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}

	for i, r := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO business_results (row_index, name, website, phone, emails, street_address, status)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, i, r.Name, r.Website, r.Phone, r.Emails, r.StreetAddress, r.Status)
		if err != nil {
			return fmt.Errorf("insert result %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// UpdateStatus changes one row's status.
func (s *LibsqlStore) UpdateStatus(ctx context.Context, row int, status core.Status) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE business_results SET status = ? WHERE row_index = ?`, string(status), row)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrRowNotFound, row)
	}
	return nil
}

// Close releases database resources.
func (s *LibsqlStore) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
