// Package store persists install receipts in a SQLite database under the
// tool configuration directory. Receipts feed the list command; failing to
// write one never fails an install.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	apperrors "codeassist/internal/errors"
)

const receiptsFileName = "receipts.db"

const schema = `
CREATE TABLE IF NOT EXISTS receipts (
	tool         TEXT PRIMARY KEY,
	version      TEXT NOT NULL,
	source       TEXT NOT NULL,
	installed_at TIMESTAMP NOT NULL
);
`

// Receipt records one successful install.
type Receipt struct {
	Tool        string
	Version     string
	Source      string
	InstalledAt time.Time
}

// Store is a SQLite-backed receipt repository.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the receipt database inside dir and
// bootstraps the schema.
func Open(ctx context.Context, dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.SystemError(apperrors.CodeSystemGeneric,
			"failed to create receipt directory", err).WithField("dir", dir)
	}

	path := filepath.Join(dir, receiptsFileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, apperrors.DatabaseError(apperrors.CodeDatabaseGeneric,
			"failed to open receipt database", err).WithField("path", path)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, apperrors.DatabaseError(apperrors.CodeDatabaseGeneric,
			"failed to bootstrap receipt schema", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record upserts the receipt for a tool. Each tool keeps only its latest
// successful install.
func (s *Store) Record(ctx context.Context, r Receipt) error {
	if r.InstalledAt.IsZero() {
		r.InstalledAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO receipts (tool, version, source, installed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(tool) DO UPDATE SET
			version = excluded.version,
			source = excluded.source,
			installed_at = excluded.installed_at
	`, r.Tool, r.Version, r.Source, r.InstalledAt)
	if err != nil {
		return apperrors.DatabaseError(apperrors.CodeDatabaseGeneric,
			"failed to record install receipt", err).WithField("tool", r.Tool)
	}
	return nil
}

// Remove deletes the receipt for a tool. Removing a missing receipt is not
// an error.
func (s *Store) Remove(ctx context.Context, tool string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM receipts WHERE tool = ?`, tool)
	if err != nil {
		return apperrors.DatabaseError(apperrors.CodeDatabaseGeneric,
			"failed to remove install receipt", err).WithField("tool", tool)
	}
	return nil
}

// Get returns the receipt for a tool, or nil when none exists.
func (s *Store) Get(ctx context.Context, tool string) (*Receipt, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT tool, version, source, installed_at
		FROM receipts WHERE tool = ?
	`, tool)

	var r Receipt
	if err := row.Scan(&r.Tool, &r.Version, &r.Source, &r.InstalledAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, apperrors.DatabaseError(apperrors.CodeDatabaseGeneric,
			"failed to read install receipt", err).WithField("tool", tool)
	}
	return &r, nil
}

// List returns all receipts ordered by tool name.
func (s *Store) List(ctx context.Context) ([]Receipt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tool, version, source, installed_at
		FROM receipts ORDER BY tool
	`)
	if err != nil {
		return nil, apperrors.DatabaseError(apperrors.CodeDatabaseGeneric,
			"failed to list install receipts", err)
	}
	defer rows.Close()

	var receipts []Receipt
	for rows.Next() {
		var r Receipt
		if err := rows.Scan(&r.Tool, &r.Version, &r.Source, &r.InstalledAt); err != nil {
			return nil, apperrors.DatabaseError(apperrors.CodeDatabaseGeneric,
				"failed to scan install receipt", err)
		}
		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.DatabaseError(apperrors.CodeDatabaseGeneric,
			"failed to iterate install receipts", err)
	}

	return receipts, nil
}
