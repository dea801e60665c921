// Package store persists the compile log: one durable record per
// compilation attempt, with its diagnostics and emitted configuration.
// Backed by SQLite with WAL mode for concurrent read access.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

const currentSchemaVersion = 1

// Store provides durable storage for compilation records.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist. Idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// Record is one persisted compilation attempt.
type Record struct {
	ID           string `json:"id"`
	DocumentURI  string `json:"document_uri"`
	CreatedAt    int64  `json:"created_at"`
	ErrorCount   int    `json:"error_count"`
	WarningCount int    `json:"warning_count"`
	Config       []byte `json:"-"`
	Diagnostics  string `json:"diagnostics"`
}

// WriteCompilation inserts a compilation record. Duplicate IDs are
// silently ignored so retried writes stay idempotent.
func (s *Store) WriteCompilation(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO compilations
		(id, document_uri, created_at, error_count, warning_count, config, diagnostics)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.DocumentURI,
		rec.CreatedAt,
		rec.ErrorCount,
		rec.WarningCount,
		rec.Config,
		rec.Diagnostics,
	)
	if err != nil {
		return fmt.Errorf("write compilation: %w", err)
	}
	return nil
}

// ListCompilations returns the most recent records, newest first, with
// ID as the deterministic tie-breaker for equal timestamps. A documentURI
// filter may be empty to list every document.
func (s *Store) ListCompilations(ctx context.Context, documentURI string, limit int) ([]Record, error) {
	query := `
		SELECT id, document_uri, created_at, error_count, warning_count, config, diagnostics
		FROM compilations
	`
	args := []any{}
	if documentURI != "" {
		query += " WHERE document_uri = ?"
		args = append(args, documentURI)
	}
	query += " ORDER BY created_at DESC, id COLLATE BINARY ASC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query compilations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.DocumentURI, &rec.CreatedAt,
			&rec.ErrorCount, &rec.WarningCount, &rec.Config, &rec.Diagnostics); err != nil {
			return nil, fmt.Errorf("scan compilation: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate compilations: %w", err)
	}

	if records == nil {
		records = []Record{}
	}
	return records, nil
}
