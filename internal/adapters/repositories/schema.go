package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

var schemas = map[Dialect][]string{
	Postgres: {
		`
	CREATE TABLE IF NOT EXISTS predictions (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		model_version TEXT NOT NULL,
		features JSONB NOT NULL,
		minutes DOUBLE PRECISION NOT NULL,
		formatted TEXT NOT NULL
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_predictions_created_at
	ON predictions(created_at DESC);
	`,
		`
	CREATE TABLE IF NOT EXISTS estimate_cache (
		cache_key TEXT PRIMARY KEY,
		minutes DOUBLE PRECISION NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	);
	`,
	},
	SQLite: {
		`
	CREATE TABLE IF NOT EXISTS predictions (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		model_version TEXT NOT NULL,
		features TEXT NOT NULL,
		minutes REAL NOT NULL,
		formatted TEXT NOT NULL
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_predictions_created_at
	ON predictions(created_at);
	`,
		`
	CREATE TABLE IF NOT EXISTS estimate_cache (
		cache_key TEXT PRIMARY KEY,
		minutes REAL NOT NULL,
		expires_at INTEGER NOT NULL
	);
	`,
	},
}

// InitSchema creates the prediction audit and estimate cache tables for the
// given dialect.
func InitSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	statements, ok := schemas[dialect]
	if !ok {
		return fmt.Errorf("init schema: unknown dialect %q", dialect)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
