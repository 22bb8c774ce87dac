// Package postgres implements the repository ports on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements the domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	// Cross-references between canisters, types and weighings are plain
	// scalars: readers tolerate dangling references instead of relying on
	// FK enforcement.
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS canister_types (id BIGSERIAL PRIMARY KEY, name TEXT UNIQUE NOT NULL, full_weight INTEGER NOT NULL, empty_weight INTEGER NOT NULL);",
		"CREATE TABLE IF NOT EXISTS canisters (id TEXT PRIMARY KEY, label TEXT NOT NULL, canister_type_id BIGINT NOT NULL, status TEXT NOT NULL CHECK(status IN ('active','depleted')), created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS weighings (id BIGSERIAL PRIMARY KEY, canister_id TEXT NOT NULL, weight INTEGER NOT NULL, comment TEXT, recorded_at TEXT NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_weighings_canister_recorded ON weighings(canister_id, recorded_at DESC, id DESC);",
		"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
