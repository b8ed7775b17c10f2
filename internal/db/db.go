// Package db provides PostgreSQL persistence for fit score analyses.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping verifies the connection is still alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Migrate creates the analyses table when it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS analyses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			candidate_name TEXT NOT NULL DEFAULT '',
			job_title TEXT NOT NULL,
			job_description TEXT NOT NULL DEFAULT '',
			resume_filename TEXT NOT NULL DEFAULT '',
			skills JSONB NOT NULL DEFAULT '[]',
			score INTEGER NOT NULL,
			fit JSONB NOT NULL,
			candidate_info JSONB NOT NULL DEFAULT '{}',
			remarks TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_analyses_job_title ON analyses (job_title);
		CREATE INDEX IF NOT EXISTS idx_analyses_score ON analyses (score DESC);
		CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses (created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate analyses schema: %w", err)
	}
	return nil
}
