package db

import (
	"context"
	"fmt"
)

// schema holds the statements creating the full database schema. Statements
// are executed one at a time so the same list works on SQLite and Postgres.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS documents (
    collection TEXT NOT NULL,
    id         TEXT NOT NULL,
    data       TEXT NOT NULL,
    PRIMARY KEY (collection, id)
)`,
	`CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`,
}

// EnsureSchema creates all tables if they don't already exist.
func EnsureSchema(ctx context.Context, h *Handle) error {
	for i, stmt := range schema {
		if _, err := h.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema (statement %d): %w", i+1, err)
		}
	}
	return nil
}
