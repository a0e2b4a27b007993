package db

import (
	"context"
	"testing"
)

// NewTestDB creates a fresh in-memory SQLite database with the schema applied.
func NewTestDB(t *testing.T) *Handle {
	t.Helper()

	h, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := EnsureSchema(context.Background(), h); err != nil {
		h.Close()
		t.Fatalf("creating test database schema: %v", err)
	}

	t.Cleanup(func() { h.Close() })

	return h
}
