package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		dialect Dialect
		in      string
		want    string
	}{
		{SQLite, "SELECT * FROM t WHERE a = ? AND b = ?", "SELECT * FROM t WHERE a = ? AND b = ?"},
		{Postgres, "SELECT * FROM t WHERE a = ? AND b = ?", "SELECT * FROM t WHERE a = $1 AND b = $2"},
		{Postgres, "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		if got := tt.dialect.Rebind(tt.in); got != tt.want {
			t.Errorf("%s.Rebind(%q) = %q, want %q", tt.dialect, tt.in, got, tt.want)
		}
	}
}

func TestJSONText(t *testing.T) {
	if got := SQLite.JSONText("data", "owner"); got != "json_extract(data, '$.owner')" {
		t.Errorf("unexpected sqlite expression: %q", got)
	}
	if got := Postgres.JSONText("data", "owner"); got != "(data::jsonb ->> 'owner')" {
		t.Errorf("unexpected postgres expression: %q", got)
	}
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	h := NewTestDB(t)

	if err := EnsureSchema(context.Background(), h); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}

	var n int
	err := h.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('documents', 'settings')`).Scan(&n)
	if err != nil {
		t.Fatalf("counting tables: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 tables, got %d", n)
	}
}

func TestOpenPragmasOnEveryConnection(t *testing.T) {
	h, err := Open(filepath.Join(t.TempDir(), "farm.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer h.Close()

	ctx := context.Background()
	// Hold both connections so the pool has to open a second one.
	first, err := h.Conn(ctx)
	if err != nil {
		t.Fatalf("first Conn: %v", err)
	}
	defer first.Close()
	second, err := h.Conn(ctx)
	if err != nil {
		t.Fatalf("second Conn: %v", err)
	}
	defer second.Close()

	for i, c := range []*sql.Conn{first, second} {
		var timeout, foreignKeys int
		if err := c.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout); err != nil {
			t.Fatalf("conn %d: reading busy_timeout: %v", i, err)
		}
		if err := c.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&foreignKeys); err != nil {
			t.Fatalf("conn %d: reading foreign_keys: %v", i, err)
		}
		if timeout != 5000 || foreignKeys != 1 {
			t.Errorf("conn %d: busy_timeout=%d foreign_keys=%d, want 5000 and 1", i, timeout, foreignKeys)
		}
	}
}

func TestSQLiteDSN(t *testing.T) {
	want := "farm.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)"
	if got := sqliteDSN("farm.db"); got != want {
		t.Errorf("sqliteDSN = %q, want %q", got, want)
	}
}
