// Package docstore implements a small document collection on top of SQL.
// Documents are JSON objects stored per collection and keyed by generated IDs.
package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/bamboorat/internal/db"
)

// TimeLayout is the fixed-width UTC layout timestamps are stored with, so
// that lexical order in the database equals chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Doc is a stored document.
type Doc struct {
	ID   string
	Data map[string]any
}

// AccessRule decides whether the caller in ctx may touch collection.
// A non-nil error rejects the operation.
type AccessRule func(ctx context.Context, collection string) error

// Observer is notified after every store operation.
type Observer interface {
	ObserveOp(op string, err error)
}

// Store is a SQL-backed document store.
type Store struct {
	h     *db.Handle
	rule  AccessRule
	obs   Observer
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithAccessRule installs a rule checked before every operation.
func WithAccessRule(rule AccessRule) Option {
	return func(s *Store) { s.rule = rule }
}

// WithObserver installs an operation observer.
func WithObserver(obs Observer) Option {
	return func(s *Store) { s.obs = obs }
}

// New returns a store using the given database handle.
func New(h *db.Handle, opts ...Option) *Store {
	s := &Store{
		h:     h,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Timestamp formats t the way the store persists time values.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTimestamp parses a stored timestamp value.
func ParseTimestamp(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, false
		}
	}
	return t, true
}

// Create stores data as a new document and returns its generated ID.
func (s *Store) Create(ctx context.Context, collection string, data map[string]any) (id string, err error) {
	defer func() { s.observe("create", err) }()

	if err := s.check(ctx, collection); err != nil {
		return "", err
	}

	raw, err := encode(data)
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}

	id = s.newID()
	_, err = s.h.ExecContext(ctx,
		s.h.Dialect.Rebind(`INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)`),
		collection, id, string(raw),
	)
	if err != nil {
		return "", fmt.Errorf("%w: inserting into %s: %w", ErrBackendUnavailable, collection, err)
	}
	return id, nil
}

// Get returns the document with the given ID or ErrNotFound.
func (s *Store) Get(ctx context.Context, collection, id string) (doc *Doc, err error) {
	defer func() { s.observe("get", err) }()

	if err := s.check(ctx, collection); err != nil {
		return nil, err
	}

	var raw string
	err = s.h.QueryRowContext(ctx,
		s.h.Dialect.Rebind(`SELECT data FROM documents WHERE collection = ? AND id = ?`),
		collection, id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getting %s/%s: %w", ErrBackendUnavailable, collection, id, err)
	}

	return &Doc{ID: id, Data: decode(raw)}, nil
}

// List returns every document in the collection, ordered by the given field
// descending. Ties are broken by ID descending.
func (s *Store) List(ctx context.Context, collection, orderBy string) (docs []Doc, err error) {
	defer func() { s.observe("list", err) }()

	if err := s.check(ctx, collection); err != nil {
		return nil, err
	}
	if !fieldPattern.MatchString(orderBy) {
		return nil, fmt.Errorf("invalid order field %q", orderBy)
	}

	query := fmt.Sprintf(
		`SELECT id, data FROM documents WHERE collection = ? ORDER BY %s DESC, id DESC`,
		s.h.Dialect.JSONText("data", orderBy),
	)
	return s.query(ctx, collection, query, collection)
}

// Query returns documents whose field equals value, ordered like List.
func (s *Store) Query(ctx context.Context, collection, field, value, orderBy string) (docs []Doc, err error) {
	defer func() { s.observe("query", err) }()

	if err := s.check(ctx, collection); err != nil {
		return nil, err
	}
	if !fieldPattern.MatchString(field) {
		return nil, fmt.Errorf("invalid query field %q", field)
	}
	if !fieldPattern.MatchString(orderBy) {
		return nil, fmt.Errorf("invalid order field %q", orderBy)
	}

	query := fmt.Sprintf(
		`SELECT id, data FROM documents WHERE collection = ? AND %s = ? ORDER BY %s DESC, id DESC`,
		s.h.Dialect.JSONText("data", field),
		s.h.Dialect.JSONText("data", orderBy),
	)
	return s.query(ctx, collection, query, collection, value)
}

// Update merges fields into the stored document. Fields not present are left
// untouched. Returns ErrNotFound when no document has the given ID.
func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) (err error) {
	defer func() { s.observe("update", err) }()

	if err := s.check(ctx, collection); err != nil {
		return err
	}

	tx, err := s.h.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", ErrBackendUnavailable, err)
	}
	defer tx.Rollback()

	sel := `SELECT data FROM documents WHERE collection = ? AND id = ?`
	if s.h.Dialect == db.Postgres {
		sel += " FOR UPDATE"
	}

	var raw string
	err = tx.QueryRowContext(ctx, s.h.Dialect.Rebind(sel), collection, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%w: reading %s/%s: %w", ErrBackendUnavailable, collection, id, err)
	}

	data := decode(raw)
	for k, v := range fields {
		data[k] = v
	}

	merged, err := encode(data)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		s.h.Dialect.Rebind(`UPDATE documents SET data = ? WHERE collection = ? AND id = ?`),
		string(merged), collection, id,
	)
	if err != nil {
		return fmt.Errorf("%w: updating %s/%s: %w", ErrBackendUnavailable, collection, id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing update: %w", ErrBackendUnavailable, err)
	}
	return nil
}

// Delete removes the document with the given ID.
func (s *Store) Delete(ctx context.Context, collection, id string) (err error) {
	defer func() { s.observe("delete", err) }()

	if err := s.check(ctx, collection); err != nil {
		return err
	}

	result, err := s.h.ExecContext(ctx,
		s.h.Dialect.Rebind(`DELETE FROM documents WHERE collection = ? AND id = ?`),
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("%w: deleting %s/%s: %w", ErrBackendUnavailable, collection, id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking delete result: %w", ErrBackendUnavailable, err)
	}
	if n == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return nil
}

func (s *Store) query(ctx context.Context, collection, query string, args ...any) ([]Doc, error) {
	rows, err := s.h.QueryContext(ctx, s.h.Dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s: %w", ErrBackendUnavailable, collection, err)
	}
	defer rows.Close()

	var docs []Doc
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("%w: scanning %s: %w", ErrBackendUnavailable, collection, err)
		}
		docs = append(docs, Doc{ID: id, Data: decode(raw)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating %s: %w", ErrBackendUnavailable, collection, err)
	}
	return docs, nil
}

func (s *Store) check(ctx context.Context, collection string) error {
	if s.rule == nil {
		return nil
	}
	if err := s.rule(ctx, collection); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, collection, err)
	}
	return nil
}

func (s *Store) observe(op string, err error) {
	if s.obs != nil {
		s.obs.ObserveOp(op, err)
	}
}

func encode(data map[string]any) ([]byte, error) {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if t, ok := v.(time.Time); ok {
			v = Timestamp(t)
		}
		out[k] = v
	}
	return json.Marshal(out)
}

// decode parses a stored body. Anything that is not a JSON object decodes
// to an empty document, so a corrupt row stays readable and repairable.
func decode(raw string) map[string]any {
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil || data == nil {
		return map[string]any{}
	}
	return data
}
