// Package store provides typed access to bamboo rat records kept in the
// document store.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erazemk/bamboorat/internal/docstore"
	"github.com/erazemk/bamboorat/internal/model"
)

// Collection is the document collection holding records.
const Collection = "bamboo_rat_records"

// Document field names as stored.
const (
	fieldName           = "name"
	fieldStatus         = "status"
	fieldOwner          = "owner"
	fieldBreedingDate   = "breedingDate"
	fieldBirthDate      = "birthDate"
	fieldSeparationDate = "separation_date"
	fieldEstrusDate     = "estrus_date"
	fieldCreatedAt      = "createdAt"
	fieldUpdatedAt      = "updatedAt"
)

// Errors surfaced by the repository.
var (
	ErrBackendUnavailable = docstore.ErrBackendUnavailable
	ErrPermissionDenied   = docstore.ErrPermissionDenied
	ErrNotFound           = docstore.ErrNotFound
)

// Documents is the document store the repository persists through.
type Documents interface {
	Create(ctx context.Context, collection string, data map[string]any) (string, error)
	Get(ctx context.Context, collection, id string) (*docstore.Doc, error)
	List(ctx context.Context, collection, orderBy string) ([]docstore.Doc, error)
	Query(ctx context.Context, collection, field, value, orderBy string) ([]docstore.Doc, error)
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

// Repository reads and writes records.
type Repository struct {
	docs Documents
	now  func() time.Time
}

// NewRepository returns a repository over docs. A nil clock uses time.Now.
func NewRepository(docs Documents, now func() time.Time) *Repository {
	if now == nil {
		now = time.Now
	}
	return &Repository{docs: docs, now: now}
}

// ListAll returns every record, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]model.Record, error) {
	docs, err := r.docs.List(ctx, Collection, fieldCreatedAt)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	return decodeAll(docs), nil
}

// ListByOwner returns the records of one owner, newest first.
func (r *Repository) ListByOwner(ctx context.Context, owner string) ([]model.Record, error) {
	docs, err := r.docs.Query(ctx, Collection, fieldOwner, owner, fieldCreatedAt)
	if err != nil {
		return nil, fmt.Errorf("listing records by owner: %w", err)
	}
	return decodeAll(docs), nil
}

// ListByStatus returns the records with one status, newest first.
func (r *Repository) ListByStatus(ctx context.Context, status string) ([]model.Record, error) {
	docs, err := r.docs.Query(ctx, Collection, fieldStatus, status, fieldCreatedAt)
	if err != nil {
		return nil, fmt.Errorf("listing records by status: %w", err)
	}
	return decodeAll(docs), nil
}

// GetOne returns the record with the given ID, or nil if it does not exist.
func (r *Repository) GetOne(ctx context.Context, id string) (*model.Record, error) {
	doc, err := r.docs.Get(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting record: %w", err)
	}
	rec := DecodeRecord(doc.ID, doc.Data)
	return &rec, nil
}

// Create stores a new record and returns its ID.
func (r *Repository) Create(ctx context.Context, d model.Draft) (string, error) {
	now := r.now()
	data := map[string]any{
		fieldName:           d.Name,
		fieldStatus:         d.Status,
		fieldOwner:          d.Owner,
		fieldBreedingDate:   d.BreedingDate,
		fieldBirthDate:      d.BirthDate,
		fieldSeparationDate: d.SeparationDate,
		fieldEstrusDate:     d.EstrusDate,
		fieldCreatedAt:      now,
		fieldUpdatedAt:      now,
	}

	id, err := r.docs.Create(ctx, Collection, data)
	if err != nil {
		return "", fmt.Errorf("creating record: %w", err)
	}
	return id, nil
}

// Update applies the set fields to the record and refreshes updatedAt.
func (r *Repository) Update(ctx context.Context, id string, f model.Fields) error {
	data := map[string]any{fieldUpdatedAt: r.now()}
	set := func(key string, v *string) {
		if v != nil {
			data[key] = *v
		}
	}
	set(fieldName, f.Name)
	set(fieldStatus, f.Status)
	set(fieldOwner, f.Owner)
	set(fieldBreedingDate, f.BreedingDate)
	set(fieldBirthDate, f.BirthDate)
	set(fieldSeparationDate, f.SeparationDate)
	set(fieldEstrusDate, f.EstrusDate)

	if err := r.docs.Update(ctx, Collection, id, data); err != nil {
		return fmt.Errorf("updating record: %w", err)
	}
	return nil
}

// Delete removes the record permanently.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.docs.Delete(ctx, Collection, id); err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	return nil
}

// DecodeRecord converts a stored document into a Record. Missing or
// non-string fields become empty strings and missing timestamps the zero time.
func DecodeRecord(id string, data map[string]any) model.Record {
	str := func(key string) string {
		s, _ := data[key].(string)
		return s
	}
	created, _ := docstore.ParseTimestamp(data[fieldCreatedAt])
	updated, _ := docstore.ParseTimestamp(data[fieldUpdatedAt])

	return model.Record{
		ID:             id,
		Name:           str(fieldName),
		Status:         str(fieldStatus),
		Owner:          str(fieldOwner),
		BreedingDate:   str(fieldBreedingDate),
		BirthDate:      str(fieldBirthDate),
		SeparationDate: str(fieldSeparationDate),
		EstrusDate:     str(fieldEstrusDate),
		CreatedAt:      created,
		UpdatedAt:      updated,
	}
}

func decodeAll(docs []docstore.Doc) []model.Record {
	records := make([]model.Record, 0, len(docs))
	for _, d := range docs {
		records = append(records, DecodeRecord(d.ID, d.Data))
	}
	return records
}
