package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/bamboorat/internal/datefield"
	"github.com/erazemk/bamboorat/internal/listview"
	"github.com/erazemk/bamboorat/internal/model"
)

// RecordStore is the record repository behind the API.
type RecordStore interface {
	ListAll(ctx context.Context) ([]model.Record, error)
	ListByOwner(ctx context.Context, owner string) ([]model.Record, error)
	ListByStatus(ctx context.Context, status string) ([]model.Record, error)
	GetOne(ctx context.Context, id string) (*model.Record, error)
	Create(ctx context.Context, d model.Draft) (string, error)
	Update(ctx context.Context, id string, f model.Fields) error
	Delete(ctx context.Context, id string) error
}

// RecordsHandler handles record CRUD endpoints.
type RecordsHandler struct {
	Records RecordStore
}

// List handles GET /api/records. The owner or status filter is pushed down
// to the store; the remaining predicates run in memory.
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := listview.Filter{
		Search: strings.TrimSpace(q.Get("q")),
		Owner:  q.Get("owner"),
		Status: q.Get("status"),
	}

	var (
		records []model.Record
		err     error
	)
	switch {
	case filter.Owner != "" && filter.Owner != listview.OwnerAll:
		records, err = h.Records.ListByOwner(r.Context(), filter.Owner)
	case filter.Status != "" && filter.Status != listview.StatusAny:
		records, err = h.Records.ListByStatus(r.Context(), filter.Status)
	default:
		records, err = h.Records.ListAll(r.Context())
	}
	if err != nil {
		storeError(w, "failed to list records", err)
		return
	}

	jsonResponse(w, http.StatusOK, listview.Apply(records, filter))
}

// Create handles POST /api/records.
func (h *RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var d model.Draft
	if err := decodeJSON(r, &d); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}
	for _, f := range model.DateFields() {
		d.Set(f, datefield.Format(d.Get(f)))
	}

	id, err := h.Records.Create(r.Context(), d)
	if err != nil {
		storeError(w, "failed to create record", err)
		return
	}
	slog.Info("record created", "id", id, "name", d.Name)

	h.respondRecord(w, r, http.StatusCreated, id)
}

// Get handles GET /api/records/{id}.
func (h *RecordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respondRecord(w, r, http.StatusOK, chi.URLParam(r, "id"))
}

// Update handles PATCH /api/records/{id}. Only the fields present in the
// body are written.
func (h *RecordsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var f model.Fields
	if err := decodeJSON(r, &f); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if f.Name != nil {
		name := strings.TrimSpace(*f.Name)
		if name == "" {
			jsonError(w, http.StatusBadRequest, "name required")
			return
		}
		f.Name = &name
	}
	for _, p := range []*string{f.BreedingDate, f.BirthDate, f.SeparationDate, f.EstrusDate} {
		if p != nil {
			*p = datefield.Format(*p)
		}
	}

	if err := h.Records.Update(r.Context(), id, f); err != nil {
		storeError(w, "failed to update record", err)
		return
	}
	slog.Info("record updated", "id", id)

	h.respondRecord(w, r, http.StatusOK, id)
}

// Delete handles DELETE /api/records/{id}.
func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Records.Delete(r.Context(), id); err != nil {
		storeError(w, "failed to delete record", err)
		return
	}
	slog.Info("record deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *RecordsHandler) respondRecord(w http.ResponseWriter, r *http.Request, status int, id string) {
	rec, err := h.Records.GetOne(r.Context(), id)
	if err != nil {
		storeError(w, "failed to get record", err)
		return
	}
	if rec == nil {
		jsonError(w, http.StatusNotFound, "record not found")
		return
	}
	jsonResponse(w, status, rec)
}
