package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erazemk/bamboorat/internal/db"
	"github.com/erazemk/bamboorat/internal/docstore"
	"github.com/erazemk/bamboorat/internal/model"
)

// testClock returns a clock advancing one minute per call.
func testClock() func() time.Time {
	t := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func newTestRepository(t *testing.T) (*Repository, *docstore.Store) {
	t.Helper()
	docs := docstore.New(db.NewTestDB(t))
	return NewRepository(docs, testClock()), docs
}

func TestCreateAndGetRecord(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, model.Draft{
		Name:           "Ruby",
		Status:         model.StatusPregnant,
		Owner:          model.OwnerTay,
		BirthDate:      "10/03/2024",
		SeparationDate: "01/04/2024",
		EstrusDate:     "15/04/2024",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	rec, err := repo.GetOne(ctx, id)
	if err != nil {
		t.Fatalf("GetOne: %v", err)
	}
	if rec == nil {
		t.Fatal("expected record")
	}
	if rec.ID != id || rec.Name != "Ruby" || rec.Status != model.StatusPregnant || rec.Owner != model.OwnerTay {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.BirthDate != "10/03/2024" || rec.SeparationDate != "01/04/2024" || rec.EstrusDate != "15/04/2024" {
		t.Errorf("unexpected dates: %+v", rec)
	}
	if rec.CreatedAt.IsZero() || !rec.CreatedAt.Equal(rec.UpdatedAt) {
		t.Errorf("expected createdAt == updatedAt, got %v and %v", rec.CreatedAt, rec.UpdatedAt)
	}
}

func TestStorageFieldNames(t *testing.T) {
	repo, docs := newTestRepository(t)
	ctx := context.Background()

	id, _ := repo.Create(ctx, model.Draft{Name: "Ruby", SeparationDate: "01/04/2024", EstrusDate: "15/04/2024"})

	doc, err := docs.Get(ctx, Collection, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc.Data["separation_date"] != "01/04/2024" {
		t.Errorf("expected separation_date field, got %v", doc.Data)
	}
	if doc.Data["estrus_date"] != "15/04/2024" {
		t.Errorf("expected estrus_date field, got %v", doc.Data)
	}
}

func TestGetOneMissing(t *testing.T) {
	repo, _ := newTestRepository(t)

	rec, err := repo.GetOne(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil record, got %+v", rec)
	}
}

func TestListAllNewestFirst(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		if _, err := repo.Create(ctx, model.Draft{Name: name}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	records, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []string{"C", "B", "A"} {
		if records[i].Name != want {
			t.Errorf("position %d: expected %s, got %s", i, want, records[i].Name)
		}
		if records[i].ID == "" {
			t.Errorf("position %d: expected id", i)
		}
	}
}

func TestListByOwnerAndStatus(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	repo.Create(ctx, model.Draft{Name: "A", Owner: model.OwnerTay, Status: model.StatusMixing})
	repo.Create(ctx, model.Draft{Name: "B", Owner: model.OwnerTer, Status: model.StatusMixing})
	repo.Create(ctx, model.Draft{Name: "C", Owner: model.OwnerTay, Status: model.StatusNursing})

	tay, err := repo.ListByOwner(ctx, model.OwnerTay)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(tay) != 2 || tay[0].Name != "C" || tay[1].Name != "A" {
		t.Errorf("unexpected owner result: %+v", tay)
	}

	mixing, err := repo.ListByStatus(ctx, model.StatusMixing)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(mixing) != 2 || mixing[0].Name != "B" || mixing[1].Name != "A" {
		t.Errorf("unexpected status result: %+v", mixing)
	}
}

func TestUpdatePartial(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	id, _ := repo.Create(ctx, model.Draft{Name: "Ruby", Owner: model.OwnerTay, BirthDate: "10/03/2024"})
	before, _ := repo.GetOne(ctx, id)

	status := model.StatusNursing
	if err := repo.Update(ctx, id, model.Fields{Status: &status}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	after, _ := repo.GetOne(ctx, id)
	if after.Status != model.StatusNursing {
		t.Errorf("expected status nursing, got %q", after.Status)
	}
	if after.Name != "Ruby" || after.Owner != model.OwnerTay || after.BirthDate != "10/03/2024" {
		t.Errorf("expected untouched fields, got %+v", after)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("expected updatedAt to advance: %v -> %v", before.UpdatedAt, after.UpdatedAt)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("expected createdAt unchanged: %v -> %v", before.CreatedAt, after.CreatedAt)
	}
	if after.CreatedAt.After(after.UpdatedAt) {
		t.Error("expected createdAt <= updatedAt")
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	repo, _ := newTestRepository(t)

	name := "x"
	err := repo.Update(context.Background(), "ghost", model.Fields{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRecord(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	id, _ := repo.Create(ctx, model.Draft{Name: "Ruby"})
	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	rec, _ := repo.GetOne(ctx, id)
	if rec != nil {
		t.Error("expected record to be gone")
	}
	if err := repo.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOutOfSetValuesRoundTrip(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	id, _ := repo.Create(ctx, model.Draft{Name: "Odd", Status: "hibernating", Owner: "Som"})
	rec, _ := repo.GetOne(ctx, id)
	if rec.Status != "hibernating" || rec.Owner != "Som" {
		t.Errorf("expected out-of-set values preserved, got %+v", rec)
	}
}

func TestDecodeRecordMalformed(t *testing.T) {
	rec := DecodeRecord("x1", map[string]any{
		"name":      42.0,
		"status":    nil,
		"owner":     []any{"Tay"},
		"createdAt": "not a time",
	})

	if rec.ID != "x1" {
		t.Errorf("expected id x1, got %q", rec.ID)
	}
	if rec.Name != "" || rec.Status != "" || rec.Owner != "" {
		t.Errorf("expected malformed fields to decode empty, got %+v", rec)
	}
	if !rec.CreatedAt.IsZero() || !rec.UpdatedAt.IsZero() {
		t.Errorf("expected zero timestamps, got %v %v", rec.CreatedAt, rec.UpdatedAt)
	}
}

func TestNonObjectDocument(t *testing.T) {
	h := db.NewTestDB(t)
	repo := NewRepository(docstore.New(h), testClock())
	ctx := context.Background()

	_, err := h.Exec(`INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)`, Collection, "bad", `["not an object"]`)
	if err != nil {
		t.Fatalf("inserting document: %v", err)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 || all[0].ID != "bad" {
		t.Fatalf("expected the bad document listed, got %+v", all)
	}

	rec, err := repo.GetOne(ctx, "bad")
	if err != nil {
		t.Fatalf("GetOne: %v", err)
	}
	if rec == nil || rec.Name != "" {
		t.Fatalf("expected an empty record, got %+v", rec)
	}

	name := "Ruby"
	if err := repo.Update(ctx, "bad", model.Fields{Name: &name}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	rec, _ = repo.GetOne(ctx, "bad")
	if rec == nil || rec.Name != "Ruby" {
		t.Errorf("expected repaired record, got %+v", rec)
	}
}

func TestPermissionDeniedPropagates(t *testing.T) {
	docs := docstore.New(db.NewTestDB(t), docstore.WithAccessRule(func(context.Context, string) error {
		return errors.New("anonymous identity required")
	}))
	repo := NewRepository(docs, nil)

	_, err := repo.ListAll(context.Background())
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
	_, err = repo.GetOne(context.Background(), "x")
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied from GetOne, got %v", err)
	}
}
