// Package form implements the add and edit record forms.
package form

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/erazemk/bamboorat/internal/calendar"
	"github.com/erazemk/bamboorat/internal/datefield"
	"github.com/erazemk/bamboorat/internal/model"
)

var (
	// ErrValidation is returned when a form is submitted with an empty name.
	ErrValidation = errors.New("name is required")

	// ErrNoDeleteRequested is returned by ConfirmDelete without a prior
	// RequestDelete.
	ErrNoDeleteRequested = errors.New("delete was not requested")
)

// Creator stores new records.
type Creator interface {
	Create(ctx context.Context, d model.Draft) (string, error)
}

// Updater applies partial updates.
type Updater interface {
	Update(ctx context.Context, id string, f model.Fields) error
}

// Deleter removes records.
type Deleter interface {
	Delete(ctx context.Context, id string) error
}

// Editor is the draft state shared by both forms, including the date picker.
type Editor struct {
	Draft  model.Draft
	Picker calendar.Picker
}

// SetDate stores raw in a date field after applying the typing rules.
func (e *Editor) SetDate(f model.DateField, raw string) {
	e.Draft.Set(f, datefield.Normalize(e.Draft.Get(f), raw))
}

// FillDate stores a submitted or pasted value in a date field. Overlong
// input is cut to a full date instead of being dropped.
func (e *Editor) FillDate(f model.DateField, raw string) {
	e.Draft.Set(f, datefield.Format(raw))
}

// DateValid reports whether a date field holds a real DD/MM/YYYY date.
func (e *Editor) DateValid(f model.DateField) bool {
	return datefield.IsValid(e.Draft.Get(f))
}

// Pick forwards a picker event. A selection is written to the field that
// opened the picker.
func (e *Editor) Pick(msg calendar.Msg, today time.Time) {
	p, sel := e.Picker.Update(msg, today)
	e.Picker = p
	if sel != nil {
		e.Draft.Set(sel.Field, sel.Value)
	}
}

// OpenPicker opens the picker for a field, starting at that field's month.
func (e *Editor) OpenPicker(f model.DateField, today time.Time) {
	e.Pick(calendar.OpenMsg{Field: f, Current: e.Draft.Get(f)}, today)
}

// CanSubmit reports whether the name is non-blank.
func (e *Editor) CanSubmit() bool {
	return strings.TrimSpace(e.Draft.Name) != ""
}

func (e *Editor) payload() model.Draft {
	d := e.Draft
	d.Name = strings.TrimSpace(d.Name)
	return d
}

// AddForm creates new records.
type AddForm struct {
	Editor
}

// NewAddForm returns an empty add form.
func NewAddForm() *AddForm {
	return &AddForm{}
}

// Submit sends the trimmed draft to c and clears the form on success.
func (f *AddForm) Submit(ctx context.Context, c Creator) (string, error) {
	if !f.CanSubmit() {
		return "", ErrValidation
	}

	id, err := c.Create(ctx, f.payload())
	if err != nil {
		return "", err
	}

	f.Editor = Editor{}
	return id, nil
}

// EditForm edits an existing record.
type EditForm struct {
	Editor
	ID string

	open       bool
	confirming bool
}

// OpenEdit seeds an edit form from rec. An empty birth date defaults to today.
func OpenEdit(rec model.Record, today time.Time) *EditForm {
	f := &EditForm{
		Editor: Editor{Draft: rec.Draft()},
		ID:     rec.ID,
		open:   true,
	}
	if f.Draft.BirthDate == "" {
		f.Draft.BirthDate = datefield.Today(today)
	}
	return f
}

// IsOpen reports whether the form is still shown.
func (f *EditForm) IsOpen() bool {
	return f.open
}

// Confirming reports whether a delete is awaiting confirmation.
func (f *EditForm) Confirming() bool {
	return f.confirming
}

// Submit sends every editable field with the record's ID to u and closes the
// form on success.
func (f *EditForm) Submit(ctx context.Context, u Updater) error {
	if !f.CanSubmit() {
		return ErrValidation
	}

	if err := u.Update(ctx, f.ID, model.AllFields(f.payload())); err != nil {
		return err
	}

	f.open = false
	return nil
}

// RequestDelete asks for confirmation. Nothing is deleted yet.
func (f *EditForm) RequestDelete() {
	f.confirming = true
}

// CancelDelete dismisses the confirmation.
func (f *EditForm) CancelDelete() {
	f.confirming = false
}

// ConfirmDelete deletes the record through d. The form closes whether or not
// the delete succeeds; the delete error is returned.
func (f *EditForm) ConfirmDelete(ctx context.Context, d Deleter) error {
	if !f.confirming {
		return ErrNoDeleteRequested
	}

	err := d.Delete(ctx, f.ID)
	f.confirming = false
	f.open = false
	return err
}
