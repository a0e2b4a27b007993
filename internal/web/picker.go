package web

import (
	"net/http"
	"strconv"

	"github.com/erazemk/bamboorat/internal/calendar"
	"github.com/erazemk/bamboorat/internal/form"
	"github.com/erazemk/bamboorat/internal/model"
)

// Picker query parameters. The picker is driven by GET submissions of the
// record form, so the draft travels with every picker step.
const (
	paramOpen   = "open"
	paramTarget = "target"
	paramMonth  = "month"
	paramNav    = "nav"
	paramSelect = "select"
	paramClose  = "close"
)

type dateFieldView struct {
	ID    model.DateField
	Label string
	Value string
	Valid bool
}

type pickerView struct {
	Target      model.DateField
	TargetLabel string
	Month       calendar.Month
	Weeks       [][]calendar.Cell
}

type formView struct {
	PageData
	IsNew        bool
	Record       *model.Record
	Action       string
	PickerAction string
	Draft        model.Draft
	Dates        []dateFieldView
	Statuses     []string
	Owners       []string
	Picker       *pickerView
}

// NewRecordPicker handles GET /records/new/picker.
func (s *Server) NewRecordPicker(w http.ResponseWriter, r *http.Request) {
	f := form.NewAddForm()
	readDraft(r, &f.Editor)
	applyPicker(r, &f.Editor, s)
	s.renderForm(w, r, http.StatusOK, &f.Editor, nil)
}

// EditRecordPicker handles GET /records/{id}/picker.
func (s *Server) EditRecordPicker(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}

	f := form.OpenEdit(*rec, s.Now())
	readDraft(r, &f.Editor)
	applyPicker(r, &f.Editor, s)
	s.renderForm(w, r, http.StatusOK, &f.Editor, rec)
}

// applyPicker restores the picker state carried in the request and applies
// the requested step to it.
func applyPicker(r *http.Request, e *form.Editor, s *Server) {
	today := s.Now()
	q := r.Form

	if open := model.DateField(q.Get(paramOpen)); open != "" {
		if open.Valid() {
			e.OpenPicker(open, today)
		}
		return
	}

	target := model.DateField(q.Get(paramTarget))
	if !target.Valid() {
		return
	}
	ref, ok := calendar.ParseMonth(q.Get(paramMonth))
	if !ok {
		ref = calendar.MonthOf(today)
	}
	e.Picker = calendar.Picker{Target: target, Ref: ref, Open: true}

	switch {
	case q.Get(paramSelect) != "":
		e.Pick(calendar.SelectMsg{DateString: q.Get(paramSelect)}, today)
	case q.Get(paramNav) != "":
		if n, err := strconv.Atoi(q.Get(paramNav)); err == nil {
			e.Pick(calendar.NavigateMsg{Delta: n}, today)
		}
	case q.Has(paramClose):
		e.Pick(calendar.CloseMsg{}, today)
	}
}

// renderForm renders the add form (rec == nil) or the edit form.
func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, e *form.Editor, rec *model.Record) {
	v := &formView{
		IsNew:        rec == nil,
		Record:       rec,
		Action:       "/records",
		PickerAction: "/records/new/picker",
		Draft:        e.Draft,
		Statuses:     model.Statuses(),
		Owners:       model.Owners(),
	}
	title := titleNew
	if rec != nil {
		title = titleEdit
		v.Action = "/records/" + rec.ID
		v.PickerAction = "/records/" + rec.ID + "/picker"
	}

	for _, f := range model.DateFields() {
		v.Dates = append(v.Dates, dateFieldView{
			ID:    f,
			Label: model.FieldLabel(f),
			Value: e.Draft.Get(f),
			Valid: e.DateValid(f),
		})
	}

	if e.Picker.Open {
		v.Picker = &pickerView{
			Target:      e.Picker.Target,
			TargetLabel: model.FieldLabel(e.Picker.Target),
			Month:       e.Picker.Ref,
			Weeks:       e.Picker.Grid(s.Now()).Weeks(),
		}
	}

	v.PageData = s.page(r, title)
	s.Templates.RenderStatus(w, status, "form.html", v)
}
