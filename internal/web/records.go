package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/bamboorat/internal/docstore"
	"github.com/erazemk/bamboorat/internal/form"
	"github.com/erazemk/bamboorat/internal/listview"
	"github.com/erazemk/bamboorat/internal/model"
	"github.com/erazemk/bamboorat/internal/notice"
)

// Page titles and messages.
const (
	titleList   = "ບັນທຶກໜູອ້ນ"
	titleNew    = "ເພີ່ມຂໍ້ມູນ"
	titleEdit   = "ແກ້ໄຂຂໍ້ມູນ"
	titleDelete = "ລຶບຂໍ້ມູນ"

	msgCreated = "ເພີ່ມຂໍ້ມູນແລ້ວ"
	msgUpdated = "ບັນທຶກການແກ້ໄຂແລ້ວ"
	msgDeleted = "ລຶບຂໍ້ມູນແລ້ວ"
)

// ListPage handles GET /.
func (s *Server) ListPage(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	if err := sess.List.Reload(r.Context(), s.Records); err != nil {
		slog.Error("failed to load records", "error", err)
		sess.Notices.Error(err)
	}

	q := r.URL.Query()
	filter := listview.Filter{
		Search: strings.TrimSpace(q.Get("q")),
		Owner:  q.Get("owner"),
		Status: q.Get("status"),
	}

	s.Templates.Render(w, "list.html", &struct {
		PageData
		Filter   listview.Filter
		Records  []model.Record
		Total    int
		Loaded   bool
		Statuses []string
		Owners   []string
	}{
		PageData: s.page(r, titleList),
		Filter:   filter,
		Records:  sess.List.Visible(filter),
		Total:    len(sess.List.Records()),
		Loaded:   sess.List.Loaded(),
		Statuses: model.Statuses(),
		Owners:   model.Owners(),
	})
}

// NewRecordPage handles GET /records/new.
func (s *Server) NewRecordPage(w http.ResponseWriter, r *http.Request) {
	f := form.NewAddForm()
	s.renderForm(w, r, http.StatusOK, &f.Editor, nil)
}

// CreateRecordSubmit handles POST /records.
func (s *Server) CreateRecordSubmit(w http.ResponseWriter, r *http.Request) {
	f := form.NewAddForm()
	readDraft(r, &f.Editor)
	draft := f.Draft

	id, err := f.Submit(r.Context(), s.Records)
	if err != nil {
		s.formError(r, "failed to create record", err)
		s.renderForm(w, r, statusFor(err), &f.Editor, nil)
		return
	}

	slog.Info("record created", "id", id, "name", draft.Name)
	s.session(r).Notices.Push(notice.KindSuccess, msgCreated)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// EditRecordPage handles GET /records/{id}.
func (s *Server) EditRecordPage(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}

	f := form.OpenEdit(*rec, s.Now())
	s.renderForm(w, r, http.StatusOK, &f.Editor, rec)
}

// UpdateRecordSubmit handles POST /records/{id}.
func (s *Server) UpdateRecordSubmit(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}

	f := form.OpenEdit(*rec, s.Now())
	readDraft(r, &f.Editor)

	if err := f.Submit(r.Context(), s.Records); err != nil {
		s.formError(r, "failed to update record", err)
		if errors.Is(err, docstore.ErrNotFound) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		s.renderForm(w, r, statusFor(err), &f.Editor, rec)
		return
	}

	slog.Info("record updated", "id", rec.ID, "name", f.Draft.Name)
	s.session(r).Notices.Push(notice.KindSuccess, msgUpdated)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteConfirmPage handles POST /records/{id}/delete. It only asks for
// confirmation; nothing is deleted.
func (s *Server) DeleteConfirmPage(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}

	f := form.OpenEdit(*rec, s.Now())
	f.RequestDelete()

	s.Templates.Render(w, "confirm_delete.html", &struct {
		PageData
		Record     *model.Record
		Confirming bool
	}{
		PageData:   s.page(r, titleDelete),
		Record:     rec,
		Confirming: f.Confirming(),
	})
}

// DeleteRecordSubmit handles POST /records/{id}/delete/confirm.
func (s *Server) DeleteRecordSubmit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	f := form.OpenEdit(model.Record{ID: id}, s.Now())
	f.RequestDelete()
	if err := f.ConfirmDelete(r.Context(), s.Records); err != nil {
		s.formError(r, "failed to delete record", err)
	} else {
		slog.Info("record deleted", "id", id)
		s.session(r).Notices.Push(notice.KindSuccess, msgDeleted)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DismissNotice handles POST /notices/{id}/dismiss.
func (s *Server) DismissNotice(w http.ResponseWriter, r *http.Request) {
	s.session(r).Notices.Dismiss(chi.URLParam(r, "id"))
	http.Redirect(w, r, safeReturn(r.FormValue("return")), http.StatusSeeOther)
}

// loadRecord fetches the record named in the URL. When it cannot be shown,
// a notice is queued, the client is sent back to the list and ok is false.
func (s *Server) loadRecord(w http.ResponseWriter, r *http.Request) (*model.Record, bool) {
	id := chi.URLParam(r, "id")
	rec, err := s.Records.GetOne(r.Context(), id)
	if err != nil {
		slog.Error("failed to get record", "id", id, "error", err)
		s.session(r).Notices.Error(err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil, false
	}
	if rec == nil {
		s.session(r).Notices.Error(docstore.ErrNotFound)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil, false
	}
	return rec, true
}

// formError logs a failed form action and queues a notice for the user.
func (s *Server) formError(r *http.Request, msg string, err error) {
	if errors.Is(err, form.ErrValidation) {
		slog.Warn(msg, "error", err)
	} else {
		slog.Error(msg, "error", err)
	}
	s.session(r).Notices.Error(err)
}

// readDraft copies submitted fields into the editor. Fields absent from the
// request keep their current value.
func readDraft(r *http.Request, e *form.Editor) {
	if err := r.ParseForm(); err != nil {
		return
	}

	if v, ok := r.Form["name"]; ok && len(v) > 0 {
		e.Draft.Name = v[0]
	}
	if v, ok := r.Form["status"]; ok && len(v) > 0 {
		e.Draft.Status = v[0]
	}
	if v, ok := r.Form["owner"]; ok && len(v) > 0 {
		e.Draft.Owner = v[0]
	}
	for _, f := range model.DateFields() {
		if v, ok := r.Form[string(f)]; ok && len(v) > 0 {
			e.FillDate(f, v[0])
		}
	}
}

// statusFor maps an error to the status code of a re-rendered form.
func statusFor(err error) int {
	switch {
	case errors.Is(err, form.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, docstore.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, docstore.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, docstore.ErrBackendUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// safeReturn only allows local paths as redirect targets.
func safeReturn(path string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return "/"
	}
	return path
}
