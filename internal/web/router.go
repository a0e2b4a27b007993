package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/bamboorat/internal/auth"
	"github.com/erazemk/bamboorat/internal/form"
	"github.com/erazemk/bamboorat/internal/model"
	webembed "github.com/erazemk/bamboorat/web"
)

// RecordStore is the record repository used by the pages.
type RecordStore interface {
	ListAll(ctx context.Context) ([]model.Record, error)
	GetOne(ctx context.Context, id string) (*model.Record, error)
	form.Creator
	form.Updater
	form.Deleter
}

// Options configures the web router.
type Options struct {
	Records   RecordStore
	Auth      *auth.Service
	NoticeTTL time.Duration
	Now       func() time.Time
}

// Server holds all dependencies for page handlers.
type Server struct {
	Records   RecordStore
	Templates *Templates
	Sessions  *Sessions
	Now       func() time.Time
}

// NewRouter creates the web page router with all page routes registered.
func NewRouter(opts Options) (http.Handler, error) {
	if opts.Records == nil || opts.Auth == nil {
		return nil, errors.New("web router needs a record store and an identity service")
	}

	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Server{
		Records:   opts.Records,
		Templates: templates,
		Sessions:  NewSessions(opts.NoticeTTL, now),
		Now:       now,
	}

	r := chi.NewRouter()

	// Static assets.
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	r.Group(func(r chi.Router) {
		r.Use(AnonymousAuth(opts.Auth))

		r.Get("/", s.ListPage)

		r.Get("/records/new", s.NewRecordPage)
		r.Get("/records/new/picker", s.NewRecordPicker)
		r.Post("/records", s.CreateRecordSubmit)

		r.Get("/records/{id}", s.EditRecordPage)
		r.Get("/records/{id}/picker", s.EditRecordPicker)
		r.Post("/records/{id}", s.UpdateRecordSubmit)
		r.Post("/records/{id}/delete", s.DeleteConfirmPage)
		r.Post("/records/{id}/delete/confirm", s.DeleteRecordSubmit)

		r.Post("/notices/{id}/dismiss", s.DismissNotice)
	})

	return r, nil
}

// session returns the UI state of the identity in the request context.
func (s *Server) session(r *http.Request) *Session {
	id, _ := auth.FromContext(r.Context())
	return s.Sessions.Get(id.UID)
}

// page builds the base page data. Call it after pushing notices for the
// current request.
func (s *Server) page(r *http.Request, title string) PageData {
	returnTo := "/"
	if r.Method == http.MethodGet {
		returnTo = r.URL.RequestURI()
	}
	return PageData{
		Title:    title,
		Notices:  s.session(r).Notices.Active(),
		ReturnTo: returnTo,
	}
}
