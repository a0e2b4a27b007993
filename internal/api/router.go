package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/bamboorat/internal/auth"
)

// Options configures the API router.
type Options struct {
	Records RecordStore
	Auth    *auth.Service
	Now     func() time.Time
}

// NewRouter creates the API router with all endpoints registered. Paths are
// relative; mount the router under /api.
func NewRouter(opts Options) http.Handler {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	authHandler := &AuthHandler{Auth: opts.Auth}
	recordsHandler := &RecordsHandler{Records: opts.Records}
	calendarHandler := &CalendarHandler{Now: now}

	r := chi.NewRouter()

	// Public.
	r.Post("/auth/anonymous", authHandler.Anonymous)
	r.Get("/calendar", calendarHandler.Month)
	r.Get("/datefield", calendarHandler.DateField)

	// Authenticated routes.
	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(opts.Auth))

		r.Get("/auth/me", authHandler.Me)

		r.Get("/records", recordsHandler.List)
		r.Post("/records", recordsHandler.Create)
		r.Get("/records/{id}", recordsHandler.Get)
		r.Patch("/records/{id}", recordsHandler.Update)
		r.Delete("/records/{id}", recordsHandler.Delete)
	})

	return r
}
