package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/erazemk/bamboorat/internal/api"
	"github.com/erazemk/bamboorat/internal/auth"
	"github.com/erazemk/bamboorat/internal/config"
	"github.com/erazemk/bamboorat/internal/docstore"
	"github.com/erazemk/bamboorat/internal/metrics"
	"github.com/erazemk/bamboorat/internal/web"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI and the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&cfg.Addr, "addr", "a", cfg.Addr, "listen address")
	cmd.Flags().DurationVar(&cfg.NoticeTTL, "notice-ttl", cfg.NoticeTTL, "how long notices stay visible")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	for _, name := range cfg.Missing() {
		slog.Error("missing configuration", "env", name)
	}

	m := metrics.New()

	a, err := openApp(ctx, cfg, docstore.WithObserver(m))
	if err != nil {
		return err
	}
	defer a.Close()

	key, err := signingKey(ctx, cfg, a.db)
	if err != nil {
		return err
	}
	identity := auth.NewService(key, cfg.Project())

	apiRouter := api.NewRouter(api.Options{
		Records: a.records,
		Auth:    identity,
	})
	webRouter, err := web.NewRouter(web.Options{
		Records:   a.records,
		Auth:      identity,
		NoticeTTL: cfg.NoticeTTL,
	})
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(api.LoggingMiddleware)
	r.Use(m.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := a.db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())

	// API routes take priority, web routes handle the rest.
	r.Mount("/api", apiRouter)
	r.Mount("/", webRouter)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}

	slog.Info("server started", "addr", ln.Addr().String(), "project", cfg.Project())
	if err := runServer(ctx, server, ln); err != nil {
		return err
	}

	slog.Info("server stopped, closing database")
	return nil
}

const shutdownTimeout = 5 * time.Second

// runServer serves on ln until ctx is cancelled, then shuts the server down
// gracefully. It returns only after in-flight requests have drained.
func runServer(ctx context.Context, server *http.Server, ln net.Listener) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		slog.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}
