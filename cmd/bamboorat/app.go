package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/erazemk/bamboorat/internal/auth"
	"github.com/erazemk/bamboorat/internal/config"
	"github.com/erazemk/bamboorat/internal/db"
	"github.com/erazemk/bamboorat/internal/docstore"
	"github.com/erazemk/bamboorat/internal/store"
)

// cliIdentity is the identity used by terminal commands.
const cliIdentity = "cli"

// app holds the wired storage stack shared by all commands.
type app struct {
	db      *db.Handle
	docs    *docstore.Store
	records *store.Repository
}

// openDatabase opens Postgres when a DSN is configured and SQLite otherwise,
// then ensures the schema.
func openDatabase(ctx context.Context, cfg *config.Config) (*db.Handle, error) {
	var (
		h   *db.Handle
		err error
	)
	if cfg.DBDSN != "" {
		h, err = db.OpenPostgres(ctx, cfg.DBDSN)
	} else {
		h, err = db.Open(cfg.DBPath)
	}
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(ctx, h); err != nil {
		h.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	if cfg.DBDSN != "" {
		slog.Info("database ready", "dialect", h.Dialect)
	} else {
		slog.Info("database ready", "dialect", h.Dialect, "path", cfg.DBPath)
	}
	return h, nil
}

// openApp opens the database and builds the record repository on top of it.
func openApp(ctx context.Context, cfg *config.Config, opts ...docstore.Option) (*app, error) {
	h, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts = append([]docstore.Option{docstore.WithAccessRule(auth.RequireIdentity)}, opts...)
	docs := docstore.New(h, opts...)
	return &app{
		db:      h,
		docs:    docs,
		records: store.NewRepository(docs, nil),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// signingKey derives the identity signing key from the configured API key.
// Without one, a random secret persisted in the database is used.
func signingKey(ctx context.Context, cfg *config.Config, h *db.Handle) ([]byte, error) {
	if cfg.APIKey != "" {
		return auth.DeriveKey(cfg.APIKey, cfg.ProjectID)
	}

	slog.Warn("no API key configured, using the database signing secret", "env", config.EnvAPIKey)
	secret, err := store.GetSigningSecret(ctx, h)
	if err != nil {
		return nil, fmt.Errorf("getting signing secret: %w", err)
	}
	return []byte(secret), nil
}

// cliContext returns ctx carrying the terminal identity.
func cliContext(ctx context.Context) context.Context {
	return auth.WithIdentity(ctx, auth.Identity{UID: cliIdentity})
}
