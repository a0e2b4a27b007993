package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/erazemk/bamboorat/internal/db"
)

// GetSigningSecret retrieves the identity signing secret from the database.
// If no secret exists, it generates one, stores it, and returns it.
// Uses insert-if-absent + re-SELECT to avoid a TOCTOU race on concurrent startup.
func GetSigningSecret(ctx context.Context, h *db.Handle) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating signing secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	_, err := h.ExecContext(ctx,
		h.Dialect.Rebind(`INSERT INTO settings (key, value) VALUES ('signing_secret', ?) ON CONFLICT (key) DO NOTHING`),
		candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing signing_secret: %w", err)
	}

	// Always read back (either our insert or the existing value).
	var secret string
	err = h.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'signing_secret'`,
	).Scan(&secret)
	if err != nil {
		return "", fmt.Errorf("querying signing_secret: %w", err)
	}

	return secret, nil
}
