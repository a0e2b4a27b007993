package auth

import (
	"context"
	"errors"
)

// Identity is an anonymous user.
type Identity struct {
	UID string
}

type contextKey string

const identityKey contextKey = "identity"

// ErrNoIdentity is returned by RequireIdentity for unauthenticated contexts.
var ErrNoIdentity = errors.New("no identity in context")

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the identity stored in ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok && id.UID != ""
}

// RequireIdentity is a store access rule admitting any signed-in identity.
func RequireIdentity(ctx context.Context, _ string) error {
	if _, ok := FromContext(ctx); !ok {
		return ErrNoIdentity
	}
	return nil
}
