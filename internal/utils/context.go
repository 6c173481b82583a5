package utils

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the authenticated caller attached by the auth middleware.
type Identity struct {
	ID    uuid.UUID
	Email string
	Role  string
}

type contextKey string

const identityKey contextKey = "identity"

func SetUserContext(ctx context.Context, id uuid.UUID, email string, role string) context.Context {
	return context.WithValue(ctx, identityKey, Identity{ID: id, Email: email, Role: role})
}

// IdentityFrom reports false for anonymous requests.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey).(Identity)
	return ident, ok && ident.ID != uuid.Nil
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	ident, ok := IdentityFrom(ctx)
	return ident.ID, ok
}

func GetUserEmailFromContext(ctx context.Context) string {
	ident, _ := IdentityFrom(ctx)
	return ident.Email
}

func GetUserRoleFromContext(ctx context.Context) string {
	ident, _ := IdentityFrom(ctx)
	return ident.Role
}
