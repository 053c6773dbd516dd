package utils

import (
	"context"

	"user-api/internal/data/entity"

	"github.com/google/uuid"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller bound to a request. It is built from
// the live user record, not from token claims.
type Identity struct {
	ID    uuid.UUID
	Email string
	Role  entity.Role
}

func SetIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func GetIdentity(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	identity, ok := GetIdentity(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return identity.ID, true
}
