package api

import (
	"context"
	"time"

	"github.com/cityfix/cityfix-api/models"
)

// QueryTimeout bounds every database round trip made on behalf of a request
const QueryTimeout = 10 * time.Second

type identityContextKey struct{}

// WithQueryTimeout derives a context that expires after QueryTimeout
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}

// WithIdentity stores the authenticated actor on the context
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext returns the actor stored by the auth middleware
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(models.Identity)
	return id, ok
}
