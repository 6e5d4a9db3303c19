package middleware

import (
	"context"

	"github.com/akozyrev/userpower-backend/pkg/db/models"
)

type contextKey string

const ctxUser contextKey = "current_user"

// WithUser injects the authenticated account into the context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUser, user)
}

// UserFromContext returns the authenticated account, or nil when the request
// did not pass the auth middleware.
func UserFromContext(ctx context.Context) *models.User {
	if ctx == nil {
		return nil
	}
	if user, ok := ctx.Value(ctxUser).(*models.User); ok {
		return user
	}
	return nil
}
