package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/akozyrev/userpower-backend/api/responses"
	"github.com/akozyrev/userpower-backend/pkg/db/models"
	pkgerrors "github.com/akozyrev/userpower-backend/pkg/errors"
	"github.com/akozyrev/userpower-backend/pkg/logger"
)

// IdentityResolver turns a bearer token into the account it belongs to.
// The auth service implements it.
type IdentityResolver interface {
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// Auth validates a bearer token and seeds the request context with the
// resolved account.
func Auth(resolver IdentityResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			user, err := resolver.CurrentUser(r.Context(), token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithUser(r.Context(), user)
			if logg != nil {
				ctx = logg.WithUserID(ctx, user.ID.String())
				ctx = logg.WithActorRole(ctx, string(user.PrimaryRole()))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
