package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/akozyrev/userpower-backend/api/middleware"
	"github.com/akozyrev/userpower-backend/api/responses"
	"github.com/akozyrev/userpower-backend/api/validators"
	"github.com/akozyrev/userpower-backend/internal/users"
	"github.com/akozyrev/userpower-backend/pkg/db/models"
	pkgerrors "github.com/akozyrev/userpower-backend/pkg/errors"
	"github.com/akozyrev/userpower-backend/pkg/logger"
)

type privilegeOp func(users.Service, context.Context, *models.User, uuid.UUID) (uuid.UUID, error)

// GrantAdminPrivilege promotes the user named by the id query parameter to
// admin. Superadmins only.
func GrantAdminPrivilege(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return privilegeHandler(svc, logg, users.Service.PromoteToAdmin)
}

// RevokeAdminPrivilege removes the admin role from the user named by the id
// query parameter. Superadmins only.
func RevokeAdminPrivilege(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return privilegeHandler(svc, logg, users.Service.RevokeAdmin)
}

func privilegeHandler(svc users.Service, logg *logger.Logger, op privilegeOp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acting := middleware.UserFromContext(r.Context())
		if acting == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		id, err := validators.ParseQueryUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updatedID, err := op(svc, r.Context(), acting, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"updated_user_id": updatedID})
	}
}
