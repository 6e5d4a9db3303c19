package controllers

import (
	"net/http"

	"github.com/akozyrev/userpower-backend/api/middleware"
	"github.com/akozyrev/userpower-backend/api/responses"
	"github.com/akozyrev/userpower-backend/api/validators"
	"github.com/akozyrev/userpower-backend/internal/auth"
	"github.com/akozyrev/userpower-backend/internal/users"
	pkgerrors "github.com/akozyrev/userpower-backend/pkg/errors"
	"github.com/akozyrev/userpower-backend/pkg/logger"
)

// CreateUser wires the public registration endpoint into the HTTP layer.
func CreateUser(svc auth.RegisterService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "register service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, created)
	}
}

// GetUser returns a user by the id query parameter, active or not.
func GetUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseQueryUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Fetch(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

// DeleteUser soft-deletes the user named by the id query parameter.
func DeleteUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
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

		deletedID, err := svc.Deactivate(r.Context(), acting, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"deleted_user_id": deletedID})
	}
}

// updateUserBody carries the optional profile fields of a partial update.
type updateUserBody struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,alphahyphen"`
	Surname *string `json:"surname,omitempty" validate:"omitempty,alphahyphen"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
}

// UpdateUser applies a partial profile update to the user named by the id
// query parameter.
func UpdateUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body updateUserBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updatedID, err := svc.UpdateFields(r.Context(), acting, id, users.UpdateUserDTO{
			Name:    body.Name,
			Surname: body.Surname,
			Email:   body.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"updated_user_id": updatedID})
	}
}
