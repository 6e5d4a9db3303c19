package controllers

import (
	"net/http"

	"github.com/akozyrev/userpower-backend/api/responses"
	"github.com/akozyrev/userpower-backend/api/validators"
	"github.com/akozyrev/userpower-backend/internal/auth"
	pkgerrors "github.com/akozyrev/userpower-backend/pkg/errors"
	"github.com/akozyrev/userpower-backend/pkg/logger"
)

// LoginToken wires the token endpoint into the HTTP layer. Credentials arrive
// as form fields, username and password, matching the OAuth2 password flow.
func LoginToken(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := r.ParseForm(); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body"))
			return
		}

		body := auth.LoginRequest{
			Username: r.PostFormValue("username"),
			Password: r.PostFormValue("password"),
		}
		if err := validators.ValidateStruct(&body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
