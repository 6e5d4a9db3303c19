package controllers

import (
	"net/http"

	"github.com/akozyrev/userpower-backend/api/middleware"
	"github.com/akozyrev/userpower-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "private", "status": "ok"}
		if user := middleware.UserFromContext(r.Context()); user != nil {
			payload["user_id"] = user.ID.String()
		}
		responses.WriteSuccess(w, payload)
	}
}
