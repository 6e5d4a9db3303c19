package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/akozyrev/userpower-backend/pkg/errors"
)

func TestGrantAdminPrivilegeSuccess(t *testing.T) {
	svc := &stubUserService{}
	handler := GrantAdminPrivilege(svc, nil)

	id := uuid.New()
	req := authedRequest(http.MethodPatch, "/user/admin_privilege?id="+id.String(), nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.promotedID != id {
		t.Fatalf("expected promote call for %s, got %s", id, svc.promotedID)
	}

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data["updated_user_id"] != id.String() {
		t.Fatalf("unexpected payload %v", envelope.Data)
	}
}

func TestRevokeAdminPrivilegeSuccess(t *testing.T) {
	svc := &stubUserService{}
	handler := RevokeAdminPrivilege(svc, nil)

	id := uuid.New()
	req := authedRequest(http.MethodDelete, "/user/admin_privilege?id="+id.String(), nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.revokedID != id {
		t.Fatalf("expected revoke call for %s, got %s", id, svc.revokedID)
	}
}

func TestGrantAdminPrivilegeStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    *pkgerrors.Error
		status int
	}{
		{"forbidden for non-superadmin", pkgerrors.New(pkgerrors.CodeForbidden, "forbidden"), http.StatusForbidden},
		{"self management", pkgerrors.New(pkgerrors.CodeSelfManagement, "cannot manage privileges of own account"), http.StatusBadRequest},
		{"already promoted", pkgerrors.New(pkgerrors.CodeConflict, "already promoted"), http.StatusConflict},
		{"unknown target", pkgerrors.New(pkgerrors.CodeNotFound, "user not found or already deleted"), http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := GrantAdminPrivilege(&stubUserService{err: tc.err}, nil)

			req := authedRequest(http.MethodPatch, "/user/admin_privilege?id="+uuid.NewString(), nil)
			resp := httptest.NewRecorder()

			handler.ServeHTTP(resp, req)
			if resp.Code != tc.status {
				t.Fatalf("expected %d got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestAdminPrivilegeRequiresAuthContext(t *testing.T) {
	handler := GrantAdminPrivilege(&stubUserService{}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/user/admin_privilege?id="+uuid.NewString(), nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAdminPrivilegeRejectsMissingID(t *testing.T) {
	handler := RevokeAdminPrivilege(&stubUserService{}, nil)

	req := authedRequest(http.MethodDelete, "/user/admin_privilege", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}
