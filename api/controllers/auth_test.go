package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/akozyrev/userpower-backend/internal/auth"
	"github.com/akozyrev/userpower-backend/pkg/db/models"
	pkgerrors "github.com/akozyrev/userpower-backend/pkg/errors"
)

type stubAuthService struct {
	resp *auth.LoginResponse
	err  error
	got  *auth.LoginRequest
}

func (s *stubAuthService) Login(_ context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	s.got = &req
	return s.resp, s.err
}

func (s *stubAuthService) CurrentUser(_ context.Context, _ string) (*models.User, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "could not validate credentials")
}

func loginForm(username, password string) *http.Request {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/login/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLoginTokenSuccess(t *testing.T) {
	svc := &stubAuthService{resp: &auth.LoginResponse{AccessToken: "signed-token", TokenType: "bearer"}}
	handler := LoginToken(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, loginForm("nikolai@example.com", "Secret123!"))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.got == nil || svc.got.Username != "nikolai@example.com" {
		t.Fatalf("expected form credentials to reach the service, got %+v", svc.got)
	}

	var envelope struct {
		Data auth.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "signed-token" || envelope.Data.TokenType != "bearer" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestLoginTokenBadCredentials(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "incorrect username or password")}
	handler := LoginToken(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, loginForm("nikolai@example.com", "wrong"))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestLoginTokenMissingFields(t *testing.T) {
	handler := LoginToken(&stubAuthService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, loginForm("", ""))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestLoginTokenNilService(t *testing.T) {
	handler := LoginToken(nil, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, loginForm("nikolai@example.com", "Secret123!"))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
