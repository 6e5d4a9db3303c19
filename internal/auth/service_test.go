package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/akozyrev/userpower-backend/pkg/auth"
	"github.com/akozyrev/userpower-backend/pkg/config"
	"github.com/akozyrev/userpower-backend/pkg/db/models"
	dbtypes "github.com/akozyrev/userpower-backend/pkg/db/types"
	"github.com/akozyrev/userpower-backend/pkg/enums"
	apperrors "github.com/akozyrev/userpower-backend/pkg/errors"
	"github.com/akozyrev/userpower-backend/pkg/security"
)

type stubEmailRepo struct {
	data map[string]*models.User
}

func (s *stubEmailRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.data[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "userpower",
		ExpirationMinutes: 30,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func newLoginTestService(t *testing.T, users ...*models.User) Service {
	t.Helper()
	repo := &stubEmailRepo{data: map[string]*models.User{}}
	for _, u := range users {
		repo.data[u.Email] = u
	}
	svc, err := NewService(ServiceParams{
		UserRepo:  repo,
		JWTConfig: testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func sampleAccount(t *testing.T, email, password string) *models.User {
	t.Helper()
	return &models.User{
		ID:           uuid.New(),
		Name:         "Nikolai",
		Surname:      "Sviridov",
		Email:        email,
		PasswordHash: mustHashPassword(t, password),
		IsActive:     true,
		Roles:        dbtypes.RoleList{enums.PortalRoleUser},
	}
}

func expectUnauthorized(t *testing.T, err error) {
	t.Helper()
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginIssuesBearerToken(t *testing.T) {
	user := sampleAccount(t, "nikolai@example.com", "Secret123!")
	svc := newLoginTestService(t, user)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Username: "nikolai@example.com",
		Password: "Secret123!",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Fatalf("expected bearer token type, got %s", resp.TokenType)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Email() != user.Email {
		t.Fatalf("expected subject %s, got %s", user.Email, claims.Email())
	}
}

func TestLoginNormalizesUsername(t *testing.T) {
	user := sampleAccount(t, "nikolai@example.com", "Secret123!")
	svc := newLoginTestService(t, user)

	if _, err := svc.Login(context.Background(), LoginRequest{
		Username: "  Nikolai@Example.COM ",
		Password: "Secret123!",
	}); err != nil {
		t.Fatalf("login with unnormalized username: %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	user := sampleAccount(t, "nikolai@example.com", "Secret123!")
	svc := newLoginTestService(t, user)

	_, unknownErr := svc.Login(context.Background(), LoginRequest{
		Username: "nobody@example.com",
		Password: "Secret123!",
	})
	expectUnauthorized(t, unknownErr)

	_, wrongPassErr := svc.Login(context.Background(), LoginRequest{
		Username: "nikolai@example.com",
		Password: "wrong",
	})
	expectUnauthorized(t, wrongPassErr)

	if unknownErr.Error() != wrongPassErr.Error() {
		t.Fatalf("error messages leak account existence: %q vs %q", unknownErr, wrongPassErr)
	}
}

func TestLoginSucceedsForDeactivatedAccount(t *testing.T) {
	user := sampleAccount(t, "gone@example.com", "Secret123!")
	user.IsActive = false
	svc := newLoginTestService(t, user)

	if _, err := svc.Login(context.Background(), LoginRequest{
		Username: "gone@example.com",
		Password: "Secret123!",
	}); err != nil {
		t.Fatalf("expected deactivated account to authenticate, got %v", err)
	}
}

func TestLoginEmptyCredentials(t *testing.T) {
	svc := newLoginTestService(t)

	_, err := svc.Login(context.Background(), LoginRequest{})
	expectUnauthorized(t, err)
}

func TestCurrentUserRoundTrip(t *testing.T) {
	user := sampleAccount(t, "nikolai@example.com", "Secret123!")
	svc := newLoginTestService(t, user)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Username: user.Email,
		Password: "Secret123!",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	resolved, err := svc.CurrentUser(context.Background(), resp.AccessToken)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, resolved.ID)
	}
}

func TestCurrentUserRejectsGarbageToken(t *testing.T) {
	svc := newLoginTestService(t)

	_, err := svc.CurrentUser(context.Background(), "not-a-token")
	expectUnauthorized(t, err)
}

func TestCurrentUserRejectsExpiredToken(t *testing.T) {
	user := sampleAccount(t, "nikolai@example.com", "Secret123!")
	repo := &stubEmailRepo{data: map[string]*models.User{user.Email: user}}
	past := time.Now().Add(-2 * time.Hour)
	svc, err := NewService(ServiceParams{
		UserRepo:  repo,
		JWTConfig: testJWTConfig(),
		Now:       func() time.Time { return past },
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Username: user.Email,
		Password: "Secret123!",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err = svc.CurrentUser(context.Background(), resp.AccessToken)
	expectUnauthorized(t, err)
}

func TestCurrentUserUnknownSubject(t *testing.T) {
	svc := newLoginTestService(t)

	token, err := pkgAuth.MintAccessToken(testJWTConfig(), time.Now(), "ghost@example.com")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	_, err = svc.CurrentUser(context.Background(), token)
	expectUnauthorized(t, err)
}
