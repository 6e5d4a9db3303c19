package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgAuth "github.com/akozyrev/userpower-backend/pkg/auth"
	"github.com/akozyrev/userpower-backend/pkg/config"
	"github.com/akozyrev/userpower-backend/pkg/db/models"
	apperrors "github.com/akozyrev/userpower-backend/pkg/errors"
	"github.com/akozyrev/userpower-backend/pkg/security"
)

// All authentication failures collapse into these two messages so the
// endpoint cannot be used to enumerate accounts or probe their state.
const (
	invalidCredentialsMessage = "incorrect username or password"
	invalidTokenMessage       = "could not validate credentials"
)

const tokenTypeBearer = "bearer"

// Service defines the behavior needed by the auth controller and middleware.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

type service struct {
	users  userRepository
	jwtCfg config.JWTConfig
	now    func() time.Time
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo  userRepository
	JWTConfig config.JWTConfig

	// Now is optional and defaults to time.Now; tests pin it.
	Now func() time.Time
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		users:  params.UserRepo,
		jwtCfg: params.JWTConfig,
		now:    now,
	}, nil
}

// Login authenticates the credentials and mints a signed access token whose
// subject is the account email. Unknown email, wrong password and internal
// lookup failures all produce the same unauthorized error.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Username))
	if email == "" || req.Password == "" {
		return nil, apperrors.New(apperrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, apperrors.New(apperrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, err := pkgAuth.MintAccessToken(s.jwtCfg, s.now(), user.Email)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "mint access token")
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
	}, nil
}

// CurrentUser resolves a bearer token to the account it was minted for.
// Parse failures and unknown subjects collapse into one unauthorized error.
func (s *service) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	claims, err := pkgAuth.ParseAccessToken(s.jwtCfg, token)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, invalidTokenMessage)
	}

	user, err := s.users.FindByEmail(ctx, claims.Email())
	if err != nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, invalidTokenMessage)
	}
	return user, nil
}
