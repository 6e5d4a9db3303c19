package auth

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/akozyrev/userpower-backend/internal/users"
	"github.com/akozyrev/userpower-backend/pkg/config"
	"github.com/akozyrev/userpower-backend/pkg/db"
	"github.com/akozyrev/userpower-backend/pkg/db/models"
	"github.com/akozyrev/userpower-backend/pkg/enums"
	apperrors "github.com/akozyrev/userpower-backend/pkg/errors"
	"github.com/akozyrev/userpower-backend/pkg/security"
)

// RegisterRequest contains the payload required for creating a new account.
// Name and surname only accept letters and hyphens.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,alphahyphen"`
	Surname  string `json:"surname" validate:"required,alphahyphen"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterService handles the account creation transaction.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type registerUserRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
// UserRepoFactory is optional and defaults to the GORM-backed repository.
type RegisterServiceParams struct {
	TxRunner        txRunner
	UserRepoFactory func(tx *gorm.DB) registerUserRepository
	PasswordConfig  config.PasswordConfig
}

type registerService struct {
	tx          txRunner
	userRepo    func(tx *gorm.DB) registerUserRepository
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.TxRunner == nil {
		return nil, apperrors.New(apperrors.CodeInternal, "transaction runner required")
	}
	userRepo := params.UserRepoFactory
	if userRepo == nil {
		userRepo = func(tx *gorm.DB) registerUserRepository {
			return users.NewRepository(tx)
		}
	}
	return &registerService{
		tx:          params.TxRunner,
		userRepo:    userRepo,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// Register persists a new active account holding the base portal role. There
// is no pre-insert uniqueness probe: the unique index on email is the
// arbiter, and a violation surfaces as a database dependency error.
func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "email is required")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "hash password")
	}

	var created *users.UserDTO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		user, err := s.userRepo(tx).Create(ctx, users.CreateUserDTO{
			Name:         strings.TrimSpace(req.Name),
			Surname:      strings.TrimSpace(req.Surname),
			Email:        email,
			PasswordHash: passwordHash,
			Roles:        []enums.PortalRole{enums.PortalRoleUser},
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return apperrors.Wrap(apperrors.CodeDependency, err, "database error")
			}
			return apperrors.Wrap(apperrors.CodeInternal, err, "create user")
		}
		created = users.FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
