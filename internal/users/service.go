package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akozyrev/userpower-backend/pkg/db"
	"github.com/akozyrev/userpower-backend/pkg/db/models"
	dbtypes "github.com/akozyrev/userpower-backend/pkg/db/types"
	"github.com/akozyrev/userpower-backend/pkg/enums"
	apperrors "github.com/akozyrev/userpower-backend/pkg/errors"
)

const userNotFoundMessage = "user not found or already deleted"

// Service defines the behavior needed by the user controllers.
type Service interface {
	Fetch(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	Deactivate(ctx context.Context, acting *models.User, id uuid.UUID) (uuid.UUID, error)
	UpdateFields(ctx context.Context, acting *models.User, id uuid.UUID, dto UpdateUserDTO) (uuid.UUID, error)
	PromoteToAdmin(ctx context.Context, acting *models.User, id uuid.UUID) (uuid.UUID, error)
	RevokeAdmin(ctx context.Context, acting *models.User, id uuid.UUID) (uuid.UUID, error)
}

type service struct {
	repo userRepository
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Deactivate(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateFields(ctx context.Context, id uuid.UUID, dto UpdateUserDTO) (bool, error)
	UpdateRoles(ctx context.Context, id uuid.UUID, roles dbtypes.RoleList) (bool, error)
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Repo userRepository
}

// NewService constructs a users service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{repo: params.Repo}, nil
}

// Fetch returns a user by id regardless of their active flag.
func (s *service) Fetch(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.findTarget(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

// Deactivate soft-deletes the target user on behalf of acting. The write is
// conditional on the row still being active, so a concurrent delete surfaces
// as not-found rather than a silent double delete.
func (s *service) Deactivate(ctx context.Context, acting *models.User, id uuid.UUID) (uuid.UUID, error) {
	target, err := s.findTarget(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if err := CanModify(acting, target, ActionDeactivate); err != nil {
		return uuid.Nil, err
	}

	done, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(apperrors.CodeInternal, err, "deactivate user")
	}
	if !done {
		return uuid.Nil, apperrors.New(apperrors.CodeNotFound, userNotFoundMessage)
	}
	return id, nil
}

// UpdateFields applies a partial profile update on behalf of acting.
func (s *service) UpdateFields(ctx context.Context, acting *models.User, id uuid.UUID, dto UpdateUserDTO) (uuid.UUID, error) {
	if dto.IsEmpty() {
		return uuid.Nil, apperrors.New(apperrors.CodeValidation, "at least one parameter for user update info should be provided")
	}

	target, err := s.findTarget(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if err := CanModify(acting, target, ActionUpdateFields); err != nil {
		return uuid.Nil, err
	}

	done, err := s.repo.UpdateFields(ctx, id, dto)
	if err != nil {
		// The unique email index is the only arbiter of address ownership;
		// a violation here means the new email is already taken.
		if db.IsUniqueViolation(err, "") {
			return uuid.Nil, apperrors.Wrap(apperrors.CodeDependency, err, "database error")
		}
		return uuid.Nil, apperrors.Wrap(apperrors.CodeInternal, err, "update user")
	}
	if !done {
		return uuid.Nil, apperrors.New(apperrors.CodeNotFound, userNotFoundMessage)
	}
	return id, nil
}

// PromoteToAdmin grants the admin role to the target. Only superadmins may
// grant it, never to themselves, and never to a user who already holds an
// admin or superadmin role.
func (s *service) PromoteToAdmin(ctx context.Context, acting *models.User, id uuid.UUID) (uuid.UUID, error) {
	target, err := s.authorizePrivilegeChange(ctx, acting, id)
	if err != nil {
		return uuid.Nil, err
	}
	if target.IsAdmin() || target.IsSuperadmin() {
		return uuid.Nil, apperrors.New(apperrors.CodeConflict, fmt.Sprintf("user with id %s already promoted to admin / superadmin", id))
	}

	done, err := s.repo.UpdateRoles(ctx, id, target.Roles.With(enums.PortalRoleAdmin))
	if err != nil {
		return uuid.Nil, apperrors.Wrap(apperrors.CodeInternal, err, "grant admin role")
	}
	if !done {
		return uuid.Nil, apperrors.New(apperrors.CodeNotFound, userNotFoundMessage)
	}
	return id, nil
}

// RevokeAdmin removes the admin role from the target, mirroring PromoteToAdmin.
func (s *service) RevokeAdmin(ctx context.Context, acting *models.User, id uuid.UUID) (uuid.UUID, error) {
	target, err := s.authorizePrivilegeChange(ctx, acting, id)
	if err != nil {
		return uuid.Nil, err
	}
	if !target.IsAdmin() {
		return uuid.Nil, apperrors.New(apperrors.CodeConflict, fmt.Sprintf("user with id %s has no admin privileges", id))
	}

	done, err := s.repo.UpdateRoles(ctx, id, target.Roles.Without(enums.PortalRoleAdmin))
	if err != nil {
		return uuid.Nil, apperrors.Wrap(apperrors.CodeInternal, err, "revoke admin role")
	}
	if !done {
		return uuid.Nil, apperrors.New(apperrors.CodeNotFound, userNotFoundMessage)
	}
	return id, nil
}

// authorizePrivilegeChange runs the checks shared by grant and revoke: the
// actor must be a superadmin and must not be targeting their own account.
// The forbidden check comes first so a non-superadmin probing their own id
// still gets a plain 403.
func (s *service) authorizePrivilegeChange(ctx context.Context, acting *models.User, id uuid.UUID) (*models.User, error) {
	if !acting.IsSuperadmin() {
		return nil, apperrors.New(apperrors.CodeForbidden, "forbidden")
	}
	if acting.ID == id {
		return nil, apperrors.New(apperrors.CodeSelfManagement, "cannot manage privileges of own account")
	}
	return s.findTarget(ctx, id)
}

func (s *service) findTarget(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, userNotFoundMessage)
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "load user")
	}
	return user, nil
}
