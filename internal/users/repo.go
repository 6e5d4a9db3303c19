package users

import (
	"context"

	"github.com/akozyrev/userpower-backend/pkg/db/models"
	dbtypes "github.com/akozyrev/userpower-backend/pkg/db/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes user-related persistence operations. Every mutation is a
// conditional single-row update scoped to active rows; the zero-rows outcome
// is how callers learn the target disappeared between read and write.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID loads a user by their UUID. The lookup is deliberately unscoped by
// is_active: deactivated accounts stay retrievable by direct id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail retrieves the user matching the provided email, active or not.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Deactivate flips is_active off for a currently-active row. It reports false
// when no active row matched, which covers both a missing id and a row that
// was concurrently deactivated.
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND is_active = ?", id, true).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateFields applies a partial profile update scoped to active rows.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, dto UpdateUserDTO) (bool, error) {
	changes := dto.Changes()
	if len(changes) == 0 {
		return false, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(changes)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateRoles overwrites the role set of an active row.
func (r *Repository) UpdateRoles(ctx context.Context, id uuid.UUID, roles dbtypes.RoleList) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND is_active = ?", id, true).
		UpdateColumn("roles", roles)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
