package users

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akozyrev/userpower-backend/pkg/db/models"
	dbtypes "github.com/akozyrev/userpower-backend/pkg/db/types"
	"github.com/akozyrev/userpower-backend/pkg/enums"
)

// UserDTO is the transport shape that omits credentials and role internals.
type UserDTO struct {
	ID        uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Name         string
	Surname      string
	Email        string
	PasswordHash string
	Roles        []enums.PortalRole
}

// UpdateUserDTO carries the optional profile fields of a partial update.
// A nil field is left untouched.
type UpdateUserDTO struct {
	Name    *string
	Surname *string
	Email   *string
}

// IsEmpty reports whether the update carries no fields at all.
func (u UpdateUserDTO) IsEmpty() bool {
	return u.Name == nil && u.Surname == nil && u.Email == nil
}

// Changes returns the column assignments for the supplied fields.
func (u UpdateUserDTO) Changes() map[string]any {
	changes := map[string]any{}
	if u.Name != nil {
		changes["name"] = *u.Name
	}
	if u.Surname != nil {
		changes["surname"] = *u.Surname
	}
	if u.Email != nil {
		changes["email"] = strings.ToLower(strings.TrimSpace(*u.Email))
	}
	return changes
}

// FromModel maps a stored user to its transport shape.
func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Surname:   u.Surname,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToModel builds the row for a brand-new user: active, email normalized,
// and at least the base role.
func (c CreateUserDTO) ToModel() *models.User {
	roles := c.Roles
	if len(roles) == 0 {
		roles = []enums.PortalRole{enums.PortalRoleUser}
	}

	return &models.User{
		Name:         c.Name,
		Surname:      c.Surname,
		Email:        strings.ToLower(strings.TrimSpace(c.Email)),
		PasswordHash: c.PasswordHash,
		IsActive:     true,
		Roles:        dbtypes.RoleList(roles),
	}
}
