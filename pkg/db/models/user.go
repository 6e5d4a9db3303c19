package models

import (
	"time"

	dbtypes "github.com/akozyrev/userpower-backend/pkg/db/types"
	"github.com/akozyrev/userpower-backend/pkg/enums"
	"github.com/google/uuid"
)

// User represents the canonical account entity. Rows are never deleted;
// is_active=false marks a soft-deleted account.
type User struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string           `gorm:"type:text;not null"`
	Surname      string           `gorm:"type:text;not null"`
	Email        string           `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string           `gorm:"column:password_hash;not null"`
	IsActive     bool             `gorm:"column:is_active;not null;default:true"`
	Roles        dbtypes.RoleList `gorm:"type:text[];column:roles;not null"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// IsAdmin reports whether the account holds the admin role tag.
func (u *User) IsAdmin() bool {
	return u != nil && u.Roles.Has(enums.PortalRoleAdmin)
}

// IsSuperadmin reports whether the account holds the superadmin role tag.
func (u *User) IsSuperadmin() bool {
	return u != nil && u.Roles.Has(enums.PortalRoleSuperadmin)
}

// PrimaryRole returns the most privileged role held by the account.
func (u *User) PrimaryRole() enums.PortalRole {
	switch {
	case u.IsSuperadmin():
		return enums.PortalRoleSuperadmin
	case u.IsAdmin():
		return enums.PortalRoleAdmin
	default:
		return enums.PortalRoleUser
	}
}
