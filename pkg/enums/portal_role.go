package enums

import "fmt"

// PortalRole represents a portal-wide permissions role.
type PortalRole string

const (
	PortalRoleUser       PortalRole = "ROLE_PORTAL_USER"
	PortalRoleAdmin      PortalRole = "ROLE_PORTAL_ADMIN"
	PortalRoleSuperadmin PortalRole = "ROLE_PORTAL_SUPERADMIN"
)

var validPortalRoles = []PortalRole{
	PortalRoleUser,
	PortalRoleAdmin,
	PortalRoleSuperadmin,
}

// String implements fmt.Stringer.
func (p PortalRole) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PortalRole.
func (p PortalRole) IsValid() bool {
	for _, candidate := range validPortalRoles {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePortalRole converts raw input into a PortalRole.
func ParsePortalRole(value string) (PortalRole, error) {
	for _, candidate := range validPortalRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid portal role %q", value)
}
