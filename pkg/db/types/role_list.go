package dbtypes

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/akozyrev/userpower-backend/pkg/enums"
)

// RoleList maps a Postgres text[] column onto a set of portal roles. Set
// semantics are enforced on every mutation: a role tag appears at most once.
type RoleList []enums.PortalRole

func (l *RoleList) Scan(src any) error {
	if src == nil {
		*l = RoleList{}
		return nil
	}

	switch v := src.(type) {
	case string:
		return l.parseFromString(v)
	case []byte:
		return l.parseFromString(string(v))
	default:
		return fmt.Errorf("RoleList: unsupported Scan type %T", src)
	}
}

func (l RoleList) Value() (driver.Value, error) {
	// Postgres array literal: {role,role}
	if len(l) == 0 {
		return "{}", nil
	}
	parts := make([]string, 0, len(l))
	for _, role := range l {
		parts = append(parts, string(role))
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

func (l *RoleList) parseFromString(s string) error {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	if strings.TrimSpace(s) == "" {
		*l = RoleList{}
		return nil
	}

	raw := strings.Split(s, ",")
	out := make([]enums.PortalRole, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(strings.Trim(r, `"`))
		role, err := enums.ParsePortalRole(r)
		if err != nil {
			return fmt.Errorf("RoleList: %w", err)
		}
		out = append(out, role)
	}
	*l = RoleList(out)
	return nil
}

// Has reports whether the role tag is present.
func (l RoleList) Has(role enums.PortalRole) bool {
	for _, candidate := range l {
		if candidate == role {
			return true
		}
	}
	return false
}

// With returns a copy of the list with the role added. Adding a tag that is
// already present is a no-op.
func (l RoleList) With(role enums.PortalRole) RoleList {
	out := append(RoleList(nil), l...)
	if out.Has(role) {
		return out
	}
	return append(out, role)
}

// Without returns a copy of the list with every occurrence of the role removed.
func (l RoleList) Without(role enums.PortalRole) RoleList {
	out := make(RoleList, 0, len(l))
	for _, candidate := range l {
		if candidate != role {
			out = append(out, candidate)
		}
	}
	return out
}
