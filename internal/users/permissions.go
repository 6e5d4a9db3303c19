package users

import (
	"github.com/akozyrev/userpower-backend/pkg/db/models"
	apperrors "github.com/akozyrev/userpower-backend/pkg/errors"
)

// Action identifies the kind of modification being authorized.
type Action string

const (
	ActionDeactivate   Action = "deactivate"
	ActionUpdateFields Action = "update_fields"
)

// CanModify decides whether acting may modify target. It returns nil when the
// action is allowed and a typed error otherwise. Rule order matters: the
// superadmin self-deactivation rule outranks the self-management shortcut, so
// a superadmin can never lock themselves out of their own account.
func CanModify(acting, target *models.User, action Action) error {
	if action == ActionDeactivate && acting.IsSuperadmin() && acting.ID == target.ID {
		return apperrors.New(apperrors.CodePolicy, "superadmins cannot deactivate themselves")
	}
	if acting.ID == target.ID {
		return nil
	}
	if !acting.IsAdmin() && !acting.IsSuperadmin() {
		return apperrors.New(apperrors.CodeForbidden, "forbidden")
	}
	if (target.IsSuperadmin() || target.IsAdmin()) && !acting.IsSuperadmin() {
		return apperrors.New(apperrors.CodeForbidden, "forbidden")
	}
	return nil
}
