// Package policy decides which accounts may act on which other accounts.
package policy

import (
	"errors"

	"github.com/sbilibin2017/bankcore/internal/models"
)

// Role is the effective privilege tier of an account.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
	RoleManager
)

func (r Role) String() string {
	switch r {
	case RoleManager:
		return "manager"
	case RoleAdmin:
		return "admin"
	default:
		return "user"
	}
}

// ErrPermissionDenied is returned when the actor may not manage the target.
var ErrPermissionDenied = errors.New("permission denied")

// RoleOf derives the tier from the flags. The manager flag dominates.
func RoleOf(a *models.AccountDB) Role {
	switch {
	case a.IsManager:
		return RoleManager
	case a.IsAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// CanManage reports whether actor may perform privileged actions on target.
// Managers manage every non-manager, admins manage plain users only.
func CanManage(actor, target *models.AccountDB) bool {
	if actor == nil || target == nil {
		return false
	}
	switch RoleOf(actor) {
	case RoleManager:
		return !target.IsManager
	case RoleAdmin:
		return RoleOf(target) == RoleUser
	default:
		return false
	}
}

// Authorize is CanManage expressed as an error.
func Authorize(actor, target *models.AccountDB) error {
	if !CanManage(actor, target) {
		return ErrPermissionDenied
	}
	return nil
}
