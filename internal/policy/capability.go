package policy

import (
	"errors"

	"github.com/sbilibin2017/bankcore/internal/models"
)

var (
	ErrAdminRequired          = errors.New("admin privileges required")
	ErrManagerRequired        = errors.New("manager privileges required")
	ErrAccountNotActive       = errors.New("account is not active")
	ErrPINNotSet              = errors.New("transaction PIN is not set")
	ErrPasswordChangeRequired = errors.New("password change required")
	ErrUnauthenticated        = errors.New("authentication required")
)

// Capability is a single access check against the authenticated account.
type Capability func(a *models.AccountDB) error

// Check runs caps in order and returns the first failure.
func Check(a *models.AccountDB, caps ...Capability) error {
	if a == nil {
		return ErrUnauthenticated
	}
	for _, c := range caps {
		if err := c(a); err != nil {
			return err
		}
	}
	return nil
}

// RequireAdmin passes admins and managers.
func RequireAdmin(a *models.AccountDB) error {
	if RoleOf(a) < RoleAdmin {
		return ErrAdminRequired
	}
	return nil
}

func RequireManager(a *models.AccountDB) error {
	if RoleOf(a) != RoleManager {
		return ErrManagerRequired
	}
	return nil
}

// RequireActiveOrPrivileged lets admins and managers through regardless of status.
func RequireActiveOrPrivileged(a *models.AccountDB) error {
	if !a.CanMoveMoney() {
		return ErrAccountNotActive
	}
	return nil
}

func RequirePINSet(a *models.AccountDB) error {
	if a.PINHash == "" {
		return ErrPINNotSet
	}
	return nil
}

// RequirePasswordCurrent blocks accounts created with a temporary password.
func RequirePasswordCurrent(a *models.AccountDB) error {
	if a.ForcePasswordChange {
		return ErrPasswordChangeRequired
	}
	return nil
}
