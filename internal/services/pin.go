package services

import (
	"errors"

	"github.com/sbilibin2017/bankcore/internal/models"
	"github.com/sbilibin2017/bankcore/internal/policy"
	"github.com/sbilibin2017/bankcore/internal/security"
)

// DefaultMaxPINAttempts is the number of wrong PINs that forces a PIN reset.
const DefaultMaxPINAttempts = 3

var (
	ErrIncorrectPIN     = errors.New("incorrect PIN")
	ErrPINResetRequired = errors.New("too many incorrect PIN attempts, PIN reset required")
)

// PINCheck is the attempt state after a verification.
type PINCheck struct {
	Attempts      int  `json:"attempts"`
	ResetRequired bool `json:"reset_required"`
}

// PINGuard verifies PINs against an explicitly threaded attempt counter.
type PINGuard struct {
	maxAttempts int
}

func NewPINGuard(maxAttempts int) *PINGuard {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxPINAttempts
	}
	return &PINGuard{maxAttempts: maxAttempts}
}

// MaxAttempts returns the failure count that triggers a reset.
func (g *PINGuard) MaxAttempts() int {
	return g.maxAttempts
}

// Verify checks pin for a. The returned Attempts is the counter the caller must store.
// It is zero after success and after the failure that requires a reset.
func (g *PINGuard) Verify(a *models.AccountDB, pin string, attempts int) (PINCheck, error) {
	if a.PINHash == "" {
		return PINCheck{Attempts: attempts}, policy.ErrPINNotSet
	}
	if security.CheckAccountPIN(a, pin) {
		return PINCheck{}, nil
	}

	attempts++
	if attempts >= g.maxAttempts {
		return PINCheck{ResetRequired: true}, ErrPINResetRequired
	}
	return PINCheck{Attempts: attempts}, ErrIncorrectPIN
}
