// Package security hashes and verifies account passwords and PINs.
package security

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/sbilibin2017/bankcore/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidPINFormat is returned when a PIN is not exactly six decimal digits.
var ErrInvalidPINFormat = errors.New("PIN must be exactly 6 digits")

var pinPattern = regexp.MustCompile(`^\d{6}$`)

// ValidPIN reports whether pin has the six-digit format.
func ValidPIN(pin string) bool {
	return pinPattern.MatchString(pin)
}

// HashPassword returns a salted one-way digest of plain.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares plain against hash. Any mismatch or malformed hash yields false.
func CheckPassword(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// HashPIN validates the PIN format before hashing.
func HashPIN(pin string) (string, error) {
	if !ValidPIN(pin) {
		return "", ErrInvalidPINFormat
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}
	return string(hash), nil
}

// CheckPIN returns false when no PIN has been set.
func CheckPIN(hash, pin string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

// SetAccountPassword stores a fresh password hash on the account.
func SetAccountPassword(a *models.AccountDB, plain string) error {
	hash, err := HashPassword(plain)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

// SetAccountPIN stores a fresh PIN hash on the account.
func SetAccountPIN(a *models.AccountDB, pin string) error {
	hash, err := HashPIN(pin)
	if err != nil {
		return err
	}
	a.PINHash = hash
	return nil
}

func CheckAccountPassword(a *models.AccountDB, plain string) bool {
	return CheckPassword(a.PasswordHash, plain)
}

func CheckAccountPIN(a *models.AccountDB, pin string) bool {
	return CheckPIN(a.PINHash, pin)
}
