package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account statuses
const (
	StatusPending     = "pending"
	StatusActive      = "active"
	StatusDeactivated = "deactivated"
)

// MaxMoney is the largest value the NUMERIC(20,2) money columns hold.
var MaxMoney = decimal.RequireFromString("999999999999999999.99")

// DefaultOpeningBalance is credited to newly opened customer accounts.
var DefaultOpeningBalance = decimal.NewFromInt(1000)

// AccountDB represents an account row in the database
type AccountDB struct {
	ID                  uuid.UUID       `json:"id" db:"id"`                                       // Internal unique identifier
	Username            string          `json:"username" db:"username"`                           // Unique username
	Email               string          `json:"email" db:"email"`                                 // Unique email
	AccountNumber       string          `json:"account_number" db:"account_number"`               // Unique 10-digit account number
	Balance             decimal.Decimal `json:"balance" db:"balance"`                             // Non-negative balance
	Status              string          `json:"status" db:"status"`                               // pending, active or deactivated
	IsAdmin             bool            `json:"is_admin" db:"is_admin"`                           // Admin flag
	IsManager           bool            `json:"is_manager" db:"is_manager"`                       // Manager flag
	PasswordHash        string          `json:"-" db:"password_hash"`                             // bcrypt password hash
	PINHash             string          `json:"-" db:"pin_hash"`                                  // bcrypt PIN hash, empty when unset
	SessionToken        string          `json:"-" db:"session_token"`                             // Active session token, empty when logged out
	LastLogin           *time.Time      `json:"last_login,omitempty" db:"last_login"`             // Last successful login
	LastActivity        *time.Time      `json:"last_activity,omitempty" db:"last_activity"`       // Last authenticated request
	ForcePasswordChange bool            `json:"force_password_change" db:"force_password_change"` // Set for admin-created accounts
	Profile
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}

// Profile holds the editable personal and address fields of an account.
type Profile struct {
	FirstName    string `json:"firstname" db:"firstname"`
	LastName     string `json:"lastname" db:"lastname"`
	Phone        string `json:"phone" db:"phone"`
	AddressLine  string `json:"address_line" db:"address_line"`
	PostalCode   string `json:"postal_code" db:"postal_code"`
	RegionCode   string `json:"region_code" db:"region_code"`
	RegionName   string `json:"region_name" db:"region_name"`
	ProvinceCode string `json:"province_code" db:"province_code"`
	ProvinceName string `json:"province_name" db:"province_name"`
	CityCode     string `json:"city_code" db:"city_code"`
	CityName     string `json:"city_name" db:"city_name"`
	BarangayCode string `json:"barangay_code" db:"barangay_code"`
	BarangayName string `json:"barangay_name" db:"barangay_name"`
}

// IsPrivileged reports whether the account carries the admin or manager flag.
func (a *AccountDB) IsPrivileged() bool {
	return a.IsAdmin || a.IsManager
}

// CanMoveMoney reports whether the account passes the active-status gate.
// Admins and managers bypass it.
func (a *AccountDB) CanMoveMoney() bool {
	return a.Status == StatusActive || a.IsPrivileged()
}

// FullAddress joins the non-empty address parts.
func (a *AccountDB) FullAddress() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.AddressLine, a.BarangayName, a.CityName, a.ProvinceName, a.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "No address provided"
	}
	return strings.Join(parts, ", ")
}

// AccountFilter narrows account listings by role flags.
type AccountFilter struct {
	IsAdmin   *bool
	IsManager *bool
}
