package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/bankcore/internal/models"
	"github.com/sbilibin2017/bankcore/internal/policy"
)

// ProfileRequest carries editable profile fields. Division names are
// resolved on the server from the codes.
// swagger:model ProfileRequest
type ProfileRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	AddressLine  string `json:"address_line"`
	PostalCode   string `json:"postal_code"`
	RegionCode   string `json:"region_code"`
	ProvinceCode string `json:"province_code"`
	CityCode     string `json:"city_code"`
	BarangayCode string `json:"barangay_code"`
}

func (p ProfileRequest) profile() models.Profile {
	return models.Profile{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Phone:        p.Phone,
		AddressLine:  p.AddressLine,
		PostalCode:   p.PostalCode,
		RegionCode:   p.RegionCode,
		ProvinceCode: p.ProvinceCode,
		CityCode:     p.CityCode,
		BarangayCode: p.BarangayCode,
	}
}

// AccountResponse is the public view of an account.
// swagger:model AccountResponse
type AccountResponse struct {
	ID                  uuid.UUID  `json:"id"`
	Username            string     `json:"username"`
	Email               string     `json:"email"`
	AccountNumber       string     `json:"account_number"`
	Balance             string     `json:"balance"`
	Status              string     `json:"status"`
	Role                string     `json:"role"`
	PINSet              bool       `json:"pin_set"`
	ForcePasswordChange bool       `json:"force_password_change"`
	FirstName           string     `json:"first_name,omitempty"`
	LastName            string     `json:"last_name,omitempty"`
	Phone               string     `json:"phone,omitempty"`
	Address             string     `json:"address"`
	LastLogin           *time.Time `json:"last_login,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

func newAccountResponse(a *models.AccountDB) AccountResponse {
	return AccountResponse{
		ID:                  a.ID,
		Username:            a.Username,
		Email:               a.Email,
		AccountNumber:       a.AccountNumber,
		Balance:             a.Balance.StringFixed(2),
		Status:              a.Status,
		Role:                policy.RoleOf(a).String(),
		PINSet:              a.PINHash != "",
		ForcePasswordChange: a.ForcePasswordChange,
		FirstName:           a.FirstName,
		LastName:            a.LastName,
		Phone:               a.Phone,
		Address:             a.FullAddress(),
		LastLogin:           a.LastLogin,
		CreatedAt:           a.CreatedAt,
	}
}

func newAccountResponses(accounts []models.AccountDB) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, newAccountResponse(&accounts[i]))
	}
	return out
}

// TransactionResponse is one ledger row.
// swagger:model TransactionResponse
type TransactionResponse struct {
	TransactionID string    `json:"transaction_id"`
	Type          string    `json:"type"`
	SenderID      uuid.UUID `json:"sender_id"`
	ReceiverID    uuid.UUID `json:"receiver_id"`
	Amount        string    `json:"amount"`
	Details       string    `json:"details,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

func newTransactionResponse(t *models.TransactionDB) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Type:          t.TransactionType,
		SenderID:      t.SenderID,
		ReceiverID:    t.ReceiverID,
		Amount:        t.Amount.StringFixed(2),
		Details:       t.Details,
		Timestamp:     t.CreatedAt,
	}
}

func newTransactionResponses(rows []models.TransactionDB) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, newTransactionResponse(&rows[i]))
	}
	return out
}
