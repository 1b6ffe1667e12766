package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TxTransfer       = "transfer"
	TxDeposit        = "deposit"
	TxUserEdit       = "user_edit"
	TxAdminPromotion = "admin_promotion"
	TxAdminDemotion  = "admin_demotion"
	TxStatusChange   = "status_change"
	TxForceLogout    = "force_logout"
)

// TransactionDB represents an append-only ledger row.
type TransactionDB struct {
	ID              int64           `json:"-" db:"id"`                              // Surrogate key
	TransactionID   string          `json:"transaction_id" db:"transaction_id"`     // Opaque unique identifier
	SenderID        uuid.UUID       `json:"sender_id" db:"sender_id"`               // Debited account or acting admin
	ReceiverID      uuid.UUID       `json:"receiver_id" db:"receiver_id"`           // Credited or affected account
	Amount          decimal.Decimal `json:"amount" db:"amount"`                     // Zero for audit rows
	TransactionType string          `json:"transaction_type" db:"transaction_type"` // transfer, deposit, user_edit, ...
	Details         string          `json:"details,omitempty" db:"details"`         // Human-readable audit diff
	CreatedAt       time.Time       `json:"timestamp" db:"created_at"`              // UTC creation time
}

// IsAudit reports whether the row records a non-monetary change.
func (t *TransactionDB) IsAudit() bool {
	return t.TransactionType != TxTransfer && t.TransactionType != TxDeposit
}

// TransactionFilter holds the manager search criteria. Zero values disable a criterion.
type TransactionFilter struct {
	Type      string
	AccountID *uuid.UUID
	Role      string // "sender", "receiver" or empty for both
	From      *time.Time
	To        *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Search    string
	Limit     int
}

// TransactionEvent is the broker payload published after a ledger commit.
type TransactionEvent struct {
	TransactionID string    `json:"transaction_id"`
	Type          string    `json:"type"`
	SenderID      string    `json:"sender_id"`
	ReceiverID    string    `json:"receiver_id"`
	Amount        string    `json:"amount"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewTransactionEvent converts a committed row into its broker payload.
func NewTransactionEvent(t *TransactionDB) TransactionEvent {
	return TransactionEvent{
		TransactionID: t.TransactionID,
		Type:          t.TransactionType,
		SenderID:      t.SenderID.String(),
		ReceiverID:    t.ReceiverID.String(),
		Amount:        t.Amount.StringFixed(2),
		Timestamp:     t.CreatedAt,
	}
}
