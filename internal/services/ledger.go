package services

//go:generate mockgen -source=ledger.go -destination=mock_ledger_test.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/bankcore/internal/logger"
	"github.com/sbilibin2017/bankcore/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultHistoryLimit is the number of rows RecentTransactions returns by default.
const DefaultHistoryLimit = 10

var (
	ErrInvalidAmount     = errors.New("amount must be positive with at most two decimals")
	ErrSelfTransfer      = errors.New("cannot transfer to your own account")
	ErrSenderInactive    = errors.New("sender account is not active")
	ErrRecipientInactive = errors.New("recipient account is not active")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBalanceLimit      = errors.New("recipient balance would exceed the account limit")
)

// TxRunner runs fn inside one database transaction.
type TxRunner interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// BalanceStore locks accounts and writes balances inside a transaction.
type BalanceStore interface {
	LockForUpdate(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*models.AccountDB, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}

// TransactionWriter appends ledger rows.
type TransactionWriter interface {
	Create(ctx context.Context, t *models.TransactionDB) error
}

// TransactionHistory reads per-account ledger rows.
type TransactionHistory interface {
	TransactionsSent(ctx context.Context, id uuid.UUID, limit int, excludeType string) ([]models.TransactionDB, error)
	TransactionsReceived(ctx context.Context, id uuid.UUID, limit int, excludeType string) ([]models.TransactionDB, error)
}

// EventPublisher announces committed monetary transactions.
type EventPublisher interface {
	Publish(ctx context.Context, event models.TransactionEvent) error
}

// LedgerService is the only writer of balances. Every balance change is
// committed together with its transaction row.
type LedgerService struct {
	tx        TxRunner
	balances  BalanceStore
	writer    TransactionWriter
	history   TransactionHistory
	publisher EventPublisher
	now       func() time.Time
	newID     func() string
}

func NewLedgerService(
	tx TxRunner,
	balances BalanceStore,
	writer TransactionWriter,
	history TransactionHistory,
	publisher EventPublisher,
) *LedgerService {
	return &LedgerService{
		tx:        tx,
		balances:  balances,
		writer:    writer,
		history:   history,
		publisher: publisher,
		now:       utcNow,
		newID:     uuid.NewString,
	}
}

func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Round(2)) && amount.LessThanOrEqual(models.MaxMoney)
}

// Transfer moves amount from sender to receiver and records a transfer row.
// On any error neither balance changes and no row is written.
func (svc *LedgerService) Transfer(ctx context.Context, senderID, receiverID uuid.UUID, amount decimal.Decimal) (*models.TransactionDB, error) {
	if !validAmount(amount) {
		return nil, ErrInvalidAmount
	}
	if senderID == receiverID {
		return nil, ErrSelfTransfer
	}

	var record *models.TransactionDB
	err := svc.tx.Do(ctx, func(ctx context.Context) error {
		locked, err := svc.balances.LockForUpdate(ctx, senderID, receiverID)
		if err != nil {
			return err
		}
		sender, receiver := locked[senderID], locked[receiverID]

		if !sender.CanMoveMoney() {
			return ErrSenderInactive
		}
		if !receiver.CanMoveMoney() {
			return ErrRecipientInactive
		}
		if sender.Balance.LessThan(amount) {
			return ErrInsufficientFunds
		}
		if receiver.Balance.Add(amount).GreaterThan(models.MaxMoney) {
			return ErrBalanceLimit
		}

		if err := svc.balances.UpdateBalance(ctx, senderID, sender.Balance.Sub(amount)); err != nil {
			return err
		}
		if err := svc.balances.UpdateBalance(ctx, receiverID, receiver.Balance.Add(amount)); err != nil {
			return err
		}

		record = svc.newRecord(senderID, receiverID, amount, models.TxTransfer, "")
		return svc.writer.Create(ctx, record)
	})
	if err != nil {
		logger.Log.Errorw("transfer failed",
			"sender_id", senderID, "receiver_id", receiverID, "amount", amount, "error", err)
		return nil, err
	}

	svc.publish(ctx, record)
	return record, nil
}

// Deposit credits accountID and records a deposit row with the acting admin as sender.
func (svc *LedgerService) Deposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, actingAdminID uuid.UUID) (*models.TransactionDB, error) {
	if !validAmount(amount) {
		return nil, ErrInvalidAmount
	}

	var record *models.TransactionDB
	err := svc.tx.Do(ctx, func(ctx context.Context) error {
		locked, err := svc.balances.LockForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		account := locked[accountID]

		if !account.CanMoveMoney() {
			return ErrRecipientInactive
		}
		if account.Balance.Add(amount).GreaterThan(models.MaxMoney) {
			return ErrBalanceLimit
		}

		if err := svc.balances.UpdateBalance(ctx, accountID, account.Balance.Add(amount)); err != nil {
			return err
		}

		record = svc.newRecord(actingAdminID, accountID, amount, models.TxDeposit, "")
		return svc.writer.Create(ctx, record)
	})
	if err != nil {
		logger.Log.Errorw("deposit failed",
			"account_id", accountID, "admin_id", actingAdminID, "amount", amount, "error", err)
		return nil, err
	}

	svc.publish(ctx, record)
	return record, nil
}

// RecordAudit appends a zero-amount row. Called with a transaction context it
// commits together with the change it describes.
func (svc *LedgerService) RecordAudit(ctx context.Context, actorID, targetID uuid.UUID, txType, details string) (*models.TransactionDB, error) {
	record := svc.newRecord(actorID, targetID, decimal.Zero, txType, details)
	if err := svc.writer.Create(ctx, record); err != nil {
		logger.Log.Errorw("failed to record audit", "type", txType, "target_id", targetID, "error", err)
		return nil, err
	}
	return record, nil
}

// RecentTransactions merges sent and received history without profile edits,
// newest first.
func (svc *LedgerService) RecentTransactions(ctx context.Context, accountID uuid.UUID, limit int) ([]models.TransactionDB, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	sent, err := svc.history.TransactionsSent(ctx, accountID, limit, models.TxUserEdit)
	if err != nil {
		return nil, fmt.Errorf("load sent transactions: %w", err)
	}
	received, err := svc.history.TransactionsReceived(ctx, accountID, limit, models.TxUserEdit)
	if err != nil {
		return nil, fmt.Errorf("load received transactions: %w", err)
	}

	merged := make([]models.TransactionDB, 0, len(sent)+len(received))
	seen := make(map[string]struct{}, len(sent)+len(received))
	for _, batch := range [][]models.TransactionDB{sent, received} {
		for _, t := range batch {
			if _, dup := seen[t.TransactionID]; dup {
				continue
			}
			seen[t.TransactionID] = struct{}{}
			merged = append(merged, t)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

func (svc *LedgerService) newRecord(senderID, receiverID uuid.UUID, amount decimal.Decimal, txType, details string) *models.TransactionDB {
	return &models.TransactionDB{
		TransactionID:   svc.newID(),
		SenderID:        senderID,
		ReceiverID:      receiverID,
		Amount:          amount,
		TransactionType: txType,
		Details:         details,
		CreatedAt:       svc.now(),
	}
}

// publish never fails the caller: the ledger row is already committed.
func (svc *LedgerService) publish(ctx context.Context, record *models.TransactionDB) {
	if svc.publisher == nil {
		return
	}
	if err := svc.publisher.Publish(ctx, models.NewTransactionEvent(record)); err != nil {
		logger.Log.Errorw("failed to publish transaction event",
			"transaction_id", record.TransactionID, "error", err)
	}
}

// ProfileChange is one audited field of an account edit.
type ProfileChange struct {
	Label string
	Old   string
	New   string
}

// DiffProfiles lists the changed editable fields as "Label: old → new" lines.
// Empty values render as None.
func DiffProfiles(old, updated *models.AccountDB) string {
	candidates := []ProfileChange{
		{"Email", old.Email, updated.Email},
		{"First Name", old.FirstName, updated.FirstName},
		{"Last Name", old.LastName, updated.LastName},
		{"Address Line", old.AddressLine, updated.AddressLine},
		{"Phone", old.Phone, updated.Phone},
		{"Status", old.Status, updated.Status},
		{"Region", old.RegionName, updated.RegionName},
		{"Province", old.ProvinceName, updated.ProvinceName},
		{"City/Municipality", old.CityName, updated.CityName},
		{"Barangay", old.BarangayName, updated.BarangayName},
		{"Postal Code", old.PostalCode, updated.PostalCode},
	}

	lines := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c.Old == c.New {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s → %s", c.Label, noneIfEmpty(c.Old), noneIfEmpty(c.New)))
	}
	return strings.Join(lines, "\n")
}

func noneIfEmpty(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
