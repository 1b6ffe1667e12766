package repositories

import (
	"bytes"
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/bankcore/internal/models"
	"github.com/shopspring/decimal"
)

const (
	uniqueViolation = "23505"

	constraintUsername      = "accounts_username_key"
	constraintEmail         = "accounts_email_key"
	constraintAccountNumber = "accounts_account_number_key"

	maxAccountNumberAttempts = 10
)

var (
	ErrUsernameTaken          = errors.New("username already exists")
	ErrEmailTaken             = errors.New("email already registered")
	ErrAccountNumberExhausted = errors.New("could not allocate a unique account number")
	ErrAccountNotFound        = errors.New("account not found")
)

const accountColumns = `
	id, username, email, account_number, balance, status, is_admin, is_manager,
	password_hash, pin_hash, session_token, last_login, last_activity, force_password_change,
	firstname, lastname, phone, address_line, postal_code,
	region_code, region_name, province_code, province_name,
	city_code, city_name, barangay_code, barangay_name,
	created_at, updated_at`

// AccountReadRepository is the account directory: exact-match lookups and per-account history.
type AccountReadRepository struct {
	db *sqlx.DB
}

func NewAccountReadRepository(db *sqlx.DB) *AccountReadRepository {
	return &AccountReadRepository{db: db}
}

func (r *AccountReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AccountDB, error) {
	return r.getBy(ctx, "id", id)
}

func (r *AccountReadRepository) GetByUsername(ctx context.Context, username string) (*models.AccountDB, error) {
	return r.getBy(ctx, "username", username)
}

func (r *AccountReadRepository) GetByAccountNumber(ctx context.Context, number string) (*models.AccountDB, error) {
	return r.getBy(ctx, "account_number", number)
}

func (r *AccountReadRepository) GetByEmail(ctx context.Context, email string) (*models.AccountDB, error) {
	return r.getBy(ctx, "email", email)
}

// getBy returns (nil, nil) when no row matches.
func (r *AccountReadRepository) getBy(ctx context.Context, column string, value any) (*models.AccountDB, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + column + ` = $1`

	var account models.AccountDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &account, query, value)

	logQuery(query, []any{value}, account.Username, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// List returns accounts matching the role filter ordered by username.
func (r *AccountReadRepository) List(ctx context.Context, filter models.AccountFilter) ([]models.AccountDB, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE ($1::BOOLEAN IS NULL OR is_admin = $1)
		  AND ($2::BOOLEAN IS NULL OR is_manager = $2)
		ORDER BY username`
	args := []any{filter.IsAdmin, filter.IsManager}

	var accounts []models.AccountDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &accounts, query, args...)

	logQuery(query, args, len(accounts), err)

	return accounts, err
}

// TransactionsSent returns rows where the account is the sender, newest first.
// Rows of excludeType are skipped unless it is empty.
func (r *AccountReadRepository) TransactionsSent(ctx context.Context, id uuid.UUID, limit int, excludeType string) ([]models.TransactionDB, error) {
	return r.transactions(ctx, "sender_id", id, limit, excludeType)
}

// TransactionsReceived returns rows where the account is the receiver, newest first.
func (r *AccountReadRepository) TransactionsReceived(ctx context.Context, id uuid.UUID, limit int, excludeType string) ([]models.TransactionDB, error) {
	return r.transactions(ctx, "receiver_id", id, limit, excludeType)
}

func (r *AccountReadRepository) transactions(ctx context.Context, column string, id uuid.UUID, limit int, excludeType string) ([]models.TransactionDB, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ` + column + ` = $1
		  AND ($2::TEXT = '' OR transaction_type <> $2::TEXT)
		ORDER BY created_at DESC, id DESC
		LIMIT $3`
	args := []any{id, excludeType, limit}

	var txs []models.TransactionDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &txs, query, args...)

	logQuery(query, args, len(txs), err)

	return txs, err
}

// AccountWriteRepository mutates account rows. Balance and session updates are
// expected to run inside a TxManager transaction.
type AccountWriteRepository struct {
	db        *sqlx.DB
	numberGen func() (string, error)
}

func NewAccountWriteRepository(db *sqlx.DB) *AccountWriteRepository {
	return &AccountWriteRepository{db: db, numberGen: RandomAccountNumber}
}

// RandomAccountNumber returns 10 uniformly random decimal digits.
func RandomAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10_000_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%010d", n.Int64()), nil
}

// Create inserts the account. ID and account number are assigned when empty;
// an account number collision is retried with a fresh number.
func (r *AccountWriteRepository) Create(ctx context.Context, a *models.AccountDB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = models.StatusPending
	}

	const query = `
		INSERT INTO accounts (
			id, username, email, account_number, balance, status, is_admin, is_manager,
			password_hash, pin_hash, force_password_change,
			firstname, lastname, phone, address_line, postal_code,
			region_code, region_name, province_code, province_name,
			city_code, city_name, barangay_code, barangay_name,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24,
			NOW(), NOW()
		)
		RETURNING created_at, updated_at`

	fixedNumber := a.AccountNumber != ""
	for attempt := 0; attempt < maxAccountNumberAttempts; attempt++ {
		if !fixedNumber {
			number, err := r.numberGen()
			if err != nil {
				return fmt.Errorf("generate account number: %w", err)
			}
			a.AccountNumber = number
		}

		args := []any{
			a.ID, a.Username, a.Email, a.AccountNumber, a.Balance, a.Status, a.IsAdmin, a.IsManager,
			a.PasswordHash, a.PINHash, a.ForcePasswordChange,
			a.FirstName, a.LastName, a.Phone, a.AddressLine, a.PostalCode,
			a.RegionCode, a.RegionName, a.ProvinceCode, a.ProvinceName,
			a.CityCode, a.CityName, a.BarangayCode, a.BarangayName,
		}

		var stamps struct {
			CreatedAt time.Time `db:"created_at"`
			UpdatedAt time.Time `db:"updated_at"`
		}
		err := sqlx.GetContext(ctx, executor(ctx, r.db), &stamps, query, args...)

		logQuery(query, []any{a.ID, a.Username, a.Email, a.AccountNumber}, stamps.CreatedAt, err)

		if err == nil {
			a.CreatedAt, a.UpdatedAt = stamps.CreatedAt, stamps.UpdatedAt
			return nil
		}

		switch uniqueConstraint(err) {
		case constraintUsername:
			return ErrUsernameTaken
		case constraintEmail:
			return ErrEmailTaken
		case constraintAccountNumber:
			if fixedNumber || GetTxFromContext(ctx) != nil {
				// a failed statement aborts the surrounding transaction
				return ErrAccountNumberExhausted
			}
			continue
		default:
			return err
		}
	}
	return ErrAccountNumberExhausted
}

// LockForUpdate loads and row-locks the accounts in ascending id order.
// It must run inside a transaction.
func (r *AccountWriteRepository) LockForUpdate(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*models.AccountDB, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`

	sorted := make([]uuid.UUID, len(ids))
	copy(sorted, ids)
	sortIDs(sorted)

	locked := make(map[uuid.UUID]*models.AccountDB, len(sorted))
	for _, id := range sorted {
		if _, ok := locked[id]; ok {
			continue
		}
		var account models.AccountDB
		err := sqlx.GetContext(ctx, executor(ctx, r.db), &account, query, id)

		logQuery(query, []any{id}, account.Balance, err)

		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
		if err != nil {
			return nil, err
		}
		locked[id] = &account
	}
	return locked, nil
}

func (r *AccountWriteRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	const query = `UPDATE accounts SET balance = $2, updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, query, id, balance)
}

// StartSession replaces the session token only if it still equals observed.
// It reports whether the swap happened.
func (r *AccountWriteRepository) StartSession(ctx context.Context, id uuid.UUID, observed, token string, now time.Time) (bool, error) {
	const query = `
		UPDATE accounts
		SET session_token = $3, last_login = $4, last_activity = $4, updated_at = NOW()
		WHERE id = $1 AND session_token = $2`
	return r.execAffected(ctx, query, id, observed, token, now)
}

// TouchSession refreshes last_activity while the token is current.
func (r *AccountWriteRepository) TouchSession(ctx context.Context, id uuid.UUID, token string, now time.Time) (bool, error) {
	const query = `
		UPDATE accounts SET last_activity = $3
		WHERE id = $1 AND session_token = $2 AND session_token <> ''`
	return r.execAffected(ctx, query, id, token, now)
}

// ExpireSession clears the token only if it still equals observed.
func (r *AccountWriteRepository) ExpireSession(ctx context.Context, id uuid.UUID, observed string) (bool, error) {
	const query = `
		UPDATE accounts SET session_token = '', updated_at = NOW()
		WHERE id = $1 AND session_token = $2 AND session_token <> ''`
	return r.execAffected(ctx, query, id, observed)
}

// ClearSession drops any session unconditionally.
func (r *AccountWriteRepository) ClearSession(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE accounts SET session_token = '', updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, query, id)
}

// ExpireIdleSessions clears every session whose last activity is before cutoff.
func (r *AccountWriteRepository) ExpireIdleSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `
		UPDATE accounts SET session_token = '', updated_at = NOW()
		WHERE session_token <> '' AND (last_activity IS NULL OR last_activity < $1)`

	res, err := executor(ctx, r.db).ExecContext(ctx, query, cutoff)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{cutoff}, rowsAffected, err)

	return rowsAffected, err
}

// UpdatePassword stores a new password hash and sets the forced-change flag.
func (r *AccountWriteRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string, forceChange bool) error {
	const query = `UPDATE accounts SET password_hash = $2, force_password_change = $3, updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, query, id, hash, forceChange)
}

func (r *AccountWriteRepository) UpdatePIN(ctx context.Context, id uuid.UUID, hash string) error {
	const query = `UPDATE accounts SET pin_hash = $2, updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, query, id, hash)
}

func (r *AccountWriteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	const query = `UPDATE accounts SET status = $2, updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, query, id, status)
}

// UpdateRoles sets the admin flag together with the status.
func (r *AccountWriteRepository) UpdateRoles(ctx context.Context, id uuid.UUID, isAdmin bool, status string) error {
	const query = `UPDATE accounts SET is_admin = $2, status = $3, updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, query, id, isAdmin, status)
}

// UpdateProfile replaces e-mail and profile fields. A taken e-mail yields ErrEmailTaken.
func (r *AccountWriteRepository) UpdateProfile(ctx context.Context, id uuid.UUID, email string, p models.Profile) error {
	const query = `
		UPDATE accounts SET
			email = $2, firstname = $3, lastname = $4, phone = $5, address_line = $6, postal_code = $7,
			region_code = $8, region_name = $9, province_code = $10, province_name = $11,
			city_code = $12, city_name = $13, barangay_code = $14, barangay_name = $15,
			updated_at = NOW()
		WHERE id = $1`
	err := r.exec(ctx, query, id, email, p.FirstName, p.LastName, p.Phone, p.AddressLine, p.PostalCode,
		p.RegionCode, p.RegionName, p.ProvinceCode, p.ProvinceName,
		p.CityCode, p.CityName, p.BarangayCode, p.BarangayName)
	if uniqueConstraint(err) == constraintEmail {
		return ErrEmailTaken
	}
	return err
}

func (r *AccountWriteRepository) exec(ctx context.Context, query string, args ...any) error {
	_, err := r.execAffected(ctx, query, args...)
	return err
}

func (r *AccountWriteRepository) execAffected(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, args, rowsAffected, err)

	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// uniqueConstraint returns the violated unique constraint name, or "".
func uniqueConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName
	}
	return ""
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
}
