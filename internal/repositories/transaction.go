package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/bankcore/internal/models"
)

const transactionColumns = `id, transaction_id, sender_id, receiver_id, amount, transaction_type, details, created_at`

// defaultSearchLimit is the row count of manager searches without a limit, and the cap of those with one.
const defaultSearchLimit = 200

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern matches s literally anywhere in an ILIKE operand.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// TransactionWriteRepository appends ledger rows. Rows are never updated or deleted.
type TransactionWriteRepository struct {
	db *sqlx.DB
}

func NewTransactionWriteRepository(db *sqlx.DB) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db}
}

// Create inserts t and fills its surrogate id.
func (r *TransactionWriteRepository) Create(ctx context.Context, t *models.TransactionDB) error {
	const query = `
		INSERT INTO transactions (transaction_id, sender_id, receiver_id, amount, transaction_type, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	args := []any{t.TransactionID, t.SenderID, t.ReceiverID, t.Amount, t.TransactionType, t.Details, t.CreatedAt}

	err := sqlx.GetContext(ctx, executor(ctx, r.db), &t.ID, query, args...)

	logQuery(query, args, t.ID, err)

	return err
}

// TransactionReadRepository serves the manager transaction search.
type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// Search returns rows matching every non-zero criterion of f, newest first.
func (r *TransactionReadRepository) Search(ctx context.Context, f models.TransactionFilter) ([]models.TransactionDB, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Type != "" {
		where = append(where, "t.transaction_type = "+arg(f.Type))
	}
	if f.AccountID != nil {
		p := arg(*f.AccountID)
		switch f.Role {
		case "sender":
			where = append(where, "t.sender_id = "+p)
		case "receiver":
			where = append(where, "t.receiver_id = "+p)
		default:
			where = append(where, "(t.sender_id = "+p+" OR t.receiver_id = "+p+")")
		}
	}
	if f.From != nil {
		where = append(where, "t.created_at >= "+arg(*f.From))
	}
	if f.To != nil {
		where = append(where, "t.created_at <= "+arg(*f.To))
	}
	if f.MinAmount != nil {
		where = append(where, "t.amount >= "+arg(*f.MinAmount))
	}
	if f.MaxAmount != nil {
		where = append(where, "t.amount <= "+arg(*f.MaxAmount))
	}
	if f.Search != "" {
		p := arg(containsPattern(f.Search)) + ` ESCAPE '\'`
		where = append(where, "(s.username ILIKE "+p+" OR rc.username ILIKE "+p+
			" OR s.account_number ILIKE "+p+" OR rc.account_number ILIKE "+p+
			" OR t.details ILIKE "+p+" OR t.transaction_id ILIKE "+p+")")
	}

	limit := f.Limit
	if limit <= 0 || limit > defaultSearchLimit {
		limit = defaultSearchLimit
	}

	query := `
		SELECT t.id, t.transaction_id, t.sender_id, t.receiver_id, t.amount, t.transaction_type, t.details, t.created_at
		FROM transactions t
		JOIN accounts s ON s.id = t.sender_id
		JOIN accounts rc ON rc.id = t.receiver_id`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY t.created_at DESC, t.id DESC\n\t\tLIMIT " + arg(limit)

	var txs []models.TransactionDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &txs, query, args...)

	logQuery(query, args, len(txs), err)

	return txs, err
}
