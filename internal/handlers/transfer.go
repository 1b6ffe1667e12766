package handlers

//go:generate mockgen -source=transfer.go -destination=mock_transfer_test.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/bankcore/internal/middlewares"
	"github.com/sbilibin2017/bankcore/internal/models"
	"github.com/sbilibin2017/bankcore/internal/repositories"
	"github.com/sbilibin2017/bankcore/internal/validation"
	"github.com/shopspring/decimal"
)

// Recipient lookup modes.
const (
	ByUsername = "username"
	ByAccount  = "account"
)

// RecipientFinder looks up the other side of a transfer or deposit.
type RecipientFinder interface {
	GetByUsername(ctx context.Context, username string) (*models.AccountDB, error)
	GetByAccountNumber(ctx context.Context, number string) (*models.AccountDB, error)
}

// Transferer moves money between accounts.
type Transferer interface {
	Transfer(ctx context.Context, senderID, receiverID uuid.UUID, amount decimal.Decimal) (*models.TransactionDB, error)
}

// TransferRequest represents the JSON body for a transfer
// swagger:model TransferRequest
type TransferRequest struct {
	// username or account
	// default: username
	TransferType string `json:"transfer_type"`

	// default: maria
	RecipientUsername string `json:"recipient_username"`

	// default: 0123456789
	RecipientAccount string `json:"recipient_account"`

	// default: 500.00
	Amount string `json:"amount"`

	// default: 123456
	PIN string `json:"pin"`
}

func (req TransferRequest) validate() error {
	if req.TransferType == "" {
		req.TransferType = ByUsername
	}
	fields := validation.Pipeline{
		{Name: "transfer_type", Value: req.TransferType, Rules: []validation.Rule{validation.OneOf(ByUsername, ByAccount)}},
		{Name: "amount", Value: req.Amount, Rules: []validation.Rule{
			validation.Required("Amount is required"),
			validation.PositiveAmount(),
			validation.MaxAmount(models.MaxMoney),
		}},
		{Name: "pin", Value: req.PIN, Rules: pinRules("PIN")},
	}
	switch req.TransferType {
	case ByAccount:
		fields = append(fields, validation.Field{Name: "recipient_account", Value: req.RecipientAccount, Rules: []validation.Rule{
			validation.Required("Account number is required when transferring by account number"),
		}})
	default:
		fields = append(fields, validation.Field{Name: "recipient_username", Value: req.RecipientUsername, Rules: []validation.Rule{
			validation.Required("Username is required when transferring by username"),
		}})
	}
	return fields.Validate()
}

// TransferResponse reports a completed transfer
// swagger:model TransferResponse
type TransferResponse struct {
	Message     string              `json:"message"`
	Transaction TransactionResponse `json:"transaction"`
}

// NewTransferHandler returns an HTTP handler for transfers.
// @Summary Transfer money
// @Description Moves money to another active account found by username or account number. The PIN is checked first; three wrong PINs require a PIN reset.
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body handlers.TransferRequest true "Transfer"
// @Success 200 {object} handlers.TransferResponse
// @Failure 400 {object} handlers.PINErrorResponse "Incorrect PIN or business rule violated"
// @Failure 404 {object} handlers.ErrorResponse "Recipient not found"
// @Failure 423 {object} handlers.PINErrorResponse "PIN reset required"
// @Failure 422 {object} handlers.ErrorResponse "Validation failed"
// @Router /transfer [post]
// @Security BearerAuth
func NewTransferHandler(svc Transferer, finder RecipientFinder, attempts AttemptStore, verifier PINVerifier) http.HandlerFunc {
	gate := pinGate{attempts: attempts, verifier: verifier, flow: repositories.FlowTransfer}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		account := middlewares.AccountFromContext(ctx)

		var req TransferRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, err)
			return
		}

		if !gate.verify(w, r, account, req.PIN) {
			return
		}

		var (
			recipient *models.AccountDB
			err       error
		)
		if req.TransferType == ByAccount {
			recipient, err = finder.GetByAccountNumber(ctx, req.RecipientAccount)
		} else {
			recipient, err = finder.GetByUsername(ctx, req.RecipientUsername)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		if recipient == nil {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Recipient not found"})
			return
		}

		amount, _ := decimal.NewFromString(req.Amount)
		record, err := svc.Transfer(ctx, account.ID, recipient.ID, amount)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, TransferResponse{
			Message:     "Transfer to " + recipient.Username + " completed",
			Transaction: newTransactionResponse(record),
		})
	}
}
