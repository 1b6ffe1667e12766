package handlers

//go:generate mockgen -source=account.go -destination=mock_account_test.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/bankcore/internal/middlewares"
	"github.com/sbilibin2017/bankcore/internal/models"
	"github.com/sbilibin2017/bankcore/internal/services"
)

// HistoryReader returns the most recent ledger rows of an account.
type HistoryReader interface {
	RecentTransactions(ctx context.Context, accountID uuid.UUID, limit int) ([]models.TransactionDB, error)
}

// AccountOverviewResponse is the caller's account with recent activity
// swagger:model AccountOverviewResponse
type AccountOverviewResponse struct {
	Account      AccountResponse       `json:"account"`
	Transactions []TransactionResponse `json:"transactions"`
}

// NewAccountHandler returns an HTTP handler with the caller's account and last transactions.
// @Summary Account overview
// @Description Balance, profile and the ten most recent transfers and deposits sent or received.
// @Tags account
// @Produce json
// @Success 200 {object} handlers.AccountOverviewResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse "Account not active, PIN not set or password change required"
// @Router /account [get]
// @Security BearerAuth
func NewAccountHandler(history HistoryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := middlewares.AccountFromContext(r.Context())

		rows, err := history.RecentTransactions(r.Context(), account.ID, services.DefaultHistoryLimit)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, AccountOverviewResponse{
			Account:      newAccountResponse(account),
			Transactions: newTransactionResponses(rows),
		})
	}
}
