package handlers

//go:generate mockgen -source=manager.go -destination=mock_manager_test.go -package=handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/bankcore/internal/middlewares"
	"github.com/sbilibin2017/bankcore/internal/models"
	"github.com/sbilibin2017/bankcore/internal/repositories"
	"github.com/sbilibin2017/bankcore/internal/services"
	"github.com/sbilibin2017/bankcore/internal/validation"
	"github.com/shopspring/decimal"
)

// DateLayout is the format of the from and to search parameters.
const DateLayout = "2006-01-02"

// AdminManager is the manager side of the account directory.
type AdminManager interface {
	ListAdmins(ctx context.Context) ([]models.AccountDB, error)
	CreateAdmin(ctx context.Context, actor *models.AccountDB, in services.NewAccountInput) (*models.AccountDB, error)
	SetAdmin(ctx context.Context, actor *models.AccountDB, id uuid.UUID, promote bool) (*models.AccountDB, error)
	SearchTransactions(ctx context.Context, actor *models.AccountDB, filter models.TransactionFilter) ([]models.TransactionDB, error)
}

// NewListAdminsHandler returns an HTTP handler listing admin accounts.
// @Summary List admins
// @Tags manager
// @Produce json
// @Success 200 {array} handlers.AccountResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Router /manager/admins [get]
// @Security BearerAuth
func NewListAdminsHandler(svc AdminManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admins, err := svc.ListAdmins(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newAccountResponses(admins))
	}
}

// CreateAdminRequest represents the JSON body for a manager-created admin
// swagger:model CreateAdminRequest
type CreateAdminRequest struct {
	CreateAccountRequest
	// Manager PIN
	PIN string `json:"pin"`
}

// NewCreateAdminHandler returns an HTTP handler that creates an admin account.
// @Summary Create an admin
// @Tags manager
// @Accept json
// @Produce json
// @Param request body handlers.CreateAdminRequest true "Admin account"
// @Success 201 {object} handlers.AccountResponse
// @Failure 400 {object} handlers.PINErrorResponse "Incorrect PIN"
// @Failure 409 {object} handlers.ErrorResponse "Username or email already exists"
// @Failure 423 {object} handlers.PINErrorResponse "PIN reset required"
// @Router /manager/admins [post]
// @Security BearerAuth
func NewCreateAdminHandler(svc AdminManager, attempts AttemptStore, verifier PINVerifier) http.HandlerFunc {
	gate := pinGate{attempts: attempts, verifier: verifier, flow: repositories.FlowManager}

	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAdminRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		fields := append(req.pipeline(), validation.Field{Name: "pin", Value: req.PIN, Rules: pinRules("PIN")})
		if err := fields.Validate(); err != nil {
			writeError(w, err)
			return
		}

		manager := middlewares.AccountFromContext(r.Context())
		if !gate.verify(w, r, manager, req.PIN) {
			return
		}

		account, err := svc.CreateAdmin(r.Context(), manager, req.input())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, newAccountResponse(account))
	}
}

// RoleChangeRequest represents the JSON body of a promotion or demotion
// swagger:model RoleChangeRequest
type RoleChangeRequest struct {
	// Manager PIN
	// default: 123456
	PIN string `json:"pin"`
}

// NewSetAdminHandler returns an HTTP handler that promotes or demotes the
// account in the path.
// @Summary Promote or demote an admin
// @Tags manager
// @Accept json
// @Produce json
// @Param id path string true "Account id"
// @Param request body handlers.RoleChangeRequest true "Manager PIN"
// @Success 200 {object} handlers.AccountResponse
// @Failure 400 {object} handlers.PINErrorResponse "Incorrect PIN"
// @Failure 404 {object} handlers.ErrorResponse "Account not found"
// @Failure 423 {object} handlers.PINErrorResponse "PIN reset required"
// @Router /manager/admins/{id}/promote [post]
// @Router /manager/admins/{id}/demote [post]
// @Security BearerAuth
func NewSetAdminHandler(svc AdminManager, attempts AttemptStore, verifier PINVerifier, promote bool) http.HandlerFunc {
	gate := pinGate{attempts: attempts, verifier: verifier, flow: repositories.FlowManager}

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, err)
			return
		}

		var req RoleChangeRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := (validation.Pipeline{{Name: "pin", Value: req.PIN, Rules: pinRules("PIN")}}).Validate(); err != nil {
			writeError(w, err)
			return
		}

		manager := middlewares.AccountFromContext(r.Context())
		if !gate.verify(w, r, manager, req.PIN) {
			return
		}

		account, err := svc.SetAdmin(r.Context(), manager, id, promote)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newAccountResponse(account))
	}
}

// parseFilter reads the search criteria from the query string.
func parseFilter(q url.Values) (models.TransactionFilter, error) {
	filter := models.TransactionFilter{
		Type:   q.Get("type"),
		Role:   q.Get("role"),
		Search: q.Get("q"),
	}
	errs := validation.Errors{}

	if v := q.Get("account_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			errs["account_id"] = "Invalid account id"
		} else {
			filter.AccountID = &id
		}
	}
	if filter.Role != "" && filter.Role != "sender" && filter.Role != "receiver" {
		errs["role"] = "Must be one of: sender, receiver"
	}

	dates := map[string]**time.Time{"from": &filter.From, "to": &filter.To}
	for name, dst := range dates {
		v := q.Get(name)
		if v == "" {
			continue
		}
		t, err := time.Parse(DateLayout, v)
		if err != nil {
			errs[name] = "Date must look like " + DateLayout
			continue
		}
		if name == "to" {
			// inclusive of the whole day
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		*dst = &t
	}

	amounts := map[string]**decimal.Decimal{"min": &filter.MinAmount, "max": &filter.MaxAmount}
	for name, dst := range amounts {
		v := q.Get(name)
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			errs[name] = "Invalid amount"
			continue
		}
		*dst = &d
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs["limit"] = "Limit must be a positive number"
		} else {
			filter.Limit = n
		}
	}

	if len(errs) > 0 {
		return filter, errs
	}
	return filter, nil
}

// NewSearchTransactionsHandler returns an HTTP handler for the manager ledger search.
// @Summary Search transactions
// @Tags manager
// @Produce json
// @Param type query string false "Transaction type"
// @Param account_id query string false "Account id"
// @Param role query string false "sender or receiver"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD), inclusive"
// @Param min query string false "Minimum amount"
// @Param max query string false "Maximum amount"
// @Param q query string false "Text search over ids, usernames and details"
// @Param limit query int false "Row limit"
// @Success 200 {array} handlers.TransactionResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 422 {object} handlers.ErrorResponse "Invalid filter"
// @Router /manager/transactions [get]
// @Security BearerAuth
func NewSearchTransactionsHandler(svc AdminManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r.URL.Query())
		if err != nil {
			writeError(w, err)
			return
		}

		rows, err := svc.SearchTransactions(r.Context(), middlewares.AccountFromContext(r.Context()), filter)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newTransactionResponses(rows))
	}
}
