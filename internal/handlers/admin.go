package handlers

//go:generate mockgen -source=admin.go -destination=mock_admin_test.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/bankcore/internal/middlewares"
	"github.com/sbilibin2017/bankcore/internal/models"
	"github.com/sbilibin2017/bankcore/internal/repositories"
	"github.com/sbilibin2017/bankcore/internal/services"
	"github.com/sbilibin2017/bankcore/internal/validation"
	"github.com/shopspring/decimal"
)

// UserAdministrator is the admin side of the account directory.
type UserAdministrator interface {
	ListUsers(ctx context.Context) ([]models.AccountDB, error)
	CreateAccount(ctx context.Context, actor *models.AccountDB, in services.NewAccountInput) (*models.AccountDB, error)
	SetStatus(ctx context.Context, actor *models.AccountDB, id uuid.UUID, status string) (*models.AccountDB, error)
	ForceLogout(ctx context.Context, actor *models.AccountDB, id uuid.UUID) error
	EditProfile(ctx context.Context, actor *models.AccountDB, id uuid.UUID, edit services.ProfileEdit) (*models.AccountDB, error)
}

// Depositor credits accounts.
type Depositor interface {
	Deposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, actingAdminID uuid.UUID) (*models.TransactionDB, error)
}

// NewListUsersHandler returns an HTTP handler listing plain user accounts.
// @Summary List users
// @Tags admin
// @Produce json
// @Success 200 {array} handlers.AccountResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Router /admin/users [get]
// @Security BearerAuth
func NewListUsersHandler(svc UserAdministrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newAccountResponses(users))
	}
}

// CreateAccountRequest represents the JSON body for an account created by staff
// swagger:model CreateAccountRequest
type CreateAccountRequest struct {
	// default: pedro
	Username string `json:"username"`
	// default: pedro@example.com
	Email string `json:"email"`
	// Temporary password, changed at first login
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (req CreateAccountRequest) pipeline() validation.Pipeline {
	return validation.Pipeline{
		{Name: "username", Value: req.Username, Rules: []validation.Rule{
			validation.Required("Username is required"),
			validation.MinLength(4),
			validation.MaxLength(20),
		}},
		{Name: "email", Value: req.Email, Rules: []validation.Rule{
			validation.Required("Email is required"),
			validation.Email(),
		}},
		{Name: "password", Value: req.Password, Rules: passwordRules()},
		{Name: "confirm_password", Value: req.ConfirmPassword, Rules: []validation.Rule{
			validation.Required("Please repeat the password"),
			validation.Equals(req.Password, "Passwords must match"),
		}},
	}
}

func (req CreateAccountRequest) input() services.NewAccountInput {
	return services.NewAccountInput{Username: req.Username, Email: req.Email, Password: req.Password}
}

// NewCreateAccountHandler returns an HTTP handler for admin-created accounts.
// @Summary Create a user account
// @Description The account is active at once and must change its password at first login.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body handlers.CreateAccountRequest true "Account"
// @Success 201 {object} handlers.AccountResponse
// @Failure 409 {object} handlers.ErrorResponse "Username or email already exists"
// @Failure 422 {object} handlers.ErrorResponse "Validation failed"
// @Router /admin/users [post]
// @Security BearerAuth
func NewCreateAccountHandler(svc UserAdministrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAccountRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := req.pipeline().Validate(); err != nil {
			writeError(w, err)
			return
		}

		account, err := svc.CreateAccount(r.Context(), middlewares.AccountFromContext(r.Context()), req.input())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, newAccountResponse(account))
	}
}

// NewSetStatusHandler returns an HTTP handler that moves the account in the
// path to status. Used for activation and deactivation.
// @Summary Activate or deactivate an account
// @Tags admin
// @Produce json
// @Param id path string true "Account id"
// @Success 200 {object} handlers.AccountResponse
// @Failure 403 {object} handlers.ErrorResponse "Permission denied"
// @Failure 404 {object} handlers.ErrorResponse "Account not found"
// @Router /admin/users/{id}/activate [post]
// @Router /admin/users/{id}/deactivate [post]
// @Security BearerAuth
func NewSetStatusHandler(svc UserAdministrator, status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, err)
			return
		}

		account, err := svc.SetStatus(r.Context(), middlewares.AccountFromContext(r.Context()), id, status)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newAccountResponse(account))
	}
}

// NewForceLogoutHandler returns an HTTP handler that ends another account's session.
// @Summary Force logout
// @Tags admin
// @Produce json
// @Param id path string true "Account id"
// @Success 200 {object} handlers.MessageResponse
// @Failure 403 {object} handlers.ErrorResponse "Permission denied"
// @Failure 404 {object} handlers.ErrorResponse "Account not found"
// @Router /admin/users/{id}/force-logout [post]
// @Security BearerAuth
func NewForceLogoutHandler(svc UserAdministrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := svc.ForceLogout(r.Context(), middlewares.AccountFromContext(r.Context()), id); err != nil {
			writeError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "User has been logged out")
	}
}

// EditUserRequest represents the JSON body for an admin profile edit
// swagger:model EditUserRequest
type EditUserRequest struct {
	Email  string `json:"email"`
	Status string `json:"status"`
	ProfileRequest
}

// NewEditUserHandler returns an HTTP handler for admin profile edits.
// @Summary Edit an account
// @Description Updates e-mail, status and profile. Changed fields are recorded in a user_edit transaction.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Account id"
// @Param request body handlers.EditUserRequest true "Profile"
// @Success 200 {object} handlers.AccountResponse
// @Failure 403 {object} handlers.ErrorResponse "Permission denied"
// @Failure 409 {object} handlers.ErrorResponse "Email already in use"
// @Failure 422 {object} handlers.ErrorResponse "Validation failed"
// @Router /admin/users/{id} [put]
// @Security BearerAuth
func NewEditUserHandler(svc UserAdministrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, err)
			return
		}

		var req EditUserRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		err = validation.Pipeline{
			{Name: "email", Value: req.Email, Rules: []validation.Rule{validation.Required("Email is required"), validation.Email()}},
			{Name: "status", Value: req.Status, Rules: []validation.Rule{
				validation.OneOf(models.StatusActive, models.StatusPending, models.StatusDeactivated),
			}},
		}.Validate()
		if err != nil {
			writeError(w, err)
			return
		}

		account, err := svc.EditProfile(r.Context(), middlewares.AccountFromContext(r.Context()), id, services.ProfileEdit{
			Email:   req.Email,
			Status:  req.Status,
			Profile: req.profile(),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newAccountResponse(account))
	}
}

// DepositRequest represents the JSON body for an admin deposit
// swagger:model DepositRequest
type DepositRequest struct {
	// default: 0123456789
	AccountNumber string `json:"account_number"`
	// default: 1000.00
	Amount string `json:"amount"`
	// Admin PIN
	// default: 123456
	PIN string `json:"pin"`
}

// NewDepositHandler returns an HTTP handler for admin deposits.
// @Summary Deposit funds
// @Description Credits an active account. The acting admin is recorded as the sender. The admin PIN is checked first.
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body handlers.DepositRequest true "Deposit"
// @Success 200 {object} handlers.TransactionResponse
// @Failure 400 {object} handlers.PINErrorResponse "Incorrect PIN or inactive account"
// @Failure 404 {object} handlers.ErrorResponse "No account with that number"
// @Failure 423 {object} handlers.PINErrorResponse "PIN reset required"
// @Router /admin/deposit [post]
// @Security BearerAuth
func NewDepositHandler(svc Depositor, finder RecipientFinder, attempts AttemptStore, verifier PINVerifier) http.HandlerFunc {
	gate := pinGate{attempts: attempts, verifier: verifier, flow: repositories.FlowDeposit}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		admin := middlewares.AccountFromContext(ctx)

		var req DepositRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		err := validation.Pipeline{
			{Name: "account_number", Value: req.AccountNumber, Rules: []validation.Rule{validation.Required("Account number is required")}},
			{Name: "amount", Value: req.Amount, Rules: []validation.Rule{validation.Required("Amount is required"), validation.PositiveAmount(), validation.MaxAmount(models.MaxMoney)}},
			{Name: "pin", Value: req.PIN, Rules: pinRules("PIN")},
		}.Validate()
		if err != nil {
			writeError(w, err)
			return
		}

		if !gate.verify(w, r, admin, req.PIN) {
			return
		}

		target, err := finder.GetByAccountNumber(ctx, req.AccountNumber)
		if err != nil {
			writeError(w, err)
			return
		}
		if target == nil {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "No account with that number"})
			return
		}

		amount, _ := decimal.NewFromString(req.Amount)
		record, err := svc.Deposit(ctx, target.ID, amount, admin.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newTransactionResponse(record))
	}
}
