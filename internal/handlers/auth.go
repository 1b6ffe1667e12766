package handlers

//go:generate mockgen -source=auth.go -destination=mock_auth_test.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/bankcore/internal/logger"
	"github.com/sbilibin2017/bankcore/internal/middlewares"
	"github.com/sbilibin2017/bankcore/internal/models"
	"github.com/sbilibin2017/bankcore/internal/services"
	"github.com/sbilibin2017/bankcore/internal/validation"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.AccountDB, error)
}

// DivisionNamer resolves division codes to names.
type DivisionNamer interface {
	Name(ctx context.Context, kind, code string) string
}

// Authenticator logs accounts in.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, *models.AccountDB, error)
}

// Logouter ends the caller's session.
type Logouter interface {
	Logout(ctx context.Context, account *models.AccountDB) error
}

// PasswordChanger changes the caller's password.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, account *models.AccountDB, current, next string) error
}

// PasswordResetter issues and redeems password reset tokens.
type PasswordResetter interface {
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password string) error
}

// ResetNotifier delivers a reset token to its owner.
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogResetNotifier writes reset tokens to the log. Used when no mail
// delivery is configured.
type LogResetNotifier struct{}

func (LogResetNotifier) SendPasswordReset(_ context.Context, email, token string) error {
	logger.Log.Infow("password reset token issued", "email", email, "token", token)
	return nil
}

// RegisterRequest represents the JSON body for self-registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// default: juan
	Username string `json:"username"`

	// Email
	// required: true
	// default: juan@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: Secret1!
	Password string `json:"password"`

	// Repeat password
	// required: true
	// default: Secret1!
	ConfirmPassword string `json:"confirm_password"`

	ProfileRequest
}

func passwordRules() []validation.Rule {
	return append([]validation.Rule{validation.Required("Password is required")}, validation.PasswordStrength()...)
}

func (req RegisterRequest) validate() error {
	return validation.Pipeline{
		{Name: "username", Value: req.Username, Rules: []validation.Rule{
			validation.Required("Username is required"),
			validation.MinLength(3),
			validation.MaxLength(64),
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
	}.Validate()
}

// resolveProfile fills the division names of p.
func resolveProfile(ctx context.Context, divisions DivisionNamer, p models.Profile) models.Profile {
	p.RegionName = divisions.Name(ctx, models.DivisionRegion, p.RegionCode)
	p.ProvinceName = divisions.Name(ctx, models.DivisionProvince, p.ProvinceCode)
	p.CityName = divisions.Name(ctx, models.DivisionCity, p.CityCode)
	p.BarangayName = divisions.Name(ctx, models.DivisionBarangay, p.BarangayCode)
	return p
}

// NewRegisterHandler returns an HTTP handler for self-registration.
// @Summary Register a new account
// @Description Creates a pending account with the opening balance. An administrator must activate it before money can move.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "Registration request"
// @Success 201 {object} handlers.AccountResponse "Account registered"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 409 {object} handlers.ErrorResponse "Username or email already exists"
// @Failure 422 {object} handlers.ErrorResponse "Validation failed"
// @Router /register [post]
func NewRegisterHandler(svc Registerer, divisions DivisionNamer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, err)
			return
		}

		account, err := svc.Register(r.Context(), services.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Profile:  resolveProfile(r.Context(), divisions, req.profile()),
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, newAccountResponse(account))
	}
}

// LoginRequest represents the JSON body for login
// swagger:model LoginRequest
type LoginRequest struct {
	// required: true
	// default: juan
	Username string `json:"username"`

	// required: true
	// default: Secret1!
	Password string `json:"password"`
}

// LoginResponse carries the access token
// swagger:model LoginResponse
type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

// NewLoginHandler returns an HTTP handler for login.
// @Summary Log in
// @Description Verifies the password and starts the single session of the account. A second login is refused while a session is live.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Credentials"
// @Success 200 {object} handlers.LoginResponse
// @Failure 401 {object} handlers.ErrorResponse "Invalid username or password"
// @Failure 409 {object} handlers.ErrorResponse "Already logged in elsewhere"
// @Router /login [post]
func NewLoginHandler(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		err := validation.Pipeline{
			{Name: "username", Value: req.Username, Rules: []validation.Rule{validation.Required("Username is required")}},
			{Name: "password", Value: req.Password, Rules: []validation.Rule{validation.Required("Password is required")}},
		}.Validate()
		if err != nil {
			writeError(w, err)
			return
		}

		token, account, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{Token: token, Account: newAccountResponse(account)})
	}
}

// NewLogoutHandler returns an HTTP handler that ends the caller's session.
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.MessageResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Router /logout [post]
// @Security BearerAuth
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := middlewares.AccountFromContext(r.Context())
		if err := svc.Logout(r.Context(), account); err != nil {
			writeError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "You have been logged out")
	}
}

// ChangePasswordRequest represents the JSON body for a password change
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// NewChangePasswordHandler returns an HTTP handler for password changes.
// @Summary Change password
// @Description Verifies the current password. Clears the forced password change flag.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.ChangePasswordRequest true "Passwords"
// @Success 200 {object} handlers.MessageResponse
// @Failure 401 {object} handlers.ErrorResponse "Current password is wrong"
// @Failure 422 {object} handlers.ErrorResponse "Validation failed"
// @Router /password/change [post]
// @Security BearerAuth
func NewChangePasswordHandler(svc PasswordChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChangePasswordRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		err := validation.Pipeline{
			{Name: "current_password", Value: req.CurrentPassword, Rules: []validation.Rule{
				validation.Required("Current password is required"),
			}},
			{Name: "new_password", Value: req.NewPassword, Rules: passwordRules()},
			{Name: "confirm_password", Value: req.ConfirmPassword, Rules: []validation.Rule{
				validation.Equals(req.NewPassword, "Passwords must match"),
			}},
		}.Validate()
		if err != nil {
			writeError(w, err)
			return
		}

		account := middlewares.AccountFromContext(r.Context())
		if err := svc.ChangePassword(r.Context(), account, req.CurrentPassword, req.NewPassword); err != nil {
			writeError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Your password has been changed")
	}
}

// ResetRequest represents the JSON body for a password reset request
// swagger:model ResetRequest
type ResetRequest struct {
	Email string `json:"email"`
}

// NewPasswordResetRequestHandler returns an HTTP handler that issues reset tokens.
// @Summary Request a password reset
// @Description Always answers the same way so that registered e-mails cannot be enumerated.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.ResetRequest true "E-mail"
// @Success 200 {object} handlers.MessageResponse
// @Failure 422 {object} handlers.ErrorResponse "Validation failed"
// @Router /password/reset-request [post]
func NewPasswordResetRequestHandler(svc PasswordResetter, notifier ResetNotifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		err := validation.Pipeline{
			{Name: "email", Value: req.Email, Rules: []validation.Rule{validation.Required("Email is required"), validation.Email()}},
		}.Validate()
		if err != nil {
			writeError(w, err)
			return
		}

		token, err := svc.RequestPasswordReset(r.Context(), req.Email)
		if err != nil {
			writeError(w, err)
			return
		}
		if token != "" {
			if err := notifier.SendPasswordReset(r.Context(), req.Email, token); err != nil {
				logger.Log.Errorw("failed to deliver reset token", "email", req.Email, "err", err)
			}
		}
		writeMessage(w, http.StatusOK, "Check your email for the instructions to reset your password")
	}
}

// ResetPasswordRequest represents the JSON body for a password reset
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// NewPasswordResetHandler returns an HTTP handler that redeems reset tokens.
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} handlers.MessageResponse
// @Failure 401 {object} handlers.ErrorResponse "Invalid or expired token"
// @Failure 422 {object} handlers.ErrorResponse "Validation failed"
// @Router /password/reset [post]
func NewPasswordResetHandler(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		err := validation.Pipeline{
			{Name: "token", Value: req.Token, Rules: []validation.Rule{validation.Required("Token is required")}},
			{Name: "password", Value: req.Password, Rules: passwordRules()},
			{Name: "confirm_password", Value: req.ConfirmPassword, Rules: []validation.Rule{
				validation.Required("Please repeat the password"),
				validation.Equals(req.Password, "Passwords must match"),
			}},
		}.Validate()
		if err != nil {
			writeError(w, err)
			return
		}

		if err := svc.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
			writeError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Your password has been reset")
	}
}
