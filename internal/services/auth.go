package services

//go:generate mockgen -source=auth.go -destination=mock_auth_test.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/bankcore/internal/logger"
	"github.com/sbilibin2017/bankcore/internal/models"
	"github.com/sbilibin2017/bankcore/internal/security"
)

// Error variables
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAlreadyLoggedIn    = errors.New("account is already logged in on another device")
	ErrPINAlreadySet      = errors.New("PIN already set, use PIN reset instead")
	ErrPINUnchanged       = errors.New("new PIN must differ from the current PIN")
	ErrInvalidResetToken  = errors.New("invalid or expired password reset token")
)

// AccountReader is the lookup side of the account directory.
type AccountReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.AccountDB, error)
	GetByUsername(ctx context.Context, username string) (*models.AccountDB, error)
	GetByEmail(ctx context.Context, email string) (*models.AccountDB, error)
}

// AccountCreator inserts new accounts.
type AccountCreator interface {
	Create(ctx context.Context, a *models.AccountDB) error
}

// CredentialWriter stores password and PIN hashes.
type CredentialWriter interface {
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string, forceChange bool) error
	UpdatePIN(ctx context.Context, id uuid.UUID, hash string) error
}

// Sessions is the part of the session registry used at login and logout.
type Sessions interface {
	Start(ctx context.Context, a *models.AccountDB) (string, error)
	End(ctx context.Context, a *models.AccountDB) error
	Expired(a *models.AccountDB, now time.Time) bool
	Expire(ctx context.Context, a *models.AccountDB) error
}

// TokenIssuer signs access and password-reset tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, accountID uuid.UUID, sessionID string) (string, error)
	GenerateResetToken(ctx context.Context, email string) (string, error)
	ParseResetToken(ctx context.Context, token string) (string, error)
}

// RegisterInput holds a self-registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Profile  models.Profile
}

// AuthService handles registration, login and credential changes.
type AuthService struct {
	reader      AccountReader
	creator     AccountCreator
	credentials CredentialWriter
	sessions    Sessions
	tokens      TokenIssuer
	now         func() time.Time
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	reader AccountReader,
	creator AccountCreator,
	credentials CredentialWriter,
	sessions Sessions,
	tokens TokenIssuer,
) *AuthService {
	return &AuthService{
		reader:      reader,
		creator:     creator,
		credentials: credentials,
		sessions:    sessions,
		tokens:      tokens,
		now:         utcNow,
	}
}

// Register creates a pending account with the default opening balance.
func (svc *AuthService) Register(ctx context.Context, in RegisterInput) (*models.AccountDB, error) {
	account := &models.AccountDB{
		Username: in.Username,
		Email:    in.Email,
		Balance:  models.DefaultOpeningBalance,
		Status:   models.StatusPending,
		Profile:  in.Profile,
	}
	if err := security.SetAccountPassword(account, in.Password); err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	if err := svc.creator.Create(ctx, account); err != nil {
		logger.Log.Errorw("failed to create account", "username", in.Username, "err", err)
		return nil, err
	}
	return account, nil
}

// Login checks the password, refuses a second live session and returns a signed
// access token bound to the new session.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, *models.AccountDB, error) {
	account, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get account", "err", err)
		return "", nil, err
	}
	if account == nil || !security.CheckAccountPassword(account, password) {
		logger.Log.Errorw("invalid credentials", "username", username)
		return "", nil, ErrInvalidCredentials
	}

	if account.SessionToken != "" {
		if !svc.sessions.Expired(account, svc.now()) {
			return "", nil, ErrAlreadyLoggedIn
		}
		if err := svc.sessions.Expire(ctx, account); err != nil {
			return "", nil, err
		}
	}

	sid, err := svc.sessions.Start(ctx, account)
	if errors.Is(err, ErrSessionConflict) {
		return "", nil, ErrAlreadyLoggedIn
	}
	if err != nil {
		return "", nil, err
	}

	token, err := svc.tokens.Generate(ctx, account.ID, sid)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", nil, err
	}
	return token, account, nil
}

// Logout ends the account's session.
func (svc *AuthService) Logout(ctx context.Context, account *models.AccountDB) error {
	return svc.sessions.End(ctx, account)
}

// SetPIN sets the first PIN of an account.
func (svc *AuthService) SetPIN(ctx context.Context, account *models.AccountDB, pin string) error {
	if account.PINHash != "" {
		return ErrPINAlreadySet
	}
	return svc.storePIN(ctx, account, pin)
}

// ResetPIN replaces the PIN after checking the current one.
func (svc *AuthService) ResetPIN(ctx context.Context, account *models.AccountDB, currentPIN, newPIN string) error {
	if !security.CheckAccountPIN(account, currentPIN) {
		return ErrIncorrectPIN
	}
	if currentPIN == newPIN {
		return ErrPINUnchanged
	}
	return svc.storePIN(ctx, account, newPIN)
}

func (svc *AuthService) storePIN(ctx context.Context, account *models.AccountDB, pin string) error {
	hash, err := security.HashPIN(pin)
	if err != nil {
		return err
	}
	if err := svc.credentials.UpdatePIN(ctx, account.ID, hash); err != nil {
		logger.Log.Errorw("failed to store PIN", "account_id", account.ID, "err", err)
		return err
	}
	account.PINHash = hash
	return nil
}

// ChangePassword verifies the current password and clears the forced-change flag.
func (svc *AuthService) ChangePassword(ctx context.Context, account *models.AccountDB, current, next string) error {
	if !security.CheckAccountPassword(account, current) {
		return ErrInvalidCredentials
	}
	return svc.storePassword(ctx, account, next)
}

func (svc *AuthService) storePassword(ctx context.Context, account *models.AccountDB, plain string) error {
	hash, err := security.HashPassword(plain)
	if err != nil {
		return err
	}
	if err := svc.credentials.UpdatePassword(ctx, account.ID, hash, false); err != nil {
		logger.Log.Errorw("failed to store password", "account_id", account.ID, "err", err)
		return err
	}
	account.PasswordHash = hash
	account.ForcePasswordChange = false
	return nil
}

// RequestPasswordReset returns a reset token for a known e-mail and "" for an
// unknown one, so callers cannot tell the two apart.
func (svc *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	account, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if account == nil {
		logger.Log.Infow("password reset requested for unknown email", "email", email)
		return "", nil
	}
	token, err := svc.tokens.GenerateResetToken(ctx, account.Email)
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return token, nil
}

// ResetPassword sets a new password for the account a reset token was issued to.
func (svc *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	email, err := svc.tokens.ParseResetToken(ctx, token)
	if err != nil {
		return ErrInvalidResetToken
	}
	account, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrInvalidResetToken
	}
	return svc.storePassword(ctx, account, password)
}

// SeedAccountNumber is the account number of the seeded admin.
const SeedAccountNumber = "0000000001"

// SeedAdmin creates the default admin unless an account named username exists.
// It reports whether an account was created.
func (svc *AuthService) SeedAdmin(ctx context.Context, username, email, password string) (bool, error) {
	existing, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	admin := &models.AccountDB{
		Username:      username,
		Email:         email,
		AccountNumber: SeedAccountNumber,
		Status:        models.StatusActive,
		IsAdmin:       true,
	}
	if err := security.SetAccountPassword(admin, password); err != nil {
		return false, err
	}
	if err := svc.creator.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	logger.Log.Infow("created default admin", "username", username, "account_number", admin.AccountNumber)
	return true, nil
}
