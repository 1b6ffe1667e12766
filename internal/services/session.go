package services

//go:generate mockgen -source=session.go -destination=mock_session_test.go -package=services

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/bankcore/internal/logger"
	"github.com/sbilibin2017/bankcore/internal/models"
)

// DefaultIdleTimeout ends sessions without activity for this long.
const DefaultIdleTimeout = 30 * time.Minute

// ErrSessionConflict is returned when the stored session token changed under the caller.
var ErrSessionConflict = errors.New("session changed concurrently")

// SessionStore persists session tokens with compare-and-set semantics.
type SessionStore interface {
	StartSession(ctx context.Context, id uuid.UUID, observed, token string, now time.Time) (bool, error)
	TouchSession(ctx context.Context, id uuid.UUID, token string, now time.Time) (bool, error)
	ExpireSession(ctx context.Context, id uuid.UUID, observed string) (bool, error)
	ClearSession(ctx context.Context, id uuid.UUID) error
	ExpireIdleSessions(ctx context.Context, cutoff time.Time) (int64, error)
}

// SessionRegistry keeps at most one live session per account.
type SessionRegistry struct {
	store       SessionStore
	idleTimeout time.Duration
	now         func() time.Time
	newToken    func() string
}

func NewSessionRegistry(store SessionStore, idleTimeout time.Duration) *SessionRegistry {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &SessionRegistry{
		store:       store,
		idleTimeout: idleTimeout,
		now:         utcNow,
		newToken:    uuid.NewString,
	}
}

// Start issues a fresh token, replacing whatever token the account had when it was read.
func (r *SessionRegistry) Start(ctx context.Context, a *models.AccountDB) (string, error) {
	token := r.newToken()
	now := r.now()

	ok, err := r.store.StartSession(ctx, a.ID, a.SessionToken, token, now)
	if err != nil {
		logger.Log.Errorw("failed to start session", "account_id", a.ID, "error", err)
		return "", err
	}
	if !ok {
		return "", ErrSessionConflict
	}

	a.SessionToken = token
	a.LastLogin = &now
	a.LastActivity = &now
	return token, nil
}

// Validate compares token against the stored one. No stored token never validates.
func (r *SessionRegistry) Validate(a *models.AccountDB, token string) bool {
	if a.SessionToken == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a.SessionToken), []byte(token)) == 1
}

// End clears the session unconditionally.
func (r *SessionRegistry) End(ctx context.Context, a *models.AccountDB) error {
	if err := r.store.ClearSession(ctx, a.ID); err != nil {
		logger.Log.Errorw("failed to end session", "account_id", a.ID, "error", err)
		return err
	}
	a.SessionToken = ""
	return nil
}

// Touch records activity for the current session.
func (r *SessionRegistry) Touch(ctx context.Context, a *models.AccountDB) error {
	now := r.now()
	ok, err := r.store.TouchSession(ctx, a.ID, a.SessionToken, now)
	if err != nil {
		logger.Log.Errorw("failed to touch session", "account_id", a.ID, "error", err)
		return err
	}
	if !ok {
		return ErrSessionConflict
	}
	a.LastActivity = &now
	return nil
}

// Expired reports whether the idle timeout elapsed since the last activity.
func (r *SessionRegistry) Expired(a *models.AccountDB, now time.Time) bool {
	if a.LastActivity == nil {
		return false
	}
	return now.Sub(*a.LastActivity) > r.idleTimeout
}

// Expire clears the session if it is still the one the caller observed.
func (r *SessionRegistry) Expire(ctx context.Context, a *models.AccountDB) error {
	if _, err := r.store.ExpireSession(ctx, a.ID, a.SessionToken); err != nil {
		logger.Log.Errorw("failed to expire session", "account_id", a.ID, "error", err)
		return err
	}
	a.SessionToken = ""
	return nil
}

// SweepExpired clears every idle session and returns how many were cleared.
func (r *SessionRegistry) SweepExpired(ctx context.Context) (int64, error) {
	n, err := r.store.ExpireIdleSessions(ctx, r.now().Add(-r.idleTimeout))
	if err != nil {
		logger.Log.Errorw("failed to sweep idle sessions", "error", err)
		return 0, err
	}
	return n, nil
}

// Now is the registry's clock.
func (r *SessionRegistry) Now() time.Time {
	return r.now()
}

func utcNow() time.Time {
	return time.Now().UTC()
}
