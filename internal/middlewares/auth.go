package middlewares

//go:generate mockgen -source=auth.go -destination=mock_auth_test.go -package=middlewares

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/bankcore/internal/jwt"
	"github.com/sbilibin2017/bankcore/internal/logger"
	"github.com/sbilibin2017/bankcore/internal/models"
)

// Tokener extracts and parses the bearer token of a request.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// AccountLoader loads the account a token was issued to.
type AccountLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.AccountDB, error)
}

// SessionChecker is the session registry as seen by the middleware.
type SessionChecker interface {
	Validate(a *models.AccountDB, token string) bool
	Expired(a *models.AccountDB, now time.Time) bool
	Expire(ctx context.Context, a *models.AccountDB) error
	Touch(ctx context.Context, a *models.AccountDB) error
	Now() time.Time
}

var (
	errSessionEnded   = errors.New("session ended, please log in again")
	errSessionExpired = errors.New("session expired due to inactivity")
)

// AuthMiddleware authenticates the bearer token, checks it belongs to the
// account's current session, expires idle sessions and records activity.
// The account is stored in the request context.
func AuthMiddleware(tokener Tokener, accounts AccountLoader, sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				writeError(w, http.StatusUnauthorized, jwt.ErrInvalidToken.Error())
				return
			}

			account, err := accounts.GetByID(ctx, claims.AccountID)
			if err != nil {
				logger.Log.Errorw("failed to load account", "account_id", claims.AccountID, "err", err)
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if account == nil || !sessions.Validate(account, claims.SessionID) {
				writeError(w, http.StatusUnauthorized, errSessionEnded.Error())
				return
			}

			if sessions.Expired(account, sessions.Now()) {
				if err := sessions.Expire(ctx, account); err != nil {
					logger.Log.Errorw("failed to expire session", "account_id", account.ID, "err", err)
				}
				writeError(w, http.StatusUnauthorized, errSessionExpired.Error())
				return
			}

			if err := sessions.Touch(ctx, account); err != nil {
				logger.Log.Errorw("failed to record activity", "account_id", account.ID, "err", err)
				writeError(w, http.StatusUnauthorized, errSessionEnded.Error())
				return
			}

			if rw, ok := w.(*responseWriter); ok {
				rw.account = account.Username
			}
			next.ServeHTTP(w, r.WithContext(WithAccount(ctx, account)))
		})
	}
}
