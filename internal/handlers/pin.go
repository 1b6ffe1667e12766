package handlers

//go:generate mockgen -source=pin.go -destination=mock_pin_test.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/bankcore/internal/logger"
	"github.com/sbilibin2017/bankcore/internal/middlewares"
	"github.com/sbilibin2017/bankcore/internal/models"
	"github.com/sbilibin2017/bankcore/internal/policy"
	"github.com/sbilibin2017/bankcore/internal/repositories"
	"github.com/sbilibin2017/bankcore/internal/services"
	"github.com/sbilibin2017/bankcore/internal/validation"
)

// AttemptStore keeps failed-PIN counters per session and flow.
type AttemptStore interface {
	// Incr counts one attempt atomically and returns the counter including it.
	Incr(ctx context.Context, session, flow string) (int, error)
	Reset(ctx context.Context, session, flow string) error
}

// PINVerifier checks a PIN against an attempt counter.
type PINVerifier interface {
	Verify(a *models.AccountDB, pin string, attempts int) (services.PINCheck, error)
	MaxAttempts() int
}

// PINSetter sets and replaces PINs.
type PINSetter interface {
	SetPIN(ctx context.Context, account *models.AccountDB, pin string) error
	ResetPIN(ctx context.Context, account *models.AccountDB, currentPIN, newPIN string) error
}

// PINErrorResponse reports a rejected PIN.
// swagger:model PINErrorResponse
type PINErrorResponse struct {
	// default: incorrect PIN
	Error string `json:"error"`

	// Attempts left before a PIN reset is required
	AttemptsLeft int `json:"attempts_left"`

	// The PIN must be reset before the flow can be retried
	ResetRequired bool `json:"reset_required"`
}

var pinFlows = []string{repositories.FlowTransfer, repositories.FlowDeposit, repositories.FlowManager}

// pinGate verifies the PIN of a money-moving or role-changing request and
// keeps the flow's attempt counter.
type pinGate struct {
	attempts AttemptStore
	verifier PINVerifier
	flow     string
}

// verify reports whether pin is correct. On false the response is written.
// The attempt is counted before the PIN is checked, so concurrent requests
// get at most MaxAttempts guesses. After the last one the flow stays locked
// until the PIN is reset or the counter expires.
func (g pinGate) verify(w http.ResponseWriter, r *http.Request, account *models.AccountDB, pin string) bool {
	ctx := r.Context()

	if account.PINHash == "" {
		writeError(w, policy.ErrPINNotSet)
		return false
	}

	n, err := g.attempts.Incr(ctx, account.SessionToken, g.flow)
	if err != nil {
		writeError(w, err)
		return false
	}

	limit := g.verifier.MaxAttempts()
	if n > limit {
		logger.Log.Warnw("PIN flow locked", "account_id", account.ID, "flow", g.flow, "attempts", n)
		writePINError(w, services.ErrPINResetRequired, 0, true)
		return false
	}

	check, verr := g.verifier.Verify(account, pin, n-1)
	switch {
	case verr == nil:
		if err := g.attempts.Reset(ctx, account.SessionToken, g.flow); err != nil {
			logger.Log.Errorw("failed to clear PIN attempts", "account_id", account.ID, "flow", g.flow, "err", err)
		}
		return true
	case errors.Is(verr, services.ErrIncorrectPIN), errors.Is(verr, services.ErrPINResetRequired):
		logger.Log.Warnw("incorrect PIN", "account_id", account.ID, "flow", g.flow, "attempts", n)
		left := limit - check.Attempts
		if check.ResetRequired {
			left = 0
		}
		writePINError(w, verr, left, check.ResetRequired)
	default:
		writeError(w, verr)
	}
	return false
}

func writePINError(w http.ResponseWriter, err error, left int, resetRequired bool) {
	writeJSON(w, statusFor(err), PINErrorResponse{
		Error:         err.Error(),
		AttemptsLeft:  left,
		ResetRequired: resetRequired,
	})
}

func pinRules(label string) []validation.Rule {
	return []validation.Rule{validation.Required(label + " is required"), validation.SixDigits()}
}

// SetPINRequest represents the JSON body for setting the first PIN
// swagger:model SetPINRequest
type SetPINRequest struct {
	// default: 123456
	PIN string `json:"pin"`
	// default: 123456
	ConfirmPIN string `json:"confirm_pin"`
}

// NewSetPINHandler returns an HTTP handler that sets the caller's first PIN.
// @Summary Set PIN
// @Tags pin
// @Accept json
// @Produce json
// @Param request body handlers.SetPINRequest true "PIN"
// @Success 200 {object} handlers.MessageResponse
// @Failure 409 {object} handlers.ErrorResponse "PIN already set"
// @Failure 422 {object} handlers.ErrorResponse "Validation failed"
// @Router /pin [post]
// @Security BearerAuth
func NewSetPINHandler(svc PINSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetPINRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		err := validation.Pipeline{
			{Name: "pin", Value: req.PIN, Rules: pinRules("PIN")},
			{Name: "confirm_pin", Value: req.ConfirmPIN, Rules: append(pinRules("PIN confirmation"),
				validation.Equals(req.PIN, "PINs do not match."))},
		}.Validate()
		if err != nil {
			writeError(w, err)
			return
		}

		account := middlewares.AccountFromContext(r.Context())
		if err := svc.SetPIN(r.Context(), account, req.PIN); err != nil {
			writeError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Your PIN has been set successfully!")
	}
}

// ResetPINRequest represents the JSON body for a PIN reset
// swagger:model ResetPINRequest
type ResetPINRequest struct {
	CurrentPIN string `json:"current_pin"`
	PIN        string `json:"pin"`
	ConfirmPIN string `json:"confirm_pin"`
}

// NewResetPINHandler returns an HTTP handler that replaces the caller's PIN
// and clears every PIN attempt counter of the session.
// @Summary Reset PIN
// @Tags pin
// @Accept json
// @Produce json
// @Param request body handlers.ResetPINRequest true "Current and new PIN"
// @Success 200 {object} handlers.MessageResponse
// @Failure 400 {object} handlers.ErrorResponse "Incorrect current PIN"
// @Failure 422 {object} handlers.ErrorResponse "Validation failed"
// @Router /pin/reset [post]
// @Security BearerAuth
func NewResetPINHandler(svc PINSetter, attempts AttemptStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPINRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		err := validation.Pipeline{
			{Name: "current_pin", Value: req.CurrentPIN, Rules: pinRules("Current PIN")},
			{Name: "pin", Value: req.PIN, Rules: append(pinRules("New PIN"),
				validation.NotEquals(req.CurrentPIN, "New PIN must be different from current PIN."))},
			{Name: "confirm_pin", Value: req.ConfirmPIN, Rules: append(pinRules("PIN confirmation"),
				validation.Equals(req.PIN, "New PINs do not match."))},
		}.Validate()
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := r.Context()
		account := middlewares.AccountFromContext(ctx)
		if err := svc.ResetPIN(ctx, account, req.CurrentPIN, req.PIN); err != nil {
			writeError(w, err)
			return
		}
		for _, flow := range pinFlows {
			if err := attempts.Reset(ctx, account.SessionToken, flow); err != nil {
				logger.Log.Errorw("failed to clear PIN attempts", "account_id", account.ID, "flow", flow, "err", err)
			}
		}
		writeMessage(w, http.StatusOK, "Your PIN has been reset successfully!")
	}
}
