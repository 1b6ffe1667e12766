package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/bankcore/internal/logger"
	"github.com/sbilibin2017/bankcore/internal/policy"
	"github.com/sbilibin2017/bankcore/internal/repositories"
	"github.com/sbilibin2017/bankcore/internal/security"
	"github.com/sbilibin2017/bankcore/internal/services"
	"github.com/sbilibin2017/bankcore/internal/validation"
)

// ErrorResponse is the body of every failed request.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Invalid request body
	Error string `json:"error"`

	// Per-field validation messages
	Fields map[string]string `json:"fields,omitempty"`
}

// MessageResponse is the body of requests that only report success.
// swagger:model MessageResponse
type MessageResponse struct {
	// Success message
	Message string `json:"message"`
}

var errInvalidBody = errors.New("Invalid request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageResponse{Message: msg})
}

// writeError maps err to a status code and writes it. Unknown errors are
// logged and reported as a generic 500.
func writeError(w http.ResponseWriter, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "Validation failed", Fields: verrs})
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Log.Errorw("internal server error", "err", err)
		writeJSON(w, status, ErrorResponse{Error: "Internal server error"})
		return
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, security.ErrInvalidPINFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, policy.ErrUnauthenticated),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidResetToken):
		return http.StatusUnauthorized
	case errors.Is(err, policy.ErrPermissionDenied),
		errors.Is(err, policy.ErrAdminRequired),
		errors.Is(err, policy.ErrManagerRequired),
		errors.Is(err, policy.ErrAccountNotActive),
		errors.Is(err, policy.ErrPINNotSet),
		errors.Is(err, policy.ErrPasswordChangeRequired):
		return http.StatusForbidden
	case errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, repositories.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyLoggedIn),
		errors.Is(err, services.ErrSessionConflict),
		errors.Is(err, services.ErrPINAlreadySet),
		errors.Is(err, repositories.ErrUsernameTaken),
		errors.Is(err, repositories.ErrEmailTaken),
		errors.Is(err, repositories.ErrAccountNumberExhausted):
		return http.StatusConflict
	case errors.Is(err, services.ErrPINResetRequired):
		return http.StatusLocked
	case errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrSelfTransfer),
		errors.Is(err, services.ErrSenderInactive),
		errors.Is(err, services.ErrRecipientInactive),
		errors.Is(err, services.ErrBalanceLimit),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrIncorrectPIN),
		errors.Is(err, services.ErrPINUnchanged),
		errors.Is(err, services.ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Log.Errorw("failed to decode request", "error", err)
		return errInvalidBody
	}
	return nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, validation.Errors{"id": "Invalid account id"}
	}
	return id, nil
}
