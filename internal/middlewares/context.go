package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/bankcore/internal/models"
)

type contextKey int

const (
	accountKey contextKey = iota
	requestIDKey
)

// WithAccount stores the authenticated account in ctx.
func WithAccount(ctx context.Context, a *models.AccountDB) context.Context {
	return context.WithValue(ctx, accountKey, a)
}

// AccountFromContext returns the account set by AuthMiddleware, or nil.
func AccountFromContext(ctx context.Context) *models.AccountDB {
	a, _ := ctx.Value(accountKey).(*models.AccountDB)
	return a
}

// RequestIDFromContext returns the id assigned by LoggingMiddleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
