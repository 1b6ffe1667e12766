package middlewares

import (
	"errors"
	"net/http"

	"github.com/sbilibin2017/bankcore/internal/policy"
)

// RequireCapabilities rejects requests whose account fails any of caps.
// It must run after AuthMiddleware.
func RequireCapabilities(caps ...policy.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := policy.Check(AccountFromContext(r.Context()), caps...)
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, policy.ErrUnauthenticated):
				writeError(w, http.StatusUnauthorized, err.Error())
			default:
				writeError(w, http.StatusForbidden, err.Error())
			}
		})
	}
}
