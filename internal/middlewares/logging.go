package middlewares

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/bankcore/internal/logger"
)

// LoggingMiddleware logs every request and response with a request id.
// An incoming X-Request-ID is reused, otherwise a new one is generated.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}

		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		r = r.WithContext(context.WithValue(r.Context(), requestIDKey, reqID))
		w.Header().Set("X-Request-ID", reqID)

		next.ServeHTTP(rw, r)

		logger.Log.Infow("request",
			"request_id", reqID,
			"method", r.Method,
			"uri", r.RequestURI,
			"duration", time.Since(start),
		)

		fields := []interface{}{
			"request_id", reqID,
			"status", rw.statusCode,
			"response_size", strconv.Itoa(rw.size) + "B",
		}
		if rw.account != "" {
			fields = append(fields, "account", rw.account)
		}
		logger.Log.Infow("response", fields...)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
	// set by AuthMiddleware further down the chain
	account string
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}
