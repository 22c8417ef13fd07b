package httpx

import (
	"net/http"

	"bookcatalog/internal/platform/logger"

	"github.com/google/uuid"
)

const (
	requestIDHeader    = "X-Request-Id"
	maxRequestIDLength = 128
)

// validRequestID accepts printable ASCII ids of bounded length so a client
// supplied value is safe to log and echo.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// RequestIDMiddleware reuses the caller's X-Request-Id when it is valid and
// mints a UUID otherwise. The id is echoed on the response and attached to
// the request context for handlers and the logger.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)
		ctx := logger.WithRequestID(ContextWithRequestID(r.Context(), requestID), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
