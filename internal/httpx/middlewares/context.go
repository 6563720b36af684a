package middlewares

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// contextKey is an unexported type for context keys in this package, so
// values set here cannot collide with other packages using the same
// underlying string.
type contextKey string

// ContextKeyRequestID is the context key under which the chi request id is
// republished for handlers and log decoration.
const ContextKeyRequestID contextKey = "x-request-id"

// AttachRequestMetadata copies the chi request id into the request context
// under a typed key and echoes it back in the X-Request-Id response header
// so clients can correlate responses with server logs.
func AttachRequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())

		ctx := context.WithValue(r.Context(), ContextKeyRequestID, requestID)
		w.Header().Set("X-Request-Id", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
