package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestID tags every request with a unique identifier, taken from
// the X-Request-Id header when the caller supplies a valid one. The
// identifier is echoed back in the response and ties log lines, audit
// records and stored predictions together.
func RequestID() Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id := r.Header.Get(requestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, id)

			ctx = context.WithValue(ctx, ContextKeyRequestID, id)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
