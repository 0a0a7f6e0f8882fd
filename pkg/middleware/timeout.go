package middleware

import (
	"net/http"
	"time"
)

// Timeout bounds the total time a request may spend in its handler.
// The fold client keeps its own upstream timeout; this one is the
// ceiling for the whole request.
func Timeout(timeout time.Duration) Middleware {
	return func(h http.Handler) http.Handler {
		return http.TimeoutHandler(h, timeout, "Request timed out")
	}
}
