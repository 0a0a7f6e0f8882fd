package middleware

import (
	"net/http"
)

type ctxKey string

const (
	ContextKeyRequestID ctxKey = "request-id"
)

const (
	contentLengthHeader = "Content-Length"
	requestIDHeader     = "X-Request-Id"
)

type Middleware func(http.Handler) http.Handler
