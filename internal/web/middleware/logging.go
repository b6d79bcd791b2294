package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mcoot/rockquest-admin/internal/middleware"
)

// Logging assigns request ids and logs every dashboard request
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	requestID := middleware.RequestID()
	logging := middleware.Logging(logger)
	return func(next http.Handler) http.Handler {
		return requestID(logging(next))
	}
}

// RequestID returns the id assigned to the current request
func RequestID(ctx context.Context) string {
	return middleware.RequestIDFrom(ctx)
}
