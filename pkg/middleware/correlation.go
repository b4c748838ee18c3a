package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const CorrelationHeader = "X-Correlation-Id"

type correlationKey struct{}

// Correlation makes the inbound X-Correlation-Id available on the request
// context and echoes it on the response. When the caller did not send one,
// a fresh id is minted so downstream log lines still correlate.
func Correlation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			correlationID := r.Header.Get(CorrelationHeader)
			if correlationID == "" {
				correlationID = uuid.New().String()
			}

			ctx := context.WithValue(r.Context(), correlationKey{}, correlationID)
			w.Header().Set(CorrelationHeader, correlationID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CorrelationID returns the correlation id carried by ctx, or "" when the
// request did not pass through the Correlation middleware.
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationKey{}).(string); ok {
		return id
	}
	return ""
}

// WithCorrelationID is used by tests and background tasks that need a
// correlated context without an HTTP request.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationKey{}, correlationID)
}
