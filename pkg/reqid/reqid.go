// Package reqid provides request ID generation and context propagation.
//
// Every HTTP request gets an id stored in its context and echoed in the
// X-Request-ID response header. The Logger middleware tags log lines with it
// and the gateway forwards it to the catalog API.
//
//	id := reqid.FromCtx(r.Context())
package reqid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey struct{}

// Header is the HTTP header name used to propagate the request ID.
const Header = "X-Request-ID"

// maxLen caps ids accepted from clients.
const maxLen = 128

// New generates a random UUIDv4 request ID.
func New() string {
	return uuid.NewString()
}

// WithValue stores id in ctx and returns the new context.
func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx extracts the request ID from ctx.
// Returns an empty string if none is present.
func FromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// Middleware reuses a client-supplied X-Request-ID or generates a new one.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" || len(id) > maxLen {
				id = New()
			}

			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), id)))
		})
	}
}
