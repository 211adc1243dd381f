// Package middleware provides the HTTP middleware shared by the portal's
// routes.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Middleware wraps an http.Handler with extra behavior.
type Middleware func(http.Handler) http.Handler

// Use wraps handler with the given middleware, applied outermost-first.
func Use(handler http.HandlerFunc, mws ...Middleware) http.Handler {
	var h http.Handler = handler

	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}

	return h
}

type reqIDKey struct{}

// NewReqID creates a middleware that tags every request context with a unique
// request ID and echoes it in the X-Request-Id header.
func NewReqID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()

			w.Header().Set("X-Request-Id", id)

			ctx := context.WithValue(r.Context(), reqIDKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ReqID returns the request ID stored in ctx, or empty when absent.
func ReqID(ctx context.Context) string {
	id, _ := ctx.Value(reqIDKey{}).(string)
	return id
}
