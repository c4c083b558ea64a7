package middleware

import (
	"context"
	"net/http"
	"time"
)

// Deadline bounds each request's context by d. Unlike chi's Timeout it never writes a
// response itself: a model call cut short fails, and the handler reports that failure.
func Deadline(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
