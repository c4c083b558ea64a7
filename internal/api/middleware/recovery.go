package middleware

import (
	"errors"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/blaisecz/bedtime-advisor/pkg/problem"
)

// Recovery turns a handler panic into a 500 problem response. http.ErrAbortHandler is
// re-raised so net/http can abort the connection quietly.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}
			log.Printf("[http] panic recovered: %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
			problem.InternalError("An unexpected error occurred").Write(w)
		}()
		next.ServeHTTP(w, r)
	})
}
