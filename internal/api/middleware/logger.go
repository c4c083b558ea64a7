package middleware

import (
	"log"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Logger writes one line per request with method, path, status and latency, prefixed with the
// request ID when chi's RequestID middleware runs first.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start).Round(time.Microsecond)
		if id := chimw.GetReqID(r.Context()); id != "" {
			log.Printf("[http] %s %s %s %d %s", id, r.Method, r.URL.Path, status(ww), elapsed)
			return
		}
		log.Printf("[http] %s %s %d %s", r.Method, r.URL.Path, status(ww), elapsed)
	})
}

// status is the code sent to the client; handlers that write nothing send 200.
func status(ww chimw.WrapResponseWriter) int {
	if code := ww.Status(); code != 0 {
		return code
	}
	return http.StatusOK
}
