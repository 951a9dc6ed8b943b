package middleware

import (
	"net/http"
)

// MaxBodySize caps the request body at n bytes. Reads past the cap fail in
// the handler's JSON decode with a 400.
func MaxBodySize(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
