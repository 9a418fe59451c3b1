package handlers

import (
	"crypto/subtle"
	"net/http"
)

const functionKeyHeader = "x-functions-key"

// FunctionKey requires the key in the x-functions-key header or the code
// query parameter. An empty key disables the check.
func FunctionKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(functionKeyHeader)
			if provided == "" {
				provided = r.URL.Query().Get("code")
			}
			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
