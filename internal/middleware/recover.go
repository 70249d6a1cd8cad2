package middleware

import (
	"log"
	"net/http"

	"github.com/stillwrite/stillwrite-backend/internal/response"
)

// Recoverer converts handler panics into a 500 JSON error so a failure never
// leaks a stack trace to the client.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				response.Error(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
