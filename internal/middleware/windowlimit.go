package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/stillwrite/stillwrite-backend/internal/ratelimit"
	"github.com/stillwrite/stillwrite-backend/internal/response"
	"github.com/stillwrite/stillwrite-backend/pkg/clientip"
)

// WindowLimit gates a route with the fixed-window limiter, keyed
// "op:clientIP". Denied requests get 429 without reaching the handler.
func WindowLimit(limiter *ratelimit.Limiter, op string, max int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := op + ":" + clientip.RealClientIP(r)
			if !limiter.Allow(key, max, window) {
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(max))
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				response.Error(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
				return
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(max))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key, max)))
			next.ServeHTTP(w, r)
		})
	}
}
