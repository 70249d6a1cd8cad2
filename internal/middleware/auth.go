package middleware

import (
	"context"
	"net/http"

	"github.com/stillwrite/stillwrite-backend/internal/config"
	"github.com/stillwrite/stillwrite-backend/internal/identity"
	"github.com/stillwrite/stillwrite-backend/internal/models"
	"github.com/stillwrite/stillwrite-backend/internal/response"
)

type contextKey string

const userContextKey contextKey = "user"

// TokenFromRequest returns the bearer credential from the Authorization
// header, falling back to X-Session-Token for clients whose fetch wrapper
// reserves the Authorization header.
func TokenFromRequest(r *http.Request) string {
	if token := identity.BearerToken(r.Header.Get("Authorization")); token != "" {
		return token
	}
	return r.Header.Get("X-Session-Token")
}

// UserFrom returns the authenticated user stored by RequireUser.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}

// RequireUser rejects the request with 401 unless the bearer credential
// resolves to an account. The resolved user is stored in the request context
// before the handler runs.
func RequireUser(provider identity.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				response.Error(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			user, err := provider.Verify(r.Context(), token)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "Invalid or expired session")
				return
			}
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects authenticated users whose email is not on the admin
// allowlist. With no allowlist configured every request is denied.
func RequireAdmin(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFrom(r.Context())
			if !ok || !cfg.IsAdminEmail(user.Email) {
				response.Error(w, http.StatusForbidden, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
