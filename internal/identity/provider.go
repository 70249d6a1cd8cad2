package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/stillwrite/stillwrite-backend/internal/models"
)

var (
	// ErrUnauthenticated means the credential is missing, invalid or expired.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrEmailTaken means an account already exists for the email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrWeakPassword means the password fails the signup policy.
	ErrWeakPassword = errors.New("password does not meet requirements")
	// ErrInvalidCredentials means email/password did not match an account.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Provider issues and validates bearer credentials and resolves them to
// accounts. Handlers depend on this interface so tests can substitute fakes.
type Provider interface {
	SignUp(ctx context.Context, email, password, name string) (models.User, error)
	SignIn(ctx context.Context, email, password string) (models.User, string, error)
	Verify(ctx context.Context, token string) (models.User, error)
	SignOut(ctx context.Context, token string) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

// BearerToken extracts the token from an Authorization header value of the
// form "Bearer <token>". Returns "" when the header is absent or malformed.
func BearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
