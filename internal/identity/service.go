package identity

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stillwrite/stillwrite-backend/internal/models"
	"github.com/stillwrite/stillwrite-backend/pkg/utils"
)

const (
	// SessionDuration is 7 days
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for user->session mapping
	UserSessionKeyPrefix = "user_session:"
)

// Service is the Postgres+Redis backed Provider: account rows in Postgres,
// opaque session tokens in Redis. Tokens are re-verified against Redis on
// every request, so revocation takes effect immediately.
type Service struct {
	db    *sql.DB
	redis *redis.Client
}

func NewService(db *sql.DB, rdb *redis.Client) *Service {
	return &Service{db: db, redis: rdb}
}

// SignUp creates an account. The password must pass the strength policy.
func (s *Service) SignUp(ctx context.Context, email, password, name string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || name == "" {
		return models.User{}, ErrInvalidCredentials
	}
	if err := utils.ValidatePassword(password); err != nil {
		return models.User{}, ErrWeakPassword
	}

	// Check if user already exists
	var existingEmail string
	err := s.db.QueryRowContext(ctx, "SELECT email FROM users WHERE email = $1", email).Scan(&existingEmail)
	if err == nil {
		return models.User{}, ErrEmailTaken
	} else if err != sql.ErrNoRows {
		return models.User{}, err
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	userID := uuid.New()
	now := time.Now()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, created_at, updated_at, email, name, password_hash, email_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, userID, now, now, email, name, hashedPassword, false)
	if err != nil {
		return models.User{}, err
	}

	return models.User{
		ID:            userID.String(),
		Email:         email,
		Name:          name,
		EmailVerified: false,
		CreatedAt:     now,
	}, nil
}

// SignIn verifies the password and issues a fresh session token. Any prior
// session for the user is invalidated, so the 7-day timer restarts.
func (s *Service) SignIn(ctx context.Context, email, password string) (models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var userID uuid.UUID
	var name, passwordHash string
	var emailVerified bool
	var createdAt time.Time

	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, name, password_hash, email_verified
		FROM users WHERE email = $1 AND is_active = TRUE
	`, email).Scan(&userID, &createdAt, &name, &passwordHash, &emailVerified)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	valid, err := utils.VerifyPassword(password, passwordHash)
	if err != nil || !valid {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.createSession(ctx, userID)
	if err != nil {
		return models.User{}, "", err
	}

	return models.User{
		ID:            userID.String(),
		Email:         email,
		Name:          name,
		EmailVerified: emailVerified,
		CreatedAt:     createdAt,
	}, token, nil
}

// Verify resolves a bearer token to its account. Every caller pays the lookup
// cost; nothing is cached across requests.
func (s *Service) Verify(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, ErrUnauthenticated
	}

	userIDStr, err := s.redis.Get(ctx, SessionKeyPrefix+token).Result()
	if err != nil {
		return models.User{}, ErrUnauthenticated
	}

	var user models.User
	var userID uuid.UUID
	err = s.db.QueryRowContext(ctx, `
		SELECT id, created_at, email, name, email_verified
		FROM users WHERE id = $1 AND is_active = TRUE
	`, userIDStr).Scan(&userID, &user.CreatedAt, &user.Email, &user.Name, &user.EmailVerified)
	if err != nil {
		return models.User{}, ErrUnauthenticated
	}
	user.ID = userID.String()
	return user, nil
}

// SignOut invalidates a session. A missing or already-expired token is not an
// error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	sessionKey := SessionKeyPrefix + token

	// Get user ID before deleting so the user->session mapping goes too
	userIDStr, err := s.redis.Get(ctx, sessionKey).Result()
	if err == nil && userIDStr != "" {
		s.redis.Del(ctx, UserSessionKeyPrefix+userIDStr)
	}
	return s.redis.Del(ctx, sessionKey).Err()
}

// ListUsers returns all active accounts, newest first (admin dashboard).
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, email, name, email_verified
		FROM users WHERE is_active = TRUE ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		var userID uuid.UUID
		if err := rows.Scan(&userID, &user.CreatedAt, &user.Email, &user.Name, &user.EmailVerified); err != nil {
			return nil, err
		}
		user.ID = userID.String()
		users = append(users, user)
	}
	return users, rows.Err()
}

// createSession stores a new random session token in Redis with a 7-day
// expiration, replacing any existing session for the user.
func (s *Service) createSession(ctx context.Context, userID uuid.UUID) (string, error) {
	s.invalidateUserSessions(ctx, userID)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := s.redis.Set(ctx, SessionKeyPrefix+token, userID.String(), SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := s.redis.Set(ctx, UserSessionKeyPrefix+userID.String(), token, SessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) invalidateUserSessions(ctx context.Context, userID uuid.UUID) {
	userSessionKey := UserSessionKeyPrefix + userID.String()
	token, err := s.redis.Get(ctx, userSessionKey).Result()
	if err == nil && token != "" {
		s.redis.Del(ctx, SessionKeyPrefix+token)
	}
	s.redis.Del(ctx, userSessionKey)
}
