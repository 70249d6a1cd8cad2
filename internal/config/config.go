package config

import (
	"os"
	"strings"
)

type Config struct {
	PostgresURI     string
	RedisURI        string
	MongoURI        string
	Port            string
	AppBaseURL      string   // Public URL of the frontend (checkout redirects)
	AllowedOrigins  []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	AdminEmails     []string // Admin allowlist; empty means admin routes are disabled
	OpenAIAPIKey    string
	OpenAIModel     string
	StripeSecretKey string
	StripePriceID   string
	Environment     string // ENV: production, development, etc.
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	// CORS: allow multiple origins so the production frontend works alongside local dev
	allowedOrigins := parseList(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	// Admin access is fail-closed: no ADMIN_EMAILS means nobody is an admin.
	adminEmails := parseList(getEnv("ADMIN_EMAILS", ""))
	for i, e := range adminEmails {
		adminEmails[i] = strings.ToLower(e)
	}

	return &Config{
		PostgresURI:     getEnv("POSTGRES_URI", "postgres://localhost:5432/stillwrite?sslmode=disable"),
		RedisURI:        getEnv("REDIS_URI", "redis://localhost:6379/0"),
		MongoURI:        getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/stillwrite")),
		Port:            getEnv("PORT", "8080"),
		AppBaseURL:      getEnv("APP_BASE_URL", "http://localhost:3000"),
		AllowedOrigins:  allowedOrigins,
		AdminEmails:     adminEmails,
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		StripePriceID:   getEnv("STRIPE_PRICE_ID", ""),
		Environment:     env,
	}
}

// IsAdminEmail reports whether email is on the configured allowlist.
// An empty allowlist always denies.
func (c *Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, a := range c.AdminEmails {
		if a == email {
			return true
		}
	}
	return false
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
