package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stillwrite/stillwrite-backend/internal/config"
	"github.com/stillwrite/stillwrite-backend/internal/handlers"
	"github.com/stillwrite/stillwrite-backend/internal/identity"
	"github.com/stillwrite/stillwrite-backend/internal/middleware"
	"github.com/stillwrite/stillwrite-backend/internal/ratelimit"
)

const (
	signupLimitMax  = 5
	loginLimitMax   = 10
	authLimitWindow = 15 * time.Minute
)

// Handlers bundles the route handlers with their injected services.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Journal *handlers.JournalHandler
	Admin   *handlers.AdminHandler
	AI      *handlers.AIHandler
	Payment *handlers.PaymentHandler
}

// SetupRoutes wires every route with its auth and rate-limit gates.
func SetupRoutes(r *chi.Mux, h *Handlers, provider identity.Provider, cfg *config.Config, limiter *ratelimit.Limiter) {
	// Health check (no gates)
	r.Get("/health", handlers.Health)

	// Credential issuance routes, per-IP window limited
	r.With(middleware.WindowLimit(limiter, "signup", signupLimitMax, authLimitWindow)).
		Post("/auth/signup", h.Auth.Signup)
	r.With(middleware.WindowLimit(limiter, "login", loginLimitMax, authLimitWindow)).
		Post("/auth/login", h.Auth.Login)

	// Journal routes (authenticated)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(provider))
		r.Post("/auth/logout", h.Auth.Logout)
		r.Post("/journal/save", h.Journal.Save)
		r.Get("/journal/entries", h.Journal.List)
		r.Put("/journal/entry/{date}", h.Journal.Rename)
		r.Delete("/journal/entry/{date}", h.Journal.Delete)
		r.Post("/ai/prompt", h.AI.Prompt)
	})

	// Admin dashboard routes (authenticated + email allowlist, fail closed)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(provider))
		r.Use(middleware.RequireAdmin(cfg))
		r.Get("/admin/users", h.Admin.ListUsers)
		r.Get("/admin/user/{userID}/entries", h.Admin.ListUserEntries)
	})

	// Payment routes (checkout/verify are driven by the payment provider
	// redirect flow and carry no session; status takes an optional token)
	r.Post("/payment/create-checkout", h.Payment.CreateCheckout)
	r.Post("/payment/verify", h.Payment.Verify)
	r.Get("/payment/status", h.Payment.Status)
}
