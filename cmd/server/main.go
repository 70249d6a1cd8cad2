package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/stillwrite/stillwrite-backend/internal/ai"
	"github.com/stillwrite/stillwrite-backend/internal/config"
	"github.com/stillwrite/stillwrite-backend/internal/database"
	"github.com/stillwrite/stillwrite-backend/internal/handlers"
	"github.com/stillwrite/stillwrite-backend/internal/identity"
	"github.com/stillwrite/stillwrite-backend/internal/journal"
	"github.com/stillwrite/stillwrite-backend/internal/middleware"
	"github.com/stillwrite/stillwrite-backend/internal/payments"
	"github.com/stillwrite/stillwrite-backend/internal/ratelimit"
	"github.com/stillwrite/stillwrite-backend/internal/routes"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Connect to PostgreSQL
	log.Printf("Connecting to PostgreSQL...")
	db, err := database.ConnectPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	rdb, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer rdb.Close()

	// Connect to MongoDB (payment records)
	log.Printf("Connecting to MongoDB...")
	mongoClient, mongoDB, err := database.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.Printf("⚠️  WARNING: failed to connect to MongoDB: %v", err)
		log.Println("   Payment records will not be persisted; status checks report not-pro")
	} else {
		defer database.DisconnectMongo(mongoClient)
	}

	// Core services
	provider := identity.NewService(db, rdb)
	store := journal.NewStore(journal.NewRedisKV(rdb))
	limiter := ratelimit.New()
	defer limiter.Close()

	// Prompt suggestions need an API key
	var completer ai.Completer
	if cfg.OpenAIAPIKey != "" {
		completer = ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		log.Println("✅ Prompt suggestion service initialized")
	} else {
		log.Println("Warning: OPENAI_API_KEY not set. Prompt suggestions will not be available")
	}
	promptService := ai.NewPromptService(completer, limiter)

	// Payments need a Stripe key
	paymentService := payments.NewService(cfg.StripeSecretKey, cfg.StripePriceID, cfg.AppBaseURL, mongoDB)
	if paymentService.Configured() {
		log.Println("✅ Payment service initialized")
	} else {
		log.Println("Warning: STRIPE_SECRET_KEY not set. Payments will not be available")
	}

	if len(cfg.AdminEmails) == 0 {
		log.Println("⚠️  WARNING: ADMIN_EMAILS not set. Admin routes will deny all access.")
	}

	// Setup router
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: security headers + per-IP flood limiting
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP rate limiting)")
	}

	h := &routes.Handlers{
		Auth:    &handlers.AuthHandler{Provider: provider},
		Journal: &handlers.JournalHandler{Store: store},
		Admin:   &handlers.AdminHandler{Provider: provider, Store: store},
		AI:      &handlers.AIHandler{Prompts: promptService},
		Payment: &handlers.PaymentHandler{Payments: paymentService, Provider: provider},
	}
	routes.SetupRoutes(r, h, provider, cfg, limiter)

	// Log registered routes for debugging
	log.Println("📋 Registered routes:")
	log.Println("  GET    /health")
	log.Println("  POST   /auth/signup")
	log.Println("  POST   /auth/login")
	log.Println("  POST   /auth/logout")
	log.Println("  POST   /journal/save")
	log.Println("  GET    /journal/entries")
	log.Println("  PUT    /journal/entry/{date}")
	log.Println("  DELETE /journal/entry/{date}")
	log.Println("  GET    /admin/users")
	log.Println("  GET    /admin/user/{userID}/entries")
	log.Println("  POST   /ai/prompt")
	log.Println("  POST   /payment/create-checkout")
	log.Println("  POST   /payment/verify")
	log.Println("  GET    /payment/status")

	log.Printf("🚀 Stillwrite backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
