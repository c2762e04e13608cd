package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"ayitichat/internal/auth"
	"ayitichat/internal/billing"
	"ayitichat/internal/catalog"
	"ayitichat/internal/config"
	"ayitichat/internal/handler"
	"ayitichat/internal/llm"
	"ayitichat/internal/middleware"
	"ayitichat/internal/repository/postgres"
	redisrepo "ayitichat/internal/repository/redis"
	"ayitichat/internal/service"
	"ayitichat/internal/storage"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected", "max_conns", 25, "min_conns", 5)

	// Redis client (guest counters, project cache)
	redisOpts, err := goredis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := goredis.NewClient(redisOpts)
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	logger.Info("redis connected")

	// Repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	chatRepo := postgres.NewChatRepository(repoConfig)
	messageRepo := postgres.NewMessageRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	fileRepo := postgres.NewProjectFileRepository(repoConfig)
	prefsRepo := postgres.NewUserPreferencesRepository(repoConfig)
	familyRepo := postgres.NewFamilyMemberRepository(repoConfig)
	orderRepo := postgres.NewOrderRepository(repoConfig)
	subRepo := postgres.NewSubscriptionRepository(repoConfig)
	pmRepo := postgres.NewPaymentMethodRepository(repoConfig)
	invRepo := postgres.NewInvoiceRepository(repoConfig)
	adminRepo := postgres.NewAdminRepository(repoConfig)
	shareRepo := postgres.NewShareRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	guestUsageRepo := redisrepo.NewGuestUsageRepository(redisClient, cfg.TablePrefix, logger)
	projectCache := redisrepo.NewProjectCache(redisClient, cfg.TablePrefix, logger)

	// External clients
	completions := llm.NewClient(cfg.AIBaseURL, cfg.AIAPIKey)
	adminClient := auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)
	storageClient := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseKey)
	stripeGateway := billing.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	modelRegistry, err := catalog.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load model catalog: %v", err)
	}

	// Services
	chatService := service.NewChatService(chatRepo, messageRepo, txManager, completions, cfg.ChatModel, logger)
	projectService := service.NewProjectService(projectRepo, fileRepo, txManager, completions, projectCache, cfg.ProjectModel, logger)
	settingsService := service.NewSettingsService(prefsRepo, familyRepo, orderRepo, logger)
	billingService := service.NewBillingService(stripeGateway, subRepo, pmRepo, invRepo, orderRepo, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL, logger)
	shareService := service.NewShareService(shareRepo, chatRepo, messageRepo, logger)
	adminService := service.NewAdminService(adminRepo, adminClient, logger)
	guestService := service.NewGuestService(guestUsageRepo, cfg.GuestDailyMessageLimit, logger)
	uploadService := service.NewUploadService(storageClient, logger)

	// Handlers
	chatHandler := handler.NewChatHandler(chatService)
	projectHandler := handler.NewProjectHandler(projectService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	billingHandler := handler.NewBillingHandler(billingService)
	shareHandler := handler.NewShareHandler(shareService)
	adminHandler := handler.NewAdminHandler(adminService)
	guestHandler := handler.NewGuestHandler(guestService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	modelsHandler := handler.NewModelsHandler(modelRegistry)
	healthHandler := handler.NewHealthHandler(pool)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Chat relay
	mux.HandleFunc("POST /api/chat", chatHandler.Relay)

	// Chat routes
	mux.HandleFunc("POST /api/chats", chatHandler.Create)
	mux.HandleFunc("GET /api/chats", chatHandler.List)
	mux.HandleFunc("GET /api/chats/{id}", chatHandler.Get)
	mux.HandleFunc("PATCH /api/chats/{id}", chatHandler.Update)
	mux.HandleFunc("DELETE /api/chats/{id}", chatHandler.Delete)
	mux.HandleFunc("GET /api/chats/{id}/messages", chatHandler.Messages)

	// Share routes (creation/revocation are chat-scoped; reads are public)
	mux.HandleFunc("POST /api/chats/{id}/share", shareHandler.Create)
	mux.HandleFunc("DELETE /api/chats/{id}/share", shareHandler.Revoke)
	mux.HandleFunc("GET /api/shares/{token}", shareHandler.Get)

	// Project routes
	mux.HandleFunc("POST /api/projects/generate", projectHandler.Generate)
	mux.HandleFunc("GET /api/projects", projectHandler.List)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.Get)
	mux.HandleFunc("GET /api/projects/{id}/files", projectHandler.Files)
	mux.HandleFunc("DELETE /api/projects/{id}", projectHandler.Delete)

	// Settings routes
	mux.HandleFunc("GET /api/preferences", settingsHandler.GetPreferences)
	mux.HandleFunc("PATCH /api/preferences", settingsHandler.UpdatePreferences)
	mux.HandleFunc("GET /api/family", settingsHandler.ListFamily)
	mux.HandleFunc("POST /api/family", settingsHandler.AddFamily)
	mux.HandleFunc("PATCH /api/family/{id}", settingsHandler.UpdateFamilyStatus)
	mux.HandleFunc("DELETE /api/family/{id}", settingsHandler.RemoveFamily)
	mux.HandleFunc("GET /api/orders", settingsHandler.ListOrders)

	// Billing routes
	mux.HandleFunc("GET /api/plans", billingHandler.Plans)
	mux.HandleFunc("POST /api/billing/checkout", billingHandler.Checkout)
	mux.HandleFunc("GET /api/billing/subscription", billingHandler.Subscription)
	mux.HandleFunc("GET /api/billing/payment-methods", billingHandler.PaymentMethods)
	mux.HandleFunc("GET /api/billing/invoices", billingHandler.Invoices)
	mux.HandleFunc("POST /api/billing/webhook", billingHandler.Webhook)

	// Admin routes
	mux.HandleFunc("GET /api/admin/me", adminHandler.Me)
	mux.HandleFunc("GET /api/admin/users", adminHandler.Users)
	mux.HandleFunc("GET /api/admin/users/{userId}/roles", adminHandler.UserRoles)
	mux.HandleFunc("GET /api/admin/admins", adminHandler.Admins)
	mux.HandleFunc("POST /api/admin/admins", adminHandler.Grant)
	mux.HandleFunc("DELETE /api/admin/admins/{userId}", adminHandler.Revoke)
	mux.HandleFunc("GET /api/admin/roles", adminHandler.Roles)
	mux.HandleFunc("GET /api/admin/roles/{id}/permissions", adminHandler.RolePermissions)

	// Guest quota routes
	mux.HandleFunc("POST /api/guest/messages", guestHandler.Consume)
	mux.HandleFunc("GET /api/guest/usage", guestHandler.Usage)

	// Uploads and model catalog
	mux.HandleFunc("POST /api/uploads", uploadHandler.Upload)
	mux.HandleFunc("GET /api/models", modelsHandler.List)

	// Build middleware chain. Applied in reverse order (they wrap each
	// other): CORS → Recovery → Auth → Routes.
	var root http.Handler = mux
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Guest-ID", "Stripe-Signature"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 6 * time.Minute, // generation responses can take minutes
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
