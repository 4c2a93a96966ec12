package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/studyhub/backend/internal/config"
	"github.com/studyhub/backend/internal/database"
	"github.com/studyhub/backend/internal/handlers"
	"github.com/studyhub/backend/internal/logging"
	"github.com/studyhub/backend/internal/middleware"
	"github.com/studyhub/backend/internal/org"
	"github.com/studyhub/backend/internal/payments"
	"github.com/studyhub/backend/internal/routes"
	"github.com/studyhub/backend/internal/services"
	"github.com/studyhub/backend/internal/storage"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.AuthJWKSURL == "" && cfg.JWTSecret == "" {
		slog.Error("AUTH_JWKS_URL or JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Org registry
	registry, err := org.LoadFromFile(cfg.OrgsConfigPath)
	if err != nil {
		slog.Error("failed to load org registry", "path", cfg.OrgsConfigPath, "error", err)
		os.Exit(1)
	}
	slog.Info("org registry loaded", "orgs", len(registry.All()))

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, 30, cleanupDone)

	// Clients
	jwks := services.NewProviderJWKSClient(cfg.AuthJWKSURL, cfg.AuthIssuer, cfg.AuthAudience, cfg.HTTPClientTimeout)
	uploader := storage.NewCloudinaryClient(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.HTTPClientTimeout)
	checkout := payments.NewClient(cfg.CheckoutAPIKey, cfg.CheckoutPriceID, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL, cfg.HTTPClientTimeout)

	// Services
	gate := services.NewAuthorizationGate(database.DB)
	identityService := services.NewIdentityService(database.DB, registry, cfg.AdminEmails)
	voteService := services.NewVoteService(database.DB, gate)
	moderationService := services.NewModerationService(database.DB, gate)
	courseService := services.NewCourseService(database.DB, gate)
	noteService := services.NewNoteService(database.DB, gate, uploader)
	messageService := services.NewMessageService(database.DB, gate)
	paymentService := services.NewPaymentService(database.DB, gate, checkout)
	searchService := services.NewSearchService(database.DB)

	// Handlers
	h := routes.Handlers{
		Health:     handlers.NewHealthHandler(registry),
		Org:        handlers.NewOrgHandler(registry),
		User:       handlers.NewUserHandler(identityService),
		Course:     handlers.NewCourseHandler(courseService, voteService),
		Note:       handlers.NewNoteHandler(noteService, voteService),
		Moderation: handlers.NewModerationHandler(moderationService),
		Message:    handlers.NewMessageHandler(messageService),
		Payment:    handlers.NewPaymentHandler(paymentService, cfg.PaymentWebhookSecret),
		Search:     handlers.NewSearchHandler(searchService),
	}

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    16 * 1024 * 1024, // note uploads
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})
	app.Use(middleware.OrgResolver(registry))

	// Routes
	routes.Setup(app, cfg, registry, gate, jwks, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
