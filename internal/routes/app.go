package routes

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/mailer"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NewHandlers builds the service graph over store and wraps it in handlers.
func NewHandlers(cfg *config.Config, store *repository.Store, m mailer.Mailer) Handlers {
	unlocks := services.NewUnlockService(store, cfg)
	library := services.NewLibraryService(store, cfg)

	return Handlers{
		Auth:    handlers.NewAuthHandler(services.NewAuthService(store, cfg, m)),
		Health:  handlers.NewHealthHandler(),
		Catalog: handlers.NewCatalogHandler(services.NewCatalogService(store, cfg)),
		Cart:    handlers.NewCartHandler(services.NewCartService(store), library),
		Ads:     handlers.NewAdsHandler(services.NewAdService(store, cfg, unlocks)),
		Library: handlers.NewLibraryHandler(library),
		Admin:   handlers.NewAdminHandler(services.NewAdminService(store)),
		Webhook: handlers.NewWebhookHandler(services.NewPurchaseService(unlocks), cfg.PurchaseWebhookSecret),
	}
}

// NewApp creates the fiber app with the global middleware chain. pre runs
// ahead of everything else (error tracking hooks in main).
func NewApp(cfg *config.Config, pre ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: ErrorHandler,
	})

	for _, h := range pre {
		app.Use(h)
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	return app
}

// ErrorHandler renders errors that escaped a handler as the envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.Envelope{
		Status:  false,
		Message: message,
	})
}
