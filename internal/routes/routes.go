package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Health  *handlers.HealthHandler
	Catalog *handlers.CatalogHandler
	Cart    *handlers.CartHandler
	Ads     *handlers.AdsHandler
	Library *handlers.LibraryHandler
	Admin   *handlers.AdminHandler
	Webhook *handlers.WebhookHandler
}

func Setup(app *fiber.App, cfg *config.Config, store *repository.Store, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached:      tooManyRequests,
	}))

	api.Get("/health", h.Health.Check)

	// Auth: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached:      tooManyRequests,
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/otp/verify", h.Auth.VerifyOTP)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/logout", middleware.JWTProtected(cfg), h.Auth.Logout)

	// Catalog (public)
	api.Get("/report-categories", h.Catalog.ListCategories)
	api.Get("/report-categories/:id", h.Catalog.GetCategory)
	api.Get("/reports", h.Catalog.ListReports)
	api.Get("/reports/:id", h.Catalog.GetReport)

	// Protected routes get JWT per route so public siblings stay public.
	jwt := middleware.JWTProtected(cfg)

	api.Get("/reports/:id/ads", jwt, h.Ads.Offer)
	api.Post("/ads/complete", jwt, h.Ads.Complete)

	cart := api.Group("/cart", jwt)
	cart.Get("/", h.Cart.List)
	cart.Post("/add", h.Cart.Add)
	cart.Post("/toggle", h.Cart.Toggle)
	cart.Post("/convert", h.Cart.Convert)
	cart.Delete("/:id", h.Cart.Remove)

	api.Get("/library", jwt, h.Library.List)

	admin := api.Group("/admin", jwt, middleware.AdminRequired(store, cfg))
	admin.Get("/report-categories", h.Admin.ListCategories)
	admin.Get("/report-categories/:id", h.Admin.GetCategory)
	admin.Post("/report-categories", h.Admin.CreateCategory)
	admin.Put("/report-categories/:id", h.Admin.UpdateCategory)
	admin.Delete("/report-categories/:id", h.Admin.DeleteCategory)

	admin.Get("/reports", h.Admin.ListReports)
	admin.Get("/reports/:id", h.Admin.GetReport)
	admin.Post("/reports", h.Admin.CreateReport)
	admin.Put("/reports/:id", h.Admin.UpdateReport)
	admin.Delete("/reports/:id", h.Admin.DeleteReport)

	admin.Get("/ads", h.Admin.ListAds)
	admin.Get("/ads/:id", h.Admin.GetAd)
	admin.Post("/ads", h.Admin.CreateAd)
	admin.Put("/ads/:id", h.Admin.UpdateAd)
	admin.Delete("/ads/:id", h.Admin.DeleteAd)

	admin.Get("/users", h.Admin.ListUsers)

	// Webhooks authenticate with the shared secret, not JWT.
	webhooks := api.Group("/webhooks")
	webhooks.Post("/purchases", h.Webhook.HandlePurchase)
}

func tooManyRequests(c *fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(dto.Envelope{
		Status:  false,
		Message: "Too many requests, please slow down",
	})
}
