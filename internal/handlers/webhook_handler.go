package handlers

import (
	"crypto/subtle"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type WebhookHandler struct {
	purchaseService *services.PurchaseService
	secret          string
}

func NewWebhookHandler(purchaseService *services.PurchaseService, secret string) *WebhookHandler {
	return &WebhookHandler{purchaseService: purchaseService, secret: secret}
}

// HandlePurchase applies a payment-provider event. The Authorization header
// must equal the shared webhook secret.
func (h *WebhookHandler) HandlePurchase(c *fiber.Ctx) error {
	if h.secret == "" {
		return reject(c, fiber.StatusNotFound, "Webhooks not configured", nil)
	}

	authHeader := c.Get("Authorization")
	if subtle.ConstantTimeCompare([]byte(authHeader), []byte(h.secret)) != 1 {
		return reject(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	var webhook dto.PurchaseWebhook
	if err := c.BodyParser(&webhook); err != nil {
		return reject(c, fiber.StatusBadRequest, "Invalid webhook payload", nil)
	}

	resp, err := h.purchaseService.HandleWebhookEvent(c.UserContext(), &webhook.Event)
	if err != nil {
		return fail(c, err)
	}

	slog.Info("webhook processed", "action", "purchase_webhook", "event_type", webhook.Event.Type, "applied", resp.Applied)
	return ok(c, fiber.StatusOK, "Webhook received", resp)
}
