package handlers

import (
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdsHandler struct {
	adService *services.AdService
}

func NewAdsHandler(adService *services.AdService) *AdsHandler {
	return &AdsHandler{adService: adService}
}

// Offer returns the next ads to watch for a locked report, or locked=false
// once it is unlocked.
func (h *AdsHandler) Offer(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return reject(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}
	reportID, valid := paramID(c)
	if !valid {
		return fail(c, services.ErrReportNotFound)
	}

	offer, err := h.adService.Offer(c.UserContext(), userID, reportID)
	if err != nil {
		return fail(c, err)
	}

	msg := offer.Message
	if msg == "" {
		msg = "Ads fetched successfully"
	}
	return ok(c, fiber.StatusOK, msg, offer)
}

func (h *AdsHandler) Complete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return reject(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	var req dto.AdCompleteRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if fields := validation.Struct(&req); fields != nil {
		return invalid(c, fields)
	}

	resp, err := h.adService.RecordCompletion(c.UserContext(), userID,
		uuid.MustParse(req.ReportID), uuid.MustParse(req.AdID))
	if err != nil {
		return fail(c, err)
	}

	msg := "Ad marked as completed"
	if resp.ReportUnlocked {
		msg = "Ad completed and report unlocked"
	}
	return ok(c, fiber.StatusOK, msg, resp)
}
