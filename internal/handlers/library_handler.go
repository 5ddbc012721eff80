package handlers

import (
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type LibraryHandler struct {
	libraryService *services.LibraryService
}

func NewLibraryHandler(libraryService *services.LibraryService) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService}
}

func (h *LibraryHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return reject(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	items, err := h.libraryService.List(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Library fetched successfully", items)
}
