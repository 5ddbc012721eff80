package handlers

import (
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalogService.ListCategories(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Report categories fetched successfully", categories)
}

func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, services.ErrCategoryNotFound)
	}

	category, err := h.catalogService.GetCategory(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Report category fetched successfully", category)
}

// ListReports accepts an optional category_id query filter.
func (h *CatalogHandler) ListReports(c *fiber.Ctx) error {
	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return invalid(c, map[string]string{"category_id": "Must be a valid UUID."})
		}
		categoryID = &id
	}

	reports, err := h.catalogService.ListReports(c.UserContext(), categoryID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Reports fetched successfully", reports)
}

func (h *CatalogHandler) GetReport(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, services.ErrReportNotFound)
	}

	report, err := h.catalogService.GetReport(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Report fetched successfully", report)
}
