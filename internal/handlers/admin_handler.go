package handlers

import (
	"strconv"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// flagFilter reads ?is_active= and ?is_deleted=. Unparseable values are
// reported as validation errors.
func flagFilter(c *fiber.Ctx) (repository.FlagFilter, map[string]string) {
	var (
		f    repository.FlagFilter
		errs map[string]string
	)
	parse := func(key string) *bool {
		raw := c.Query(key)
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			if errs == nil {
				errs = map[string]string{}
			}
			errs[key] = "Must be a valid boolean."
			return nil
		}
		return &v
	}
	f.Active = parse("is_active")
	f.Deleted = parse("is_deleted")
	return f, errs
}

// Categories

func (h *AdminHandler) ListCategories(c *fiber.Ctx) error {
	flags, errs := flagFilter(c)
	if errs != nil {
		return invalid(c, errs)
	}
	out, err := h.adminService.ListCategories(c.UserContext(), flags)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Report categories fetched successfully", out)
}

func (h *AdminHandler) GetCategory(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, services.ErrCategoryNotFound)
	}
	out, err := h.adminService.GetCategory(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Report category fetched successfully", out)
}

func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	out, err := h.adminService.CreateCategory(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "Report category created successfully", out)
}

func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, services.ErrCategoryNotFound)
	}
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	out, err := h.adminService.UpdateCategory(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Report category updated successfully", out)
}

func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, services.ErrCategoryNotFound)
	}
	if err := h.adminService.DeleteCategory(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Report category deleted successfully", nil)
}

// Reports

func (h *AdminHandler) ListReports(c *fiber.Ctx) error {
	flags, errs := flagFilter(c)
	if errs != nil {
		return invalid(c, errs)
	}
	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return invalid(c, map[string]string{"category_id": "Must be a valid UUID."})
		}
		categoryID = &id
	}

	out, err := h.adminService.ListReports(c.UserContext(), categoryID, flags)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Reports fetched successfully", out)
}

func (h *AdminHandler) GetReport(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, services.ErrReportNotFound)
	}
	out, err := h.adminService.GetReport(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Report fetched successfully", out)
}

func (h *AdminHandler) CreateReport(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	out, err := h.adminService.CreateReport(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "Report created successfully", out)
}

func (h *AdminHandler) UpdateReport(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, services.ErrReportNotFound)
	}
	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	out, err := h.adminService.UpdateReport(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Report updated successfully", out)
}

func (h *AdminHandler) DeleteReport(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, services.ErrReportNotFound)
	}
	if err := h.adminService.DeleteReport(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Report deleted successfully", nil)
}

// Ads

func (h *AdminHandler) ListAds(c *fiber.Ctx) error {
	flags, errs := flagFilter(c)
	if errs != nil {
		return invalid(c, errs)
	}
	out, err := h.adminService.ListAds(c.UserContext(), flags)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Ads fetched successfully", out)
}

func (h *AdminHandler) GetAd(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, services.ErrAdNotFound)
	}
	out, err := h.adminService.GetAd(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Ad fetched successfully", out)
}

func (h *AdminHandler) CreateAd(c *fiber.Ctx) error {
	var req dto.AdRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	out, err := h.adminService.CreateAd(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "Ad created successfully", out)
}

func (h *AdminHandler) UpdateAd(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, services.ErrAdNotFound)
	}
	var req dto.AdRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	out, err := h.adminService.UpdateAd(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Ad updated successfully", out)
}

func (h *AdminHandler) DeleteAd(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return fail(c, services.ErrAdNotFound)
	}
	if err := h.adminService.DeleteAd(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Ad deleted successfully", nil)
}

// Users

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.adminService.ListUsers(c.UserContext(), c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Users fetched successfully", out)
}
