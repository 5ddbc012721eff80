package handlers

import (
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	created, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}

	if created {
		return ok(c, fiber.StatusCreated, "User registered. OTP sent to email.", nil)
	}
	return ok(c, fiber.StatusOK, "OTP sent to email.", nil)
}

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	resp, err := h.authService.VerifyOTP(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "OTP verified successfully.", resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.Refresh == "" {
		return invalid(c, map[string]string{"refresh": "This field is required."})
	}

	resp, err := h.authService.Refresh(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Token refreshed.", resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil || req.Refresh == "" {
		return invalid(c, map[string]string{"refresh": "This field is required."})
	}

	if err := h.authService.Logout(c.UserContext(), &req); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Logged out successfully.", nil)
}
