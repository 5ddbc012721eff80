package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired lets a request through when any of these hold:
// 1. X-Admin-Token matches ADMIN_TOKEN
// 2. the token email is listed in ADMIN_EMAILS
// 3. the user row is staff and active
func AdminRequired(store *repository.Store, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			if subtle.ConstantTimeCompare([]byte(c.Get("X-Admin-Token")), []byte(cfg.AdminToken)) == 1 {
				return c.Next()
			}
		}

		mc, err := claims(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Envelope{
				Status: false, Message: "Unauthorized",
			})
		}

		email, _ := mc["email"].(string)
		if contains(adminEmails, strings.ToLower(email)) {
			return c.Next()
		}

		if userID, err := UserID(c); err == nil {
			user, err := store.Users().Get(c.UserContext(), userID)
			if err == nil && user.IsStaff && user.IsActive {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.Envelope{
			Status: false, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(p))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
