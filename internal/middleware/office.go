package middleware

import (
	"jzf-portal/internal/common/models"
	"jzf-portal/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// RequireOffice rejects requests from non-office actors before the handler
// runs. Document-level ownership checks still happen inside the services.
func RequireOffice() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		if !models.UserRole(claims.Role).IsOffice() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Acesso negado.",
			})
		}

		return c.Next()
	}
}
