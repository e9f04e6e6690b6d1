package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/evsync/evsync/internal/domain"
	"github.com/evsync/evsync/internal/ports"
)

func AuthRequired(service ports.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization header"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid authorization header format"})
		}

		token := parts[1]
		account, err := service.ValidateToken(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("account_id", account.ID)
		c.Locals("account_role", account.Role)
		c.Locals("account", account)

		return c.Next()
	}
}

// OperatorOnly restricts a route to operator accounts. Must run after
// AuthRequired.
func OperatorOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("account_role").(domain.AccountRole)
		if !ok || role != domain.AccountRoleOperator {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Operator role required"})
		}
		return c.Next()
	}
}
