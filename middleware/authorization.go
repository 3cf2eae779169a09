package middleware

import (
	"strings"

	"business-permits-backend/config"
	"business-permits-backend/db/models"
	"business-permits-backend/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// devBypassPayload stands in for a verified token when the dev bypass header
// is honored. It never appears in production.
var devBypassPayload = &token.Payload{
	Email: "dev-bypass@localhost",
	Role:  string(models.AdminRole),
}

// ProtectedRoute verifies the Authorization bearer token. Outside production
// the `x-dev-bypass: 1` header skips verification entirely.
func ProtectedRoute(ctx *AppContext) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !config.IsProduction() && c.Get("x-dev-bypass") == "1" {
			c.Locals("user", devBypassPayload)
			return c.Next()
		}

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized",
				"error":   "missing_bearer_token",
			})
		}

		payload, err := ctx.PasetoMaker.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			config.Logger.Debug("Invalid access token encountered", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized",
				"error":   "invalid_token",
			})
		}

		c.Locals("user", payload)
		return c.Next()
	}
}

// RequireRole guards a route group behind one or more staff roles. Admin
// passes every check.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload, ok := c.Locals("user").(*token.Payload)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized",
				"error":   "missing_token_payload",
			})
		}

		if payload.Role == string(models.AdminRole) {
			return c.Next()
		}
		for _, role := range roles {
			if payload.Role == string(role) {
				return c.Next()
			}
		}

		config.Logger.Warn("Role check failed",
			zap.String("email", payload.Email),
			zap.String("role", payload.Role),
		)
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Forbidden",
			"error":   "insufficient_role",
		})
	}
}
