package controllers

import (
	"business-permits-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenController exchanges a live refresh token for a new access
// token. The token must both verify and match the copy held in Redis, so a
// logout (or key rotation) revokes it immediately.
func (ac *AdminController) RefreshTokenController(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Refresh token is required",
		})
	}

	payload, err := ac.AppCtx.PasetoMaker.VerifyToken(req.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	if ac.AppCtx.RedisClient == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Session store unavailable",
		})
	}
	stored, err := ac.AppCtx.RedisClient.Get(c.Context(), "refresh:"+payload.Email).Result()
	if err != nil || stored != req.RefreshToken {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Refresh token has been revoked",
		})
	}

	accessToken, err := ac.AppCtx.PasetoMaker.CreateToken(payload.Email, payload.Role, AccessTokenDuration)
	if err != nil {
		config.Logger.Error("Failed to create access token on refresh", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to refresh session",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":      true,
		"access_token": accessToken,
	})
}

// LogoutController revokes the caller's refresh token.
func (ac *AdminController) LogoutController(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Refresh token is required",
		})
	}

	payload, err := ac.AppCtx.PasetoMaker.VerifyToken(req.RefreshToken)
	if err == nil && ac.AppCtx.RedisClient != nil {
		if err := ac.AppCtx.RedisClient.Del(c.Context(), "refresh:"+payload.Email).Err(); err != nil {
			config.Logger.Warn("Failed to revoke refresh token", zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}
