package controllers

import (
	"errors"
	"time"

	"business-permits-backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code"`
}

// LoginController authenticates a back-office user: bcrypt password check,
// then a TOTP code when the account has one enrolled. Issues a short access
// token plus a Redis-backed refresh token.
func (ac *AdminController) LoginController(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	user, err := ac.UserRepo.GetUserByEmail(req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			config.Logger.Error("Login lookup failed", zap.String("email", req.Email), zap.Error(err))
		}
		// Same response for unknown email and wrong password.
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if !user.Active {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Account is disabled",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		config.Logger.Warn("Failed login attempt", zap.String("email", req.Email))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if user.TOTPSecret != "" {
		if req.TOTPCode == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":         "TOTP code required",
				"totp_required": true,
			})
		}
		if !totp.Validate(req.TOTPCode, user.TOTPSecret) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid TOTP code",
			})
		}
	}

	accessToken, err := ac.AppCtx.PasetoMaker.CreateToken(user.Email, string(user.Role), AccessTokenDuration)
	if err != nil {
		config.Logger.Error("Failed to create access token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log in",
		})
	}

	refreshToken, err := ac.AppCtx.PasetoMaker.CreateToken(user.Email, string(user.Role), RefreshTokenDuration)
	if err != nil {
		config.Logger.Error("Failed to create refresh token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log in",
		})
	}

	if ac.AppCtx.RedisClient != nil {
		err = ac.AppCtx.RedisClient.Set(c.Context(),
			"refresh:"+user.Email, refreshToken, RefreshTokenDuration).Err()
		if err != nil {
			config.Logger.Warn("Failed to store refresh token", zap.Error(err))
		}
	}

	now := time.Now()
	user.LastLoginAt = &now
	if _, err := ac.UserRepo.UpdateUser(user); err != nil {
		config.Logger.Warn("Failed to record last login", zap.String("email", user.Email), zap.Error(err))
	}

	config.Logger.Info("User logged in", zap.String("email", user.Email), zap.String("role", string(user.Role)))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       true,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": fiber.Map{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName(),
			"role":      user.Role,
		},
	})
}
