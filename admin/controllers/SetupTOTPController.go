package controllers

import (
	"business-permits-backend/config"
	"business-permits-backend/token"

	"github.com/gofiber/fiber/v2"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupTOTPController enrolls the calling user in TOTP two-factor auth and
// returns the otpauth provisioning URL for their authenticator app. The
// secret takes effect on the next login.
func (ac *AdminController) SetupTOTPController(c *fiber.Ctx) error {
	payload, ok := c.Locals("user").(*token.Payload)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	user, err := ac.UserRepo.GetUserByEmail(payload.Email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to set up TOTP",
		})
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      config.GetEnvOr("TOTP_ISSUER", "Business Permits Office"),
		AccountName: user.Email,
	})
	if err != nil {
		config.Logger.Error("Failed to generate TOTP secret", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to set up TOTP",
		})
	}

	user.TOTPSecret = key.Secret()
	if _, err := ac.UserRepo.UpdateUser(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to set up TOTP",
		})
	}

	config.Logger.Info("TOTP enrolled", zap.String("email", user.Email))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"otpauth_url": key.URL(),
		"secret":      key.Secret(),
	})
}
