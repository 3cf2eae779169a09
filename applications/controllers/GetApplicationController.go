package controllers

import (
	"errors"

	"business-permits-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetApplicationController serves one application in its normalized shape:
// derived requirement states, derived overall status, sorted files and chat.
func (ac *ApplicationController) GetApplicationController(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Application id is required",
		})
	}

	record, err := ac.AppService.GetApplication(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Application not found",
			})
		}
		config.Logger.Error("Failed to load application", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load application",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": record,
	})
}
