package controllers

import (
	"business-permits-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetRequirementMessagesController lists a requirement's review thread in
// send order.
func (ac *ApplicationController) GetRequirementMessagesController(c *fiber.Ctx) error {
	applicationID := c.Params("id")
	requirementName := c.Params("requirementName")
	if applicationID == "" || requirementName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Application id and requirement name are required",
		})
	}

	messages, err := ac.MessageRepo.GetThreadMessages(applicationID, requirementName)
	if err != nil {
		config.Logger.Error("Failed to fetch requirement messages",
			zap.String("applicationId", applicationID),
			zap.String("requirement", requirementName),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch messages",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": messages,
	})
}
