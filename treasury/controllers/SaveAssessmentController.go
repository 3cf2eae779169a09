package controllers

import (
	"business-permits-backend/config"
	"business-permits-backend/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SaveAssessmentController stores the fee assessment for an application.
// Re-saving with unchanged cedula or official-receipt numbers keeps the
// original issued-at timestamps.
func (tc *TreasuryController) SaveAssessmentController(c *fiber.Ctx) error {
	applicationID := c.Params("applicationId")
	if applicationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Application id is required",
		})
	}

	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	actor := "system"
	if payload, ok := c.Locals("user").(*token.Payload); ok {
		actor = payload.Email
	}

	record, err := tc.AssessmentService.SaveAssessment(c.Context(), applicationID, raw, actor)
	if err != nil {
		config.Logger.Error("Failed to save assessment",
			zap.String("applicationId", applicationID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save assessment",
		})
	}

	if tc.Enqueuer != nil {
		if err := tc.Enqueuer.EnqueuePreviewPreRender(applicationID); err != nil {
			config.Logger.Warn("Failed to enqueue preview pre-render",
				zap.String("applicationId", applicationID), zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Assessment saved successfully",
		"data":    record,
	})
}
