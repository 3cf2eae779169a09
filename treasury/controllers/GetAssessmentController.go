package controllers

import (
	"business-permits-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetAssessmentController serves the current normalized assessment for an
// application. Duplicate stored rows resolve to the most recently updated.
func (tc *TreasuryController) GetAssessmentController(c *fiber.Ctx) error {
	applicationID := c.Params("applicationId")
	if applicationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Application id is required",
		})
	}

	record, err := tc.AssessmentService.GetLatestAssessment(c.Context(), applicationID)
	if err != nil {
		config.Logger.Error("Failed to fetch assessment",
			zap.String("applicationId", applicationID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch assessment",
		})
	}
	if record == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No assessment found for this application",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": record,
	})
}
