package controllers

import (
	"errors"

	"business-permits-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExportAssessmentSheetController exports the treasury assessment as an XLSX
// workbook.
func (ec *ExportController) ExportAssessmentSheetController(c *fiber.Ctx) error {
	id := c.Params("id")

	filename, workbook, err := ec.ExportService.RenderAssessmentSheet(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Application not found",
			})
		}
		config.Logger.Error("Assessment sheet export failed", zap.String("applicationId", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate assessment sheet",
		})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(workbook)
}
