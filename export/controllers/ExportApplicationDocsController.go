package controllers

import (
	"errors"

	"business-permits-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExportApplicationDocsController downloads every exportable document for an
// application as a single zip archive.
func (ec *ExportController) ExportApplicationDocsController(c *fiber.Ctx) error {
	req, err := parseExportRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	filename, bundle, err := ec.ExportService.RenderApplicationBundle(c.Context(), req.ApplicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Application not found",
			})
		}
		config.Logger.Error("Document bundle export failed", zap.String("applicationId", req.ApplicationID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate document bundle",
		})
	}

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(bundle)
}
