package controllers

import (
	"errors"
	"strings"

	"business-permits-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExportPdfController serves the PDF preview: the application form followed
// by the sworn declaration, or the declaration alone with swornOnly.
// The X-Preview-Cache header reports HIT, MISS or BYPASS; a Cache-Control:
// no-cache request forces a fresh render.
func (ec *ExportController) ExportPdfController(c *fiber.Ctx) error {
	req, err := parseExportRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	bypass := strings.Contains(c.Get(fiber.HeaderCacheControl), "no-cache")

	filename, pdf, cacheStatus, err := ec.ExportService.RenderPreviewPDF(c.Context(), req.ApplicationID, req.SwornOnly, bypass)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Application not found",
			})
		}
		config.Logger.Error("PDF export failed",
			zap.String("applicationId", req.ApplicationID),
			zap.Bool("swornOnly", req.SwornOnly),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate document",
		})
	}

	c.Set("X-Preview-Cache", cacheStatus)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
