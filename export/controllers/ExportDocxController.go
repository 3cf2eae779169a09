package controllers

import (
	"errors"

	"business-permits-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExportRequest is the shared body for the export endpoints.
type ExportRequest struct {
	ApplicationID string `json:"applicationId"`
	SwornOnly     bool   `json:"swornOnly"`
}

func parseExportRequest(c *fiber.Ctx) (ExportRequest, error) {
	var req ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return req, err
	}
	if req.ApplicationID == "" {
		return req, errors.New("applicationId is required")
	}
	return req, nil
}

// ExportDocxController renders the filled application form (or the sworn
// declaration alone with swornOnly) as a DOCX download.
func (ec *ExportController) ExportDocxController(c *fiber.Ctx) error {
	req, err := parseExportRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	filename, docx, err := ec.ExportService.RenderApplicationDocx(c.Context(), req.ApplicationID, req.SwornOnly)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Application not found",
			})
		}
		config.Logger.Error("DOCX export failed", zap.String("applicationId", req.ApplicationID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate document",
		})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(docx)
}
