package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"

	"business-permits-backend/config"
	"business-permits-backend/db/models"
	"business-permits-backend/token"
	"business-permits-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const certificateDir = "./public/permit-certificates"

// GeneratePermitCertificateController generates the signed business-permit
// certificate for an approved application, records it, and emails the
// applicant when notify=1.
func (ec *ExportController) GeneratePermitCertificateController(c *fiber.Ctx) error {
	id := c.Params("id")

	filename, pdf, err := ec.ExportService.RenderPermitCertificate(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Application not found",
			})
		}
		config.Logger.Error("Permit certificate generation failed",
			zap.String("applicationId", id), zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := os.MkdirAll(certificateDir, 0755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store certificate",
		})
	}
	fullPath := filepath.Join(certificateDir, filename)
	if err := os.WriteFile(fullPath, pdf, 0644); err != nil {
		config.Logger.Error("Failed to write certificate file",
			zap.String("path", fullPath), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store certificate",
		})
	}

	createdBy := "system"
	if payload, ok := c.Locals("user").(*token.Payload); ok {
		createdBy = payload.Email
	}

	hash := sha256.Sum256(pdf)
	document := &models.GeneratedDocument{
		ApplicationID: id,
		FilePath:      fullPath,
		FileName:      filename,
		DocumentType:  models.PermitCertificateDocument,
		MimeType:      "application/pdf",
		FileSize:      int64(len(pdf)),
		FileHash:      hex.EncodeToString(hash[:]),
		CreatedBy:     createdBy,
	}
	if err := ec.DocumentRepo.CreateDocument(document); err != nil {
		config.Logger.Warn("Certificate generated but not recorded",
			zap.String("applicationId", id), zap.Error(err))
	}

	if c.QueryBool("notify", false) {
		go ec.notifyApplicant(id, fullPath)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

func (ec *ExportController) notifyApplicant(id, certificatePath string) {
	record, err := ec.ExportService.GetApplication(context.Background(), id)
	if err != nil {
		config.Logger.Warn("Skipping permit email, application lookup failed",
			zap.String("applicationId", id), zap.Error(err))
		return
	}

	email := ""
	if v, ok := record.Form["email"].(string); ok {
		email = v
	}
	if email == "" {
		config.Logger.Info("Skipping permit email, applicant has no email address",
			zap.String("applicationId", id))
		return
	}

	if err := utils.SendPermitIssuedEmail(email, record.BusinessName, certificatePath); err != nil {
		config.Logger.Warn("Permit email failed", zap.String("applicationId", id), zap.Error(err))
	}
}
