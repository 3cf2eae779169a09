package controllers

import (
	"encoding/json"
	"errors"

	"business-permits-backend/applications/services"
	"business-permits-backend/config"
	"business-permits-backend/db/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type reviewRequirementRequest struct {
	FileName string `json:"fileName"`
	Status   string `json:"status"`
}

var allowedFileStatuses = map[models.FileStatus]bool{
	models.FilePending:  true,
	models.FileUpdated:  true,
	models.FileApproved: true,
	models.FileRejected: true,
}

// ReviewRequirementFileController sets the review status on a requirement
// file. The write path only accepts the closed status vocabulary; free-text
// statuses exist only in historical records.
func (ac *ApplicationController) ReviewRequirementFileController(c *fiber.Ctx) error {
	id := c.Params("id")
	requirementID := c.Params("requirementId")

	var req reviewRequirementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if !allowedFileStatuses[models.FileStatus(req.Status)] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be one of pending, updated, approved, rejected",
		})
	}

	row, err := ac.ApplicationRepo.GetApplicationByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Application not found",
			})
		}
		config.Logger.Error("Failed to load application for review", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load application",
		})
	}

	raw, err := services.DecodePayload(row.Payload)
	if err != nil {
		config.Logger.Error("Corrupt application payload", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load application",
		})
	}

	if err := services.ReviewRequirementFile(raw, requirementID, req.FileName, req.Status); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	payloadBytes, err := json.Marshal(raw)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save review",
		})
	}
	if err := ac.ApplicationRepo.UpdatePayload(id, payloadBytes); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save review",
		})
	}

	record := services.NormalizeApplication(id, raw)

	if ac.BleveRepo != nil {
		if err := ac.BleveRepo.UpdateApplication(record); err != nil {
			config.Logger.Warn("Failed to reindex application after review",
				zap.String("id", id), zap.Error(err))
		}
	}

	config.Logger.Info("Requirement file reviewed",
		zap.String("applicationId", id),
		zap.String("requirementId", requirementID),
		zap.String("status", req.Status),
	)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Review saved successfully",
		"data":    record,
	})
}
