package controllers

import (
	"encoding/json"

	"business-permits-backend/applications/services"
	"business-permits-backend/config"
	"business-permits-backend/db/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type upsertApplicationRequest struct {
	ID      string                 `json:"id"`
	Payload map[string]interface{} `json:"payload"`
}

// UpsertApplicationController stores a raw application payload as submitted
// by the public portal. The payload is not validated beyond being JSON; the
// read path normalizes whatever shape arrives.
func (ac *ApplicationController) UpsertApplicationController(c *fiber.Ctx) error {
	var req upsertApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Application id is required",
		})
	}
	if req.Payload == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Application payload is required",
		})
	}

	payloadBytes, err := json.Marshal(req.Payload)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application payload",
		})
	}

	record := services.NormalizeApplication(req.ID, req.Payload)

	application := &models.BusinessApplication{
		ID:           req.ID,
		ApplicantUID: record.ApplicantUID,
		Payload:      payloadBytes,
	}
	if err := ac.ApplicationRepo.UpsertApplication(application); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save application",
		})
	}

	if ac.BleveRepo != nil {
		if err := ac.BleveRepo.IndexSingleApplication(record); err != nil {
			config.Logger.Warn("Failed to index application for search",
				zap.String("id", req.ID), zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Application saved successfully",
		"data":    record,
	})
}
