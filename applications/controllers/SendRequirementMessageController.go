package controllers

import (
	"encoding/json"
	"time"

	"business-permits-backend/config"
	"business-permits-backend/db/models"
	"business-permits-backend/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type sendMessageRequest struct {
	Body string `json:"body"`
}

// SendRequirementMessageController appends a message to a requirement's
// review thread and pushes it to subscribed websocket clients.
func (ac *ApplicationController) SendRequirementMessageController(c *fiber.Ctx) error {
	applicationID := c.Params("id")
	requirementName := c.Params("requirementName")
	if applicationID == "" || requirementName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Application id and requirement name are required",
		})
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil || req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message body is required",
		})
	}

	senderUID := "system"
	senderName := ""
	if payload, ok := c.Locals("user").(*token.Payload); ok {
		senderUID = payload.Email
		senderName = payload.Email
	}

	message := &models.RequirementMessage{
		ApplicationID:   applicationID,
		RequirementName: requirementName,
		SenderUID:       senderUID,
		SenderName:      senderName,
		Body:            req.Body,
		SentAt:          time.Now(),
	}

	if err := ac.MessageRepo.CreateMessage(message); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send message",
		})
	}

	if ac.Hub != nil {
		event, err := json.Marshal(fiber.Map{
			"type":            "requirement_message",
			"applicationId":   applicationID,
			"requirementName": requirementName,
			"message":         message,
		})
		if err == nil {
			ac.Hub.BroadcastToThread(applicationID, requirementName, event)
		} else {
			config.Logger.Warn("Failed to encode websocket event", zap.Error(err))
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Message sent successfully",
		"data":    message,
	})
}
