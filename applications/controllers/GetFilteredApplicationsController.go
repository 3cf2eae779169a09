package controllers

import (
	"business-permits-backend/applications/services"
	"business-permits-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetFilteredApplicationsController returns a paginated application list with
// the derived status summary per row.
func (ac *ApplicationController) GetFilteredApplicationsController(c *fiber.Ctx) error {
	pageSize := c.QueryInt("page_size", 10)
	if pageSize <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid page_size parameter",
		})
	}

	page := c.QueryInt("page", 1)
	if page <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid page parameter",
		})
	}

	offset := (page - 1) * pageSize

	rows, total, err := ac.ApplicationRepo.GetFilteredApplications(pageSize, offset)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered applications", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch applications",
		})
	}

	summaries := make([]fiber.Map, 0, len(rows))
	for _, row := range rows {
		raw, err := services.DecodePayload(row.Payload)
		if err != nil {
			config.Logger.Warn("Skipping application with corrupt payload",
				zap.String("id", row.ID), zap.Error(err))
			continue
		}
		record := services.NormalizeApplication(row.ID, raw)
		summaries = append(summaries, fiber.Map{
			"id":              record.ID,
			"applicantName":   record.ApplicantName,
			"businessName":    record.BusinessName,
			"applicationType": record.ApplicationType,
			"overallStatus":   record.OverallStatus,
			"submittedAt":     record.SubmittedAt,
		})
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": summaries,
		"meta": fiber.Map{
			"current_page": page,
			"page_size":    pageSize,
			"total":        total,
			"total_pages":  totalPages,
		},
	})
}
