package controllers

import (
	"business-permits-backend/bleve/repositories"
	"business-permits-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SearchController struct {
	Repo repositories.BleveRepositoryInterface
}

func NewSearchController(repo repositories.BleveRepositoryInterface) *SearchController {
	return &SearchController{Repo: repo}
}

// SearchApplicationsController serves the staff search box: full-text search
// over applicant names, business names and statuses.
func (sc *SearchController) SearchApplicationsController(c *fiber.Ctx) error {
	queryString := c.Query("q")
	if queryString == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter q is required",
		})
	}

	size := c.QueryInt("size", 20)
	if size <= 0 || size > 100 {
		size = 20
	}

	result, err := sc.Repo.SearchApplications(queryString, size)
	if err != nil {
		config.Logger.Error("Application search failed",
			zap.String("query", queryString), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	hits := make([]fiber.Map, 0, len(result.Hits))
	for _, hit := range result.Hits {
		hits = append(hits, fiber.Map{
			"id":     hit.ID,
			"score":  hit.Score,
			"fields": hit.Fields,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": hits,
		"meta": fiber.Map{
			"total":     result.Total,
			"took_ms":   result.Took.Milliseconds(),
			"max_score": result.MaxScore,
		},
	})
}
