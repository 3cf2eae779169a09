package routes

import (
	controllers "business-permits-backend/applications/controllers"
	"business-permits-backend/applications/repositories"
	"business-permits-backend/applications/services"
	bleve_repositories "business-permits-backend/bleve/repositories"
	"business-permits-backend/db/models"
	"business-permits-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ApplicationInitRoutes(
	app *fiber.App,
	appCtx *middleware.AppContext,
	applicationRepo repositories.ApplicationRepository,
	messageRepo repositories.RequirementMessageRepository,
	bleveRepo bleve_repositories.BleveRepositoryInterface,
	hub controllers.Broadcaster,
	db *gorm.DB,
) {
	applicationController := &controllers.ApplicationController{
		ApplicationRepo: applicationRepo,
		MessageRepo:     messageRepo,
		AppService:      services.NewApplicationService(applicationRepo, messageRepo),
		BleveRepo:       bleveRepo,
		Hub:             hub,
		DB:              db,
	}

	api := app.Group("/api/v1", middleware.ProtectedRoute(appCtx))

	api.Get("/applications/filtered", applicationController.GetFilteredApplicationsController)
	api.Get("/applications/:id", applicationController.GetApplicationController)
	api.Post("/applications", applicationController.UpsertApplicationController)

	review := api.Group("/applications/:id", middleware.RequireRole(models.StaffRole))
	review.Patch("/requirements/:requirementId/review", applicationController.ReviewRequirementFileController)
	review.Get("/threads/:requirementName/messages", applicationController.GetRequirementMessagesController)
	review.Post("/threads/:requirementName/messages", applicationController.SendRequirementMessageController)
}
