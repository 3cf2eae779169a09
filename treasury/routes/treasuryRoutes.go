package routes

import (
	"business-permits-backend/db/models"
	"business-permits-backend/middleware"
	controllers "business-permits-backend/treasury/controllers"
	"business-permits-backend/treasury/repositories"
	"business-permits-backend/treasury/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func TreasuryInitRoutes(
	app *fiber.App,
	appCtx *middleware.AppContext,
	treasuryRepo repositories.TreasuryRepository,
	enqueuer controllers.PreRenderEnqueuer,
	db *gorm.DB,
) {
	treasuryController := &controllers.TreasuryController{
		AssessmentService: services.NewAssessmentService(treasuryRepo),
		Enqueuer:          enqueuer,
		DB:                db,
	}

	api := app.Group("/api/v1/treasury",
		middleware.ProtectedRoute(appCtx),
		middleware.RequireRole(models.TreasuryRole),
	)

	api.Get("/:applicationId/assessment", treasuryController.GetAssessmentController)
	api.Put("/:applicationId/assessment", treasuryController.SaveAssessmentController)
}
