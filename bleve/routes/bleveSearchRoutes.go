package routes

import (
	controllers "business-permits-backend/bleve/controllers"
	"business-permits-backend/bleve/repositories"
	"business-permits-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func BleveInitRoutes(
	app *fiber.App,
	appCtx *middleware.AppContext,
	bleveRepo repositories.BleveRepositoryInterface,
) {
	searchController := controllers.NewSearchController(bleveRepo)

	api := app.Group("/api/v1/search", middleware.ProtectedRoute(appCtx))
	api.Get("/applications", searchController.SearchApplicationsController)
}
