package routes

import (
	"business-permits-backend/db/models"
	controllers "business-permits-backend/export/controllers"
	"business-permits-backend/export/repositories"
	"business-permits-backend/export/services"
	"business-permits-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ExportInitRoutes(
	app *fiber.App,
	appCtx *middleware.AppContext,
	exportService *services.ExportService,
	documentRepo repositories.DocumentRepository,
	db *gorm.DB,
) {
	exportController := &controllers.ExportController{
		ExportService: exportService,
		DocumentRepo:  documentRepo,
		DB:            db,
	}

	api := app.Group("/api/v1/export",
		middleware.ProtectedRoute(appCtx),
		middleware.ExportRateLimit(2, 5),
	)

	api.Post("/docx", exportController.ExportDocxController)
	api.Post("/docx-to-pdf", exportController.ExportPdfController)
	api.Post("/application-docs", exportController.ExportApplicationDocsController)
	api.Get("/:id/assessment.xlsx", exportController.ExportAssessmentSheetController)

	certificate := api.Group("", middleware.RequireRole(models.StaffRole))
	certificate.Post("/:id/certificate", exportController.GeneratePermitCertificateController)
}
