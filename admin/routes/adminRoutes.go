package routes

import (
	controllers "business-permits-backend/admin/controllers"
	"business-permits-backend/admin/repositories"
	"business-permits-backend/db/models"
	"business-permits-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AdminInitRoutes(
	app *fiber.App,
	appCtx *middleware.AppContext,
	userRepo repositories.UserRepository,
	db *gorm.DB,
) {
	adminController := &controllers.AdminController{
		UserRepo: userRepo,
		AppCtx:   appCtx,
		DB:       db,
	}

	api := app.Group("/api/v1/admin")

	// Auth endpoints are public by necessity.
	api.Post("/login", adminController.LoginController)
	api.Post("/refresh", adminController.RefreshTokenController)
	api.Post("/logout", adminController.LogoutController)

	protected := api.Group("", middleware.ProtectedRoute(appCtx))
	protected.Post("/totp/setup", adminController.SetupTOTPController)

	users := protected.Group("/users", middleware.RequireRole(models.AdminRole))
	users.Get("", adminController.GetFilteredUsersController)
	users.Post("", adminController.CreateUserController)
	users.Patch("/:id", adminController.UpdateUserController)
	users.Delete("/:id", adminController.DeleteUserController)
}
