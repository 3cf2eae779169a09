package controllers

import (
	"business-permits-backend/config"
	"business-permits-backend/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeleteUserController soft-deletes a user. Deleting your own account is
// rejected.
func (ac *AdminController) DeleteUserController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	user, err := ac.UserRepo.GetUserByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if payload, ok := c.Locals("user").(*token.Payload); ok && payload.Email == user.Email {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "You cannot delete your own account",
		})
	}

	if err := ac.UserRepo.DeleteUser(id); err != nil {
		config.Logger.Error("Failed to delete user", zap.String("id", id.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete user",
		})
	}

	config.Logger.Info("User deleted", zap.String("email", user.Email))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User deleted successfully",
	})
}
