package controllers

import (
	"business-permits-backend/config"
	"business-permits-backend/db/models"
	"business-permits-backend/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type createUserRequest struct {
	FirstName  string  `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone"`
	Password   string  `json:"password"`
	Role       string  `json:"role"`
}

var validRoles = map[models.Role]bool{
	models.AdminRole:    true,
	models.StaffRole:    true,
	models.TreasuryRole: true,
}

// CreateUserController registers a back-office user.
func (ac *AdminController) CreateUserController(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "First name, last name and email are required",
		})
	}
	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Password must be at least 8 characters",
		})
	}
	if !validRoles[models.Role(req.Role)] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Role must be one of admin, staff, treasury",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.Logger.Error("Failed to hash password", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	createdBy := "system"
	if payload, ok := c.Locals("user").(*token.Payload); ok {
		createdBy = payload.Email
	}

	user := &models.User{
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Password:   string(hashed),
		Role:       models.Role(req.Role),
		Active:     true,
		CreatedBy:  createdBy,
	}

	created, err := ac.UserRepo.CreateUser(user)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Failed to create user; the email may already be registered",
		})
	}

	config.Logger.Info("User created",
		zap.String("email", created.Email),
		zap.String("role", string(created.Role)),
		zap.String("createdBy", createdBy),
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User created successfully",
		"data":    created,
	})
}
