package repositories

import (
	"fmt"

	"business-permits-backend/config"
	"business-permits-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uuid.UUID) (*models.User, error)
	GetFilteredUsers(limit, offset int) ([]models.User, int64, error)
	UpdateUser(user *models.User) (*models.User, error)
	DeleteUser(id uuid.UUID) error
}

type userRepository struct {
	DB *gorm.DB
}

// NewUserRepository initializes a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{DB: db}
}

func (ur *userRepository) CreateUser(user *models.User) (*models.User, error) {
	if err := ur.DB.Create(user).Error; err != nil {
		config.Logger.Error("Failed to create user", zap.String("email", user.Email), zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (ur *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := ur.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := ur.DB.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) GetFilteredUsers(limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := ur.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := ur.DB.Order("updated_at DESC, created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (ur *userRepository) UpdateUser(user *models.User) (*models.User, error) {
	if err := ur.DB.Save(user).Error; err != nil {
		config.Logger.Error("Failed to update user", zap.String("id", user.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (ur *userRepository) DeleteUser(id uuid.UUID) error {
	if err := ur.DB.Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
