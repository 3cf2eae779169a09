package repositories

import (
	"fmt"

	"business-permits-backend/config"
	"business-permits-backend/db/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RequirementMessageRepository interface {
	CreateMessage(message *models.RequirementMessage) error
	GetThreadMessages(applicationID, requirementName string) ([]models.RequirementMessage, error)
	GetApplicationMessages(applicationID string) ([]models.RequirementMessage, error)
}

type requirementMessageRepository struct {
	DB *gorm.DB
}

// NewRequirementMessageRepository initializes a new requirement message repository
func NewRequirementMessageRepository(db *gorm.DB) RequirementMessageRepository {
	return &requirementMessageRepository{DB: db}
}

func (mr *requirementMessageRepository) CreateMessage(message *models.RequirementMessage) error {
	if err := mr.DB.Create(message).Error; err != nil {
		config.Logger.Error("Failed to create requirement message",
			zap.String("applicationId", message.ApplicationID),
			zap.String("requirement", message.RequirementName),
			zap.Error(err),
		)
		return fmt.Errorf("failed to create requirement message: %w", err)
	}
	return nil
}

func (mr *requirementMessageRepository) GetThreadMessages(applicationID, requirementName string) ([]models.RequirementMessage, error) {
	var messages []models.RequirementMessage
	err := mr.DB.
		Where("application_id = ? AND requirement_name = ?", applicationID, requirementName).
		Order("sent_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (mr *requirementMessageRepository) GetApplicationMessages(applicationID string) ([]models.RequirementMessage, error) {
	var messages []models.RequirementMessage
	err := mr.DB.
		Where("application_id = ?", applicationID).
		Order("sent_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
