package repositories

import (
	"fmt"

	"business-permits-backend/config"
	"business-permits-backend/db/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository interface {
	GetApplicationByID(id string) (*models.BusinessApplication, error)
	GetFilteredApplications(limit, offset int) ([]models.BusinessApplication, int64, error)
	UpsertApplication(application *models.BusinessApplication) error
	UpdatePayload(id string, payload datatypes.JSON) error
}

type applicationRepository struct {
	DB *gorm.DB
}

// NewApplicationRepository initializes a new application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{DB: db}
}

func (ar *applicationRepository) GetApplicationByID(id string) (*models.BusinessApplication, error) {
	var application models.BusinessApplication
	if err := ar.DB.Where("id = ?", id).First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (ar *applicationRepository) GetFilteredApplications(limit, offset int) ([]models.BusinessApplication, int64, error) {
	var applications []models.BusinessApplication
	var total int64

	if err := ar.DB.Model(&models.BusinessApplication{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := ar.DB.Order("updated_at DESC, created_at DESC").Limit(limit).Offset(offset).Find(&applications).Error; err != nil {
		return nil, 0, err
	}

	return applications, total, nil
}

func (ar *applicationRepository) UpsertApplication(application *models.BusinessApplication) error {
	err := ar.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"applicant_uid", "payload", "updated_at"}),
	}).Create(application).Error
	if err != nil {
		config.Logger.Error("Failed to upsert application", zap.String("id", application.ID), zap.Error(err))
		return fmt.Errorf("failed to upsert application: %w", err)
	}
	return nil
}

func (ar *applicationRepository) UpdatePayload(id string, payload datatypes.JSON) error {
	result := ar.DB.Model(&models.BusinessApplication{}).Where("id = ?", id).Update("payload", payload)
	if result.Error != nil {
		config.Logger.Error("Failed to update application payload", zap.String("id", id), zap.Error(result.Error))
		return fmt.Errorf("failed to update application payload: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
