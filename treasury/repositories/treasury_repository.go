package repositories

import (
	"fmt"

	"business-permits-backend/config"
	"business-permits-backend/db/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TreasuryRepository interface {
	GetAssessmentsByApplication(applicationUID string) ([]models.TreasuryAssessment, error)
	CreateAssessment(assessment *models.TreasuryAssessment) error
	UpdateAssessment(assessment *models.TreasuryAssessment) error
}

type treasuryRepository struct {
	DB *gorm.DB
}

// NewTreasuryRepository initializes a new treasury repository
func NewTreasuryRepository(db *gorm.DB) TreasuryRepository {
	return &treasuryRepository{DB: db}
}

// GetAssessmentsByApplication returns every stored assessment row for an
// application. The legacy importer produced duplicates for some
// applications; the service layer resolves which row wins.
func (tr *treasuryRepository) GetAssessmentsByApplication(applicationUID string) ([]models.TreasuryAssessment, error) {
	var assessments []models.TreasuryAssessment
	err := tr.DB.
		Where("application_uid = ?", applicationUID).
		Order("updated_at DESC, created_at DESC").
		Find(&assessments).Error
	if err != nil {
		config.Logger.Error("Failed to fetch assessments",
			zap.String("applicationUid", applicationUID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch assessments: %w", err)
	}
	return assessments, nil
}

func (tr *treasuryRepository) CreateAssessment(assessment *models.TreasuryAssessment) error {
	if err := tr.DB.Create(assessment).Error; err != nil {
		config.Logger.Error("Failed to create assessment",
			zap.String("applicationUid", assessment.ApplicationUID), zap.Error(err))
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}

func (tr *treasuryRepository) UpdateAssessment(assessment *models.TreasuryAssessment) error {
	err := tr.DB.Model(&models.TreasuryAssessment{}).
		Where("id = ?", assessment.ID).
		Updates(map[string]interface{}{
			"payload":    assessment.Payload,
			"updated_by": assessment.UpdatedBy,
		}).Error
	if err != nil {
		config.Logger.Error("Failed to update assessment",
			zap.String("id", assessment.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to update assessment: %w", err)
	}
	return nil
}
