package repositories

import (
	"fmt"
	"time"

	"business-permits-backend/config"
	"business-permits-backend/db/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	CreateDocument(document *models.GeneratedDocument) error
	GetDocumentsByApplication(applicationID string) ([]models.GeneratedDocument, error)
	GetDocumentsOlderThan(cutoff time.Time) ([]models.GeneratedDocument, error)
	DeleteDocument(document *models.GeneratedDocument) error
}

type documentRepository struct {
	DB *gorm.DB
}

// NewDocumentRepository initializes a new generated-document repository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{DB: db}
}

func (dr *documentRepository) CreateDocument(document *models.GeneratedDocument) error {
	if err := dr.DB.Create(document).Error; err != nil {
		config.Logger.Error("Failed to record generated document",
			zap.String("applicationId", document.ApplicationID),
			zap.String("type", document.DocumentType),
			zap.Error(err),
		)
		return fmt.Errorf("failed to record generated document: %w", err)
	}
	return nil
}

func (dr *documentRepository) GetDocumentsByApplication(applicationID string) ([]models.GeneratedDocument, error) {
	var documents []models.GeneratedDocument
	err := dr.DB.
		Where("application_id = ?", applicationID).
		Order("created_at DESC").
		Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

func (dr *documentRepository) GetDocumentsOlderThan(cutoff time.Time) ([]models.GeneratedDocument, error) {
	var documents []models.GeneratedDocument
	if err := dr.DB.Where("created_at < ?", cutoff).Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

func (dr *documentRepository) DeleteDocument(document *models.GeneratedDocument) error {
	if err := dr.DB.Delete(document).Error; err != nil {
		return fmt.Errorf("failed to delete generated document: %w", err)
	}
	return nil
}
