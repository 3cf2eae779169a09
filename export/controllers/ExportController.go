package controllers

import (
	"business-permits-backend/export/repositories"
	"business-permits-backend/export/services"

	"gorm.io/gorm"
)

type ExportController struct {
	ExportService *services.ExportService
	DocumentRepo  repositories.DocumentRepository
	DB            *gorm.DB
}
