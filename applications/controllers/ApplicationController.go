package controllers

import (
	"business-permits-backend/applications/repositories"
	"business-permits-backend/applications/services"
	bleve_repositories "business-permits-backend/bleve/repositories"

	"gorm.io/gorm"
)

// Broadcaster pushes review-thread events to connected websocket clients.
type Broadcaster interface {
	BroadcastToThread(applicationID, requirementName string, payload []byte)
}

type ApplicationController struct {
	ApplicationRepo repositories.ApplicationRepository
	MessageRepo     repositories.RequirementMessageRepository
	AppService      *services.ApplicationService
	BleveRepo       bleve_repositories.BleveRepositoryInterface
	Hub             Broadcaster
	DB              *gorm.DB
}
