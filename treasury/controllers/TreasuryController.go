package controllers

import (
	"business-permits-backend/treasury/services"

	"gorm.io/gorm"
)

// PreRenderEnqueuer queues a background preview render after an assessment
// changes, so the next preview request hits the cache.
type PreRenderEnqueuer interface {
	EnqueuePreviewPreRender(applicationID string) error
}

type TreasuryController struct {
	AssessmentService *services.AssessmentService
	Enqueuer          PreRenderEnqueuer
	DB                *gorm.DB
}
