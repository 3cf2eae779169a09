package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TreasuryAssessment keeps the fee computation a treasury officer attached to
// an application. The payload is stored raw; field naming in old records is
// inconsistent (cedula vs cedula_no, additionalFees vs additional_fees) and
// the treasury normalizer resolves the aliases at read time.
//
// At most one assessment should exist per application. Duplicates from the
// legacy importer are tolerated; reads pick the most recent by UpdatedAt,
// falling back to CreatedAt.
type TreasuryAssessment struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;" json:"id"`
	ApplicationUID string         `gorm:"size:64;index;not null" json:"application_uid"`
	Payload        datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`

	CreatedBy string         `gorm:"not null" json:"created_by"`
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *TreasuryAssessment) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
