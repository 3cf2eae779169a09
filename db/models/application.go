package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FileStatus is the closed vocabulary accepted at the review write path.
// Historical records carry free-text statuses; those are folded through the
// substring adapter in the application normalizer at read time.
type FileStatus string

const (
	FilePending  FileStatus = "pending"
	FileUpdated  FileStatus = "updated"
	FileApproved FileStatus = "approved"
	FileRejected FileStatus = "rejected"
)

// BusinessApplication stores a citizen-submitted permit application exactly
// as the public portal wrote it: a loosely-typed JSON payload with optional
// form, meta, requirements and chat sub-objects. The row is never the source
// of truth for the overall status; that is derived on every read.
type BusinessApplication struct {
	ID           string         `gorm:"primary_key;size:64" json:"id"`
	ApplicantUID string         `gorm:"index" json:"applicant_uid"`
	Payload      datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// GeneratedDocument records an official document produced by the export
// pipeline (permit certificate, assessment sheet, rendered forms).
type GeneratedDocument struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ApplicationID string    `gorm:"size:64;index;not null" json:"application_id"`
	FilePath      string    `gorm:"not null" json:"file_path"`
	FileName      string    `gorm:"not null" json:"file_name"`
	DocumentType  string    `gorm:"type:varchar(40);not null" json:"document_type"`
	MimeType      string    `gorm:"not null" json:"mime_type"`
	FileSize      int64     `json:"file_size"`
	FileHash      string    `json:"file_hash"`

	CreatedBy string         `gorm:"not null" json:"created_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

const (
	PermitCertificateDocument = "PERMIT_CERTIFICATE"
	AssessmentSheetDocument   = "ASSESSMENT_SHEET"
	ApplicationFormDocument   = "APPLICATION_FORM"
	SwornDeclarationDocument  = "SWORN_DECLARATION"
)

func (d *GeneratedDocument) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}
