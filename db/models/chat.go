package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequirementMessage is one message in a per-requirement approval thread.
// The thread key is (application_id, requirement_name): requirement names
// are unique within an application and double as the chat-thread key.
type RequirementMessage struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ApplicationID   string    `gorm:"size:64;index:idx_req_thread;not null" json:"application_id"`
	RequirementName string    `gorm:"index:idx_req_thread;not null" json:"requirement_name"`

	SenderUID  string `gorm:"not null" json:"sender_uid"`
	SenderName string `json:"sender_name"`
	Body       string `gorm:"type:text;not null" json:"body"`

	SentAt    time.Time      `gorm:"not null;index" json:"sent_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *RequirementMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
