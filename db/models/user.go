package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	AdminRole    Role = "admin"
	StaffRole    Role = "staff"
	TreasuryRole Role = "treasury"
)

// User represents back-office users with role-based access. Citizens
// authenticate against the public portal and never hold a row here.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	FirstName  string    `gorm:"not null" json:"first_name"`
	MiddleName *string   `json:"middle_name"`
	LastName   string    `gorm:"not null" json:"last_name"`
	Email      string    `gorm:"unique;not null" json:"email"`
	Phone      *string   `json:"phone"`
	Password   string    `json:"-"` // bcrypt hash, never serialized
	TOTPSecret string    `json:"-" gorm:"column:totp_secret"`

	Role Role `gorm:"type:varchar(20);not null;index" json:"role"`

	Active      bool       `gorm:"default:true" json:"active"`
	LastLoginAt *time.Time `json:"last_login_at"`

	// Audit fields
	CreatedBy string         `gorm:"not null" json:"created_by"`
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

// FullName joins the name parts the same way the application normalizer does
// for applicants, skipping empty segments.
func (u *User) FullName() string {
	name := u.FirstName
	if u.MiddleName != nil && *u.MiddleName != "" {
		name += " " + *u.MiddleName
	}
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}
