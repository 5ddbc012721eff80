package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OtpCode is a one-time login code. Codes are addressed by email so they can
// be issued before the user row exists; only a bcrypt hash is stored.
type OtpCode struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"not null;size:255;index" json:"email"`
	CodeHash  string    `gorm:"not null;size:72" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	Used      bool      `gorm:"not null" json:"used"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *OtpCode) BeforeCreate(tx *gorm.DB) error {
	assignID(&o.ID)
	return nil
}
