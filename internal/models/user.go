package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string     `gorm:"not null;size:255;uniqueIndex:idx_users_email" json:"email"`
	FirstName string     `gorm:"size:150" json:"first_name"`
	LastName  string     `gorm:"size:150" json:"last_name"`
	FullName  string     `gorm:"size:300" json:"full_name"`
	DOB       *time.Time `gorm:"type:date" json:"dob,omitempty"`
	TOB       string     `gorm:"size:8" json:"tob,omitempty"`
	POB       string     `gorm:"size:300" json:"pob,omitempty"`
	Gender    string     `gorm:"size:10" json:"gender,omitempty"`
	Role      string     `gorm:"size:20;default:'user'" json:"role"`
	IsStaff   bool       `gorm:"not null" json:"is_staff"`
	IsActive  bool       `gorm:"not null;index" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return nil
}

// BeforeSave keeps the derived full name in step with first/last name.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.FullName = strings.TrimSpace(u.FirstName + " " + u.LastName)
	return nil
}
