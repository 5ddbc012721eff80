package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartEntry is unique per (user, report); re-adding bumps Quantity.
type CartEntry struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_report,priority:1" json:"user_id"`
	ReportID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_report,priority:2" json:"report_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Checked   bool            `gorm:"not null" json:"is_checked"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Report    Report          `gorm:"foreignKey:ReportID" json:"-"`
	User      User            `gorm:"foreignKey:UserID" json:"-"`
}

func (e *CartEntry) BeforeCreate(tx *gorm.DB) error {
	assignID(&e.ID)
	return nil
}
