package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportCategory groups reports in the catalog. Rows are soft-deleted through
// the Deleted flag and never removed.
type ReportCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:255;index" json:"name"`
	ShortDesc string    `gorm:"type:text" json:"short_desc"`
	Desc      string    `gorm:"type:text" json:"desc"`
	Image     string    `gorm:"size:500" json:"image"`
	Active    bool      `gorm:"not null;index" json:"is_active"`
	Deleted   bool      `gorm:"not null;index" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Reports   []Report  `gorm:"foreignKey:CategoryID" json:"-"`
}

func (c *ReportCategory) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}

type Report struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Title       string          `gorm:"not null;size:255" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	File        string          `gorm:"size:500" json:"file"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Active      bool            `gorm:"not null;index" json:"is_active"`
	Deleted     bool            `gorm:"not null;index" json:"is_deleted"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Category    ReportCategory  `gorm:"foreignKey:CategoryID" json:"-"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}

// Available reports whether the report can be offered to users.
func (r *Report) Available() bool {
	return r.Active && !r.Deleted
}
