package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Ad struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"not null;size:255" json:"title"`
	Video     string    `gorm:"size:500" json:"video"`
	Duration  int       `gorm:"not null" json:"duration"`
	Active    bool      `gorm:"not null;index" json:"is_active"`
	Deleted   bool      `gorm:"not null;index" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Ad) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

// AdWatch is the ledger row for one (user, report, ad) triple. It is matched
// to a generated report by filter only.
type AdWatch struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ad_watch_triple,priority:1" json:"user_id"`
	ReportID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ad_watch_triple,priority:2" json:"report_id"`
	AdID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ad_watch_triple,priority:3" json:"ad_id"`
	WatchedSeconds int       `gorm:"not null" json:"watched_seconds"`
	Completed      bool      `gorm:"not null" json:"completed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (w *AdWatch) BeforeCreate(tx *gorm.DB) error {
	assignID(&w.ID)
	return nil
}
