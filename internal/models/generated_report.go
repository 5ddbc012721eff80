package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	UnlockModeAds     = "Ads"
	UnlockModePayment = "Payment"
	UnlockModeCredit  = "Credit"
)

// UserGeneratedReport is a user's library entry for a purchased report. It is
// created locked on cart conversion, unlocked at most once, and never deleted.
type UserGeneratedReport struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index:idx_ugr_user_report,priority:1" json:"user_id"`
	ReportID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_ugr_user_report,priority:2" json:"report_id"`
	ReportCategoryID uuid.UUID       `gorm:"type:uuid;not null" json:"report_category_id"`
	IsLocked         bool            `gorm:"not null;index" json:"is_locked"`
	UnlockedMode     *string         `gorm:"size:20" json:"unlocked_mode"`
	UnlockedOn       *time.Time      `json:"unlocked_on"`
	AdsCount         int             `gorm:"not null" json:"ads_count"`
	AdsDuration      int             `gorm:"not null" json:"ads_duration"`
	Amount           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Credit           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"credit"`
	PaidAmount       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"paid_amount"`
	CreditsUsed      int             `gorm:"not null" json:"credits_used"`
	PaymentReference *string         `gorm:"size:255;index" json:"payment_reference,omitempty"`
	CreatedAt        time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Report           Report          `gorm:"foreignKey:ReportID" json:"-"`
	User             User            `gorm:"foreignKey:UserID" json:"-"`
}

func (g *UserGeneratedReport) BeforeCreate(tx *gorm.DB) error {
	assignID(&g.ID)
	return nil
}
