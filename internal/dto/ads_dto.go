package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdCompleteRequest struct {
	ReportID string `json:"report_id" validate:"required,uuid"`
	AdID     string `json:"ad_id" validate:"required,uuid"`
}

type AdResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Video     string    `json:"video"`
	Duration  int       `json:"duration"`
	IsActive  bool      `json:"is_active"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}

// AdsOfferResponse is either {locked:false} for an unlocked report or the
// next batch of ads to watch.
type AdsOfferResponse struct {
	Locked      bool         `json:"locked"`
	AdsRequired int          `json:"ads_required,omitempty"`
	Ads         []AdResponse `json:"ads,omitempty"`
	Message     string       `json:"message,omitempty"`
}

type AdCompletionResponse struct {
	AdCompleted       bool `json:"ad_completed"`
	AdsCompletedCount int  `json:"ads_completed_count"`
	ReportUnlocked    bool `json:"report_unlocked"`
}
