package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LibraryItem struct {
	ID           uuid.UUID       `json:"id"`
	ReportID     uuid.UUID       `json:"report_id"`
	Title        string          `json:"title"`
	Amount       decimal.Decimal `json:"amount"`
	Image        string          `json:"image"`
	IsLocked     bool            `json:"is_locked"`
	UnlockedMode *string         `json:"unlocked_mode"`
	AdsCount     int             `json:"ads_count"`
}
