package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShortDesc string    `json:"short_desc"`
	Desc      string    `json:"desc"`
	Image     string    `json:"image"`
	IsActive  bool      `json:"is_active"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}

type ReportResponse struct {
	ID           uuid.UUID       `json:"id"`
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	File         string          `json:"file"`
	Price        decimal.Decimal `json:"price"`
	IsActive     bool            `json:"is_active"`
	IsDeleted    bool            `json:"is_deleted"`
	CreatedAt    time.Time       `json:"created_at"`
}
