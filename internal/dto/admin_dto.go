package dto

import "github.com/shopspring/decimal"

// Admin write requests. PUT replaces every field; nil flags keep the stored
// value on update and default to active, not deleted on create.

type CategoryRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=255"`
	ShortDesc string `json:"short_desc" validate:"max=1000"`
	Desc      string `json:"desc"`
	Image     string `json:"image" validate:"max=500"`
	IsActive  *bool  `json:"is_active"`
	IsDeleted *bool  `json:"is_deleted"`
}

type ReportRequest struct {
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
	Title       string          `json:"title" validate:"required,min=3,max=255"`
	Description string          `json:"description"`
	File        string          `json:"file" validate:"max=500"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	IsActive    *bool           `json:"is_active"`
	IsDeleted   *bool           `json:"is_deleted"`
}

type AdRequest struct {
	Title     string `json:"title" validate:"required,min=2,max=255"`
	Video     string `json:"video" validate:"max=500"`
	Duration  int    `json:"duration" validate:"gt=0"`
	IsActive  *bool  `json:"is_active"`
	IsDeleted *bool  `json:"is_deleted"`
}

type UserListResponse struct {
	Users  []UserResponse `json:"users"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
