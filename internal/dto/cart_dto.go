package dto

import "github.com/google/uuid"

// CartAddItem is one element of POST /cart/add. Quantity defaults to 1.
type CartAddItem struct {
	ReportID string `json:"report_id" validate:"required,uuid"`
	Quantity *int   `json:"quantity" validate:"omitempty,gte=1,lte=1000"`
}

type CartToggleRequest struct {
	CartEntryID string `json:"cart_entry_id" validate:"required,uuid"`
}

// CartAddResult reports what happened to one requested item.
type CartAddResult struct {
	ReportID string            `json:"report_id"`
	Added    bool              `json:"added"`
	EntryID  *uuid.UUID        `json:"cart_entry_id,omitempty"`
	Quantity int               `json:"quantity,omitempty"`
	Error    string            `json:"error,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

type CartAddResponse struct {
	Results []CartAddResult `json:"results"`
	Cart    interface{}     `json:"cart"`
}

type CartToggleResponse struct {
	CartEntryID uuid.UUID `json:"cart_entry_id"`
	IsChecked   bool      `json:"is_checked"`
}

type ConvertResponse struct {
	ReportsAdded int `json:"reports_added"`
}
