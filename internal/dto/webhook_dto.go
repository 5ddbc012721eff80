package dto

import "github.com/shopspring/decimal"

type PurchaseWebhook struct {
	APIVersion string        `json:"api_version"`
	Event      PurchaseEvent `json:"event"`
}

// PurchaseEvent is sent by the payment side once money or credits for a
// library entry have been collected.
type PurchaseEvent struct {
	Type              string          `json:"type" validate:"required"`
	ID                string          `json:"id"`
	GeneratedReportID string          `json:"generated_report_id" validate:"required,uuid"`
	PaidAmount        decimal.Decimal `json:"paid_amount" validate:"gte=0"`
	CreditsUsed       int             `json:"credits_used" validate:"gte=0"`
	TransactionID     string          `json:"transaction_id" validate:"max=255"`
	Currency          string          `json:"currency"`
}

type PurchaseWebhookResponse struct {
	Received     bool    `json:"received"`
	Applied      bool    `json:"applied"`
	IsLocked     *bool   `json:"is_locked,omitempty"`
	UnlockedMode *string `json:"unlocked_mode,omitempty"`
}
