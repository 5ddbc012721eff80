package services

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/validation"
	"github.com/google/uuid"
)

const (
	EventPurchaseConfirmed = "PURCHASE_CONFIRMED"
	EventCreditRedeemed    = "CREDIT_REDEEMED"
)

// PurchaseService applies purchase webhook events to library entries.
type PurchaseService struct {
	unlocks *UnlockService
}

func NewPurchaseService(unlocks *UnlockService) *PurchaseService {
	return &PurchaseService{unlocks: unlocks}
}

// HandleWebhookEvent unlocks the referenced entry for confirmation events.
// Unknown event types are acknowledged and ignored.
func (s *PurchaseService) HandleWebhookEvent(ctx context.Context, event *dto.PurchaseEvent) (*dto.PurchaseWebhookResponse, error) {
	switch event.Type {
	case EventPurchaseConfirmed:
		return s.confirm(ctx, event, models.UnlockModePayment)
	case EventCreditRedeemed:
		return s.confirm(ctx, event, models.UnlockModeCredit)
	default:
		slog.Info("purchase webhook ignored", "event_type", event.Type, "event_id", event.ID)
		return &dto.PurchaseWebhookResponse{Received: true}, nil
	}
}

func (s *PurchaseService) confirm(ctx context.Context, event *dto.PurchaseEvent, mode string) (*dto.PurchaseWebhookResponse, error) {
	if errs := validation.Struct(event); errs != nil {
		return nil, Invalid(errs)
	}
	id, err := uuid.Parse(event.GeneratedReportID)
	if err != nil {
		return nil, Invalid(map[string]string{"generated_report_id": "Must be a valid UUID."})
	}

	g, applied, err := s.unlocks.ConfirmPurchase(ctx, PurchaseConfirmation{
		GeneratedReportID: id,
		Mode:              mode,
		PaidAmount:        event.PaidAmount,
		CreditsUsed:       event.CreditsUsed,
		Reference:         event.TransactionID,
	})
	if err != nil {
		return nil, err
	}

	locked := g.IsLocked
	return &dto.PurchaseWebhookResponse{
		Received:     true,
		Applied:      applied,
		IsLocked:     &locked,
		UnlockedMode: g.UnlockedMode,
	}, nil
}
