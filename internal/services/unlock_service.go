package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnlockService owns the locked -> unlocked transition of library entries.
// An unlocked entry is never locked again and never re-stamped.
type UnlockService struct {
	store *repository.Store
	cfg   *config.Config
	now   func() time.Time
}

func NewUnlockService(store *repository.Store, cfg *config.Config) *UnlockService {
	return &UnlockService{store: store, cfg: cfg, now: time.Now}
}

// IsUnlocked reports whether any of the user's entries for reportID is
// unlocked.
func (s *UnlockService) IsUnlocked(ctx context.Context, userID, reportID uuid.UUID) (bool, error) {
	return s.store.Library().AnyUnlocked(ctx, userID, reportID)
}

// applyAdProgress stores the completed-ad count on a locked entry and unlocks
// it once the count reaches the configured threshold. tx must already hold
// the row lock on g. It returns true only when this call unlocked g.
func (s *UnlockService) applyAdProgress(ctx context.Context, tx *repository.Store, g *models.UserGeneratedReport, completed int) (bool, error) {
	if !g.IsLocked {
		return false, nil
	}

	g.AdsCount = completed
	unlocked := false
	if completed >= s.cfg.AdsRequiredForUnlock {
		seconds, err := tx.Ads().SumWatchedSeconds(ctx, g.UserID, g.ReportID)
		if err != nil {
			return false, fmt.Errorf("sum watched seconds: %w", err)
		}
		s.unlock(g, models.UnlockModeAds)
		g.AdsCount = s.cfg.AdsRequiredForUnlock
		g.AdsDuration = seconds
		g.CreditsUsed = s.cfg.AdsUnlockCreditDebit
		unlocked = true
	}

	if err := tx.Library().Save(ctx, g); err != nil {
		return false, fmt.Errorf("save ad progress: %w", err)
	}
	return unlocked, nil
}

// PurchaseConfirmation unlocks a library entry through the payment path.
type PurchaseConfirmation struct {
	GeneratedReportID uuid.UUID
	Mode              string
	PaidAmount        decimal.Decimal
	CreditsUsed       int
	Reference         string
}

// ConfirmPurchase unlocks the entry in the given mode. Confirming an entry
// that is already unlocked changes nothing and returns applied=false.
func (s *UnlockService) ConfirmPurchase(ctx context.Context, p PurchaseConfirmation) (*models.UserGeneratedReport, bool, error) {
	if p.Mode != models.UnlockModePayment && p.Mode != models.UnlockModeCredit {
		return nil, false, ErrInvalidUnlockMode
	}
	if p.PaidAmount.IsNegative() || p.CreditsUsed < 0 {
		return nil, false, Invalid(map[string]string{"paid_amount": "Amounts cannot be negative."})
	}

	var (
		g       *models.UserGeneratedReport
		applied bool
	)
	err := s.store.InTx(ctx, func(tx *repository.Store) error {
		var err error
		g, err = tx.Library().GetForUpdate(ctx, p.GeneratedReportID)
		if err != nil {
			return mapNotFound(err, ErrGeneratedReportNotFound)
		}
		if !g.IsLocked {
			return nil
		}

		s.unlock(g, p.Mode)
		g.PaidAmount = p.PaidAmount
		g.CreditsUsed = p.CreditsUsed
		if p.Reference != "" {
			ref := p.Reference
			g.PaymentReference = &ref
		}
		applied = true
		return tx.Library().Save(ctx, g)
	})
	if err != nil {
		return nil, false, err
	}

	if applied {
		slog.Info("report unlocked", "action", "unlock", "mode", p.Mode,
			"generated_report_id", g.ID.String(), "user_id", g.UserID.String(), "report_id", g.ReportID.String())
	}
	return g, applied, nil
}

func (s *UnlockService) unlock(g *models.UserGeneratedReport, mode string) {
	now := s.now()
	g.IsLocked = false
	g.UnlockedMode = &mode
	g.UnlockedOn = &now
}
