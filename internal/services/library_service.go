package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LibraryService turns checked cart entries into library entries and lists
// them.
type LibraryService struct {
	store *repository.Store
	cfg   *config.Config
}

func NewLibraryService(store *repository.Store, cfg *config.Config) *LibraryService {
	return &LibraryService{store: store, cfg: cfg}
}

// ConvertCheckedCart creates one locked library entry per checked cart entry
// and removes those cart entries. Either everything converts or nothing
// does. Returns how many entries were created.
func (s *LibraryService) ConvertCheckedCart(ctx context.Context, userID uuid.UUID) (int, error) {
	var created int
	err := s.store.InTx(ctx, func(tx *repository.Store) error {
		entries, err := tx.Carts().ListChecked(ctx, userID)
		if err != nil {
			return fmt.Errorf("list checked cart: %w", err)
		}
		if len(entries) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, 0, len(entries))
		for _, e := range entries {
			g := &models.UserGeneratedReport{
				UserID:           userID,
				ReportID:         e.ReportID,
				ReportCategoryID: e.Report.CategoryID,
				IsLocked:         true,
				Amount:           e.Report.Price,
				Credit:           e.Report.Price,
				PaidAmount:       decimal.Zero,
			}
			if err := tx.Library().Create(ctx, g); err != nil {
				return fmt.Errorf("create library entry for report %s: %w", e.ReportID, err)
			}
			ids = append(ids, e.ID)
		}

		if _, err := tx.Carts().DeleteOwned(ctx, userID, ids); err != nil {
			return fmt.Errorf("clear converted cart entries: %w", err)
		}
		created = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// List returns the user's library, newest first.
func (s *LibraryService) List(ctx context.Context, userID uuid.UUID) ([]dto.LibraryItem, error) {
	entries, err := s.store.Library().ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.LibraryItem, 0, len(entries))
	for _, g := range entries {
		out = append(out, dto.LibraryItem{
			ID:           g.ID,
			ReportID:     g.ReportID,
			Title:        libraryTitle(&g),
			Amount:       g.Amount,
			Image:        mediaURL(s.cfg.MediaBaseURL, g.Report.File),
			IsLocked:     g.IsLocked,
			UnlockedMode: g.UnlockedMode,
			AdsCount:     g.AdsCount,
		})
	}
	return out, nil
}

// libraryTitle is "<owner full name>_<report title>_<created date>".
func libraryTitle(g *models.UserGeneratedReport) string {
	return fmt.Sprintf("%s_%s_%s", g.User.FullName, g.Report.Title, g.CreatedAt.Format("2006-01-02"))
}
