package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/repository"
	"github.com/google/uuid"
)

// AdService serves ads for locked reports and records completed watches.
type AdService struct {
	store   *repository.Store
	cfg     *config.Config
	unlocks *UnlockService
	shuffle func([]models.Ad)
}

func NewAdService(store *repository.Store, cfg *config.Config, unlocks *UnlockService) *AdService {
	return &AdService{
		store:   store,
		cfg:     cfg,
		unlocks: unlocks,
		shuffle: func(ads []models.Ad) {
			rand.Shuffle(len(ads), func(i, j int) { ads[i], ads[j] = ads[j], ads[i] })
		},
	}
}

// Offer returns the next batch of ads the user has not started for reportID,
// or {locked:false} when the report is already unlocked for them.
func (s *AdService) Offer(ctx context.Context, userID, reportID uuid.UUID) (*dto.AdsOfferResponse, error) {
	if _, err := s.store.Catalog().GetReport(ctx, reportID, false); err != nil {
		return nil, mapNotFound(err, ErrReportNotFound)
	}

	unlocked, err := s.unlocks.IsUnlocked(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	if unlocked {
		return &dto.AdsOfferResponse{Locked: false, Message: "Report already unlocked"}, nil
	}

	ads, err := s.store.Ads().ListUnwatched(ctx, userID, reportID)
	if err != nil {
		return nil, fmt.Errorf("list ads: %w", err)
	}
	s.shuffle(ads)
	if len(ads) > s.cfg.AdsPerBatch {
		ads = ads[:s.cfg.AdsPerBatch]
	}
	if len(ads) == 0 {
		return &dto.AdsOfferResponse{Locked: true, Message: "No ads available right now"}, nil
	}

	out := make([]dto.AdResponse, 0, len(ads))
	for i := range ads {
		out = append(out, toAdResponse(&ads[i], s.cfg.MediaBaseURL))
	}
	return &dto.AdsOfferResponse{
		Locked:      true,
		AdsRequired: s.cfg.AdsRequiredForUnlock,
		Ads:         out,
	}, nil
}

// RecordCompletion marks ad as fully watched by the user for reportID and
// advances the user's newest library entry for that report. The ledger
// write and the unlock evaluation commit together.
func (s *AdService) RecordCompletion(ctx context.Context, userID, reportID, adID uuid.UUID) (*dto.AdCompletionResponse, error) {
	var (
		resp         dto.AdCompletionResponse
		justUnlocked bool
	)

	err := s.store.InTx(ctx, func(tx *repository.Store) error {
		if _, err := tx.Catalog().GetReport(ctx, reportID, false); err != nil {
			return mapNotFound(err, ErrReportNotFound)
		}
		ad, err := tx.Ads().GetAd(ctx, adID, true)
		if err != nil {
			return mapNotFound(err, ErrAdNotFound)
		}
		g, err := tx.Library().LatestForUpdate(ctx, userID, reportID)
		if err != nil {
			return mapNotFound(err, ErrGeneratedReportNotFound)
		}

		if _, err := tx.Ads().MarkWatched(ctx, userID, reportID, ad.ID, ad.Duration); err != nil {
			return fmt.Errorf("mark ad watched: %w", err)
		}
		completed, err := tx.Ads().CountCompleted(ctx, userID, reportID)
		if err != nil {
			return fmt.Errorf("count completed ads: %w", err)
		}

		justUnlocked, err = s.unlocks.applyAdProgress(ctx, tx, g, int(completed))
		if err != nil {
			return err
		}

		resp = dto.AdCompletionResponse{
			AdCompleted:       true,
			AdsCompletedCount: int(completed),
			ReportUnlocked:    !g.IsLocked,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if justUnlocked {
		slog.Info("report unlocked", "action", "unlock", "mode", models.UnlockModeAds,
			"user_id", userID.String(), "report_id", reportID.String())
	}
	return &resp, nil
}
