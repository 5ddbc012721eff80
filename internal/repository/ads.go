package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdRepo struct {
	db *gorm.DB
}

func (r *AdRepo) ListAds(ctx context.Context, f FlagFilter) ([]models.Ad, error) {
	var out []models.Ad
	err := r.db.WithContext(ctx).
		Scopes(f.scope("ads")).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetAd loads an ad. With activeOnly, inactive or deleted ads are not found.
func (r *AdRepo) GetAd(ctx context.Context, id uuid.UUID, activeOnly bool) (*models.Ad, error) {
	q := r.db.WithContext(ctx).Where("ads.id = ?", id)
	if activeOnly {
		q = q.Scopes(Available("ads"))
	}
	var ad models.Ad
	if err := q.First(&ad).Error; err != nil {
		return nil, notFound(err)
	}
	return &ad, nil
}

func (r *AdRepo) CreateAd(ctx context.Context, ad *models.Ad) error {
	return r.db.WithContext(ctx).Create(ad).Error
}

func (r *AdRepo) SaveAd(ctx context.Context, ad *models.Ad) error {
	return r.db.WithContext(ctx).Save(ad).Error
}

// ListUnwatched returns active ads that have no ledger row at all for
// (user, report). An abandoned, incomplete watch still excludes its ad.
func (r *AdRepo) ListUnwatched(ctx context.Context, userID, reportID uuid.UUID) ([]models.Ad, error) {
	watched := r.db.Model(&models.AdWatch{}).
		Select("ad_id").
		Where("user_id = ? AND report_id = ?", userID, reportID)

	var out []models.Ad
	err := r.db.WithContext(ctx).
		Scopes(Available("ads")).
		Where("ads.id NOT IN (?)", watched).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkWatched get-or-creates the (user, report, ad) ledger row and marks it
// completed with the given seconds. Repeat calls update the same row.
func (r *AdRepo) MarkWatched(ctx context.Context, userID, reportID, adID uuid.UUID, seconds int) (*models.AdWatch, error) {
	w := models.AdWatch{
		UserID:         userID,
		ReportID:       reportID,
		AdID:           adID,
		WatchedSeconds: seconds,
		Completed:      true,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "report_id"}, {Name: "ad_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"watched_seconds": seconds,
				"completed":       true,
				"updated_at":      time.Now(),
			}),
		}).
		Create(&w).Error
	if err != nil {
		return nil, err
	}

	var stored models.AdWatch
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND report_id = ? AND ad_id = ?", userID, reportID, adID).
		First(&stored).Error; err != nil {
		return nil, notFound(err)
	}
	return &stored, nil
}

func (r *AdRepo) CountCompleted(ctx context.Context, userID, reportID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.AdWatch{}).
		Where("user_id = ? AND report_id = ? AND completed = ?", userID, reportID, true).
		Count(&n).Error
	return n, err
}

// SumWatchedSeconds totals watched_seconds over every ledger row for
// (user, report), completed or not.
func (r *AdRepo) SumWatchedSeconds(ctx context.Context, userID, reportID uuid.UUID) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Model(&models.AdWatch{}).
		Select("COALESCE(SUM(watched_seconds), 0)").
		Where("user_id = ? AND report_id = ?", userID, reportID).
		Scan(&total).Error
	return total, err
}

func (r *AdRepo) ListWatches(ctx context.Context, userID, reportID uuid.UUID) ([]models.AdWatch, error) {
	var out []models.AdWatch
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND report_id = ?", userID, reportID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}
