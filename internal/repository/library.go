package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LibraryRepo struct {
	db *gorm.DB
}

func (r *LibraryRepo) Create(ctx context.Context, g *models.UserGeneratedReport) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(g).Error
}

func (r *LibraryRepo) Save(ctx context.Context, g *models.UserGeneratedReport) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(g).Error
}

// LatestForUpdate loads the newest library entry for (user, report) and
// row-locks it for the rest of the transaction.
func (r *LibraryRepo) LatestForUpdate(ctx context.Context, userID, reportID uuid.UUID) (*models.UserGeneratedReport, error) {
	var g models.UserGeneratedReport
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND report_id = ?", userID, reportID).
		Order("created_at DESC").
		First(&g).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

// GetForUpdate loads a library entry by id and row-locks it.
func (r *LibraryRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.UserGeneratedReport, error) {
	var g models.UserGeneratedReport
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&g).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

// AnyUnlocked reports whether the user holds an unlocked entry for reportID.
func (r *LibraryRepo) AnyUnlocked(ctx context.Context, userID, reportID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.UserGeneratedReport{}).
		Where("user_id = ? AND report_id = ? AND is_locked = ?", userID, reportID, false).
		Count(&n).Error
	return n > 0, err
}

// ListForUser returns the user's library newest first, with report and owner
// loaded.
func (r *LibraryRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.UserGeneratedReport, error) {
	var out []models.UserGeneratedReport
	err := r.db.WithContext(ctx).
		Preload("Report").
		Preload("User").
		Scopes(ForUser("user_generated_reports", userID)).
		Order("user_generated_reports.created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LibraryRepo) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.UserGeneratedReport{}).
		Scopes(ForUser("user_generated_reports", userID)).
		Count(&n).Error
	return n, err
}
