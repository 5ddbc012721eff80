package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogRepo struct {
	db *gorm.DB
}

// CategoryFilter selects categories. ActiveOnly hides inactive and deleted
// rows and takes precedence over Flags.
type CategoryFilter struct {
	ActiveOnly bool
	Flags      FlagFilter
}

// ReportFilter selects reports. ActiveOnly hides inactive and deleted rows
// and takes precedence over Flags.
type ReportFilter struct {
	CategoryID *uuid.UUID
	ActiveOnly bool
	Flags      FlagFilter
}

// ListCategories returns categories ordered by name.
func (r *CatalogRepo) ListCategories(ctx context.Context, f CategoryFilter) ([]models.ReportCategory, error) {
	q := r.db.WithContext(ctx).Model(&models.ReportCategory{})
	if f.ActiveOnly {
		q = q.Scopes(Available("report_categories"))
	} else {
		q = q.Scopes(f.Flags.scope("report_categories"))
	}

	var out []models.ReportCategory
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogRepo) GetCategory(ctx context.Context, id uuid.UUID, activeOnly bool) (*models.ReportCategory, error) {
	q := r.db.WithContext(ctx).Where("id = ?", id)
	if activeOnly {
		q = q.Scopes(Available("report_categories"))
	}
	var c models.ReportCategory
	if err := q.First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *CatalogRepo) CreateCategory(ctx context.Context, c *models.ReportCategory) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CatalogRepo) SaveCategory(ctx context.Context, c *models.ReportCategory) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// ListReports returns reports newest first.
func (r *CatalogRepo) ListReports(ctx context.Context, f ReportFilter) ([]models.Report, error) {
	q := r.db.WithContext(ctx).Model(&models.Report{})
	if f.ActiveOnly {
		q = q.Scopes(Available("reports"))
	} else {
		q = q.Scopes(f.Flags.scope("reports"))
	}
	if f.CategoryID != nil {
		q = q.Where("reports.category_id = ?", *f.CategoryID)
	}

	var out []models.Report
	if err := q.Preload("Category").Order("reports.created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetReport loads a report by id. With activeOnly it behaves as if inactive
// or deleted reports do not exist.
func (r *CatalogRepo) GetReport(ctx context.Context, id uuid.UUID, activeOnly bool) (*models.Report, error) {
	q := r.db.WithContext(ctx).Preload("Category").Where("reports.id = ?", id)
	if activeOnly {
		q = q.Scopes(Available("reports"))
	}
	var rep models.Report
	if err := q.First(&rep).Error; err != nil {
		return nil, notFound(err)
	}
	return &rep, nil
}

func (r *CatalogRepo) CreateReport(ctx context.Context, rep *models.Report) error {
	return r.db.WithContext(ctx).Omit("Category").Create(rep).Error
}

func (r *CatalogRepo) SaveReport(ctx context.Context, rep *models.Report) error {
	return r.db.WithContext(ctx).Omit("Category").Save(rep).Error
}
