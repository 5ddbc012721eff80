package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/repository"
	"github.com/google/uuid"
)

// CatalogService is the public, read-only view of categories and reports.
// Inactive and soft-deleted rows are invisible here.
type CatalogService struct {
	store *repository.Store
	cfg   *config.Config
}

func NewCatalogService(store *repository.Store, cfg *config.Config) *CatalogService {
	return &CatalogService{store: store, cfg: cfg}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := s.store.Catalog().ListCategories(ctx, repository.CategoryFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, toCategoryResponse(&cats[i], s.cfg.MediaBaseURL))
	}
	return out, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	c, err := s.store.Catalog().GetCategory(ctx, id, true)
	if err != nil {
		return nil, mapNotFound(err, ErrCategoryNotFound)
	}
	resp := toCategoryResponse(c, s.cfg.MediaBaseURL)
	return &resp, nil
}

// ListReports returns available reports newest first, optionally limited to
// one category.
func (s *CatalogService) ListReports(ctx context.Context, categoryID *uuid.UUID) ([]dto.ReportResponse, error) {
	reports, err := s.store.Catalog().ListReports(ctx, repository.ReportFilter{
		CategoryID: categoryID,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, toReportResponse(&reports[i], s.cfg.MediaBaseURL))
	}
	return out, nil
}

func (s *CatalogService) GetReport(ctx context.Context, id uuid.UUID) (*dto.ReportResponse, error) {
	r, err := s.store.Catalog().GetReport(ctx, id, true)
	if err != nil {
		return nil, mapNotFound(err, ErrReportNotFound)
	}
	resp := toReportResponse(r, s.cfg.MediaBaseURL)
	return &resp, nil
}
