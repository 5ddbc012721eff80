package services

import (
	"context"
	"strings"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/validation"
	"github.com/google/uuid"
)

const (
	defaultUserPageSize = 50
	maxUserPageSize     = 200
)

// AdminService is the unfiltered management surface over the catalog, ads
// and users. Deletes are soft: the row is flagged deleted and deactivated.
type AdminService struct {
	store *repository.Store
}

func NewAdminService(store *repository.Store) *AdminService {
	return &AdminService{store: store}
}

// resolveFlags applies the optional request flags over current and rejects
// a row that would be both active and deleted.
func resolveFlags(active, deleted *bool, currentActive, currentDeleted bool) (bool, bool, error) {
	if active != nil {
		currentActive = *active
	}
	if deleted != nil {
		currentDeleted = *deleted
	}
	if currentActive && currentDeleted {
		return false, false, Invalid(map[string]string{
			"is_active": "A record cannot be both active and deleted.",
		})
	}
	return currentActive, currentDeleted, nil
}

// Categories

func (s *AdminService) ListCategories(ctx context.Context, flags repository.FlagFilter) ([]dto.CategoryResponse, error) {
	cats, err := s.store.Catalog().ListCategories(ctx, repository.CategoryFilter{Flags: flags})
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, toCategoryResponse(&cats[i], ""))
	}
	return out, nil
}

func (s *AdminService) GetCategory(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	c, err := s.store.Catalog().GetCategory(ctx, id, false)
	if err != nil {
		return nil, mapNotFound(err, ErrCategoryNotFound)
	}
	resp := toCategoryResponse(c, "")
	return &resp, nil
}

func (s *AdminService) CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if errs := validation.Struct(req); errs != nil {
		return nil, Invalid(errs)
	}
	active, deleted, err := resolveFlags(req.IsActive, req.IsDeleted, true, false)
	if err != nil {
		return nil, err
	}

	c := &models.ReportCategory{
		Name:      strings.TrimSpace(req.Name),
		ShortDesc: req.ShortDesc,
		Desc:      req.Desc,
		Image:     req.Image,
		Active:    active,
		Deleted:   deleted,
	}
	if err := s.store.Catalog().CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c, "")
	return &resp, nil
}

func (s *AdminService) UpdateCategory(ctx context.Context, id uuid.UUID, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if errs := validation.Struct(req); errs != nil {
		return nil, Invalid(errs)
	}

	var c *models.ReportCategory
	err := s.store.InTx(ctx, func(tx *repository.Store) error {
		var err error
		c, err = tx.Catalog().GetCategory(ctx, id, false)
		if err != nil {
			return mapNotFound(err, ErrCategoryNotFound)
		}
		active, deleted, err := resolveFlags(req.IsActive, req.IsDeleted, c.Active, c.Deleted)
		if err != nil {
			return err
		}
		c.Name = strings.TrimSpace(req.Name)
		c.ShortDesc = req.ShortDesc
		c.Desc = req.Desc
		c.Image = req.Image
		c.Active = active
		c.Deleted = deleted
		return tx.Catalog().SaveCategory(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c, "")
	return &resp, nil
}

func (s *AdminService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.store.InTx(ctx, func(tx *repository.Store) error {
		c, err := tx.Catalog().GetCategory(ctx, id, false)
		if err != nil {
			return mapNotFound(err, ErrCategoryNotFound)
		}
		c.Active = false
		c.Deleted = true
		return tx.Catalog().SaveCategory(ctx, c)
	})
}

// Reports

func (s *AdminService) ListReports(ctx context.Context, categoryID *uuid.UUID, flags repository.FlagFilter) ([]dto.ReportResponse, error) {
	reports, err := s.store.Catalog().ListReports(ctx, repository.ReportFilter{CategoryID: categoryID, Flags: flags})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, toReportResponse(&reports[i], ""))
	}
	return out, nil
}

func (s *AdminService) GetReport(ctx context.Context, id uuid.UUID) (*dto.ReportResponse, error) {
	r, err := s.store.Catalog().GetReport(ctx, id, false)
	if err != nil {
		return nil, mapNotFound(err, ErrReportNotFound)
	}
	resp := toReportResponse(r, "")
	return &resp, nil
}

func (s *AdminService) CreateReport(ctx context.Context, req *dto.ReportRequest) (*dto.ReportResponse, error) {
	if errs := validation.Struct(req); errs != nil {
		return nil, Invalid(errs)
	}
	active, deleted, err := resolveFlags(req.IsActive, req.IsDeleted, true, false)
	if err != nil {
		return nil, err
	}

	var r *models.Report
	err = s.store.InTx(ctx, func(tx *repository.Store) error {
		cat, err := s.reportCategory(ctx, tx, req.CategoryID)
		if err != nil {
			return err
		}
		r = &models.Report{
			CategoryID:  cat.ID,
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			File:        req.File,
			Price:       req.Price,
			Active:      active,
			Deleted:     deleted,
		}
		if err := tx.Catalog().CreateReport(ctx, r); err != nil {
			return err
		}
		r.Category = *cat
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toReportResponse(r, "")
	return &resp, nil
}

func (s *AdminService) UpdateReport(ctx context.Context, id uuid.UUID, req *dto.ReportRequest) (*dto.ReportResponse, error) {
	if errs := validation.Struct(req); errs != nil {
		return nil, Invalid(errs)
	}

	var r *models.Report
	err := s.store.InTx(ctx, func(tx *repository.Store) error {
		var err error
		r, err = tx.Catalog().GetReport(ctx, id, false)
		if err != nil {
			return mapNotFound(err, ErrReportNotFound)
		}
		active, deleted, err := resolveFlags(req.IsActive, req.IsDeleted, r.Active, r.Deleted)
		if err != nil {
			return err
		}
		cat, err := s.reportCategory(ctx, tx, req.CategoryID)
		if err != nil {
			return err
		}
		r.CategoryID = cat.ID
		r.Category = *cat
		r.Title = strings.TrimSpace(req.Title)
		r.Description = req.Description
		r.File = req.File
		r.Price = req.Price
		r.Active = active
		r.Deleted = deleted
		return tx.Catalog().SaveReport(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	resp := toReportResponse(r, "")
	return &resp, nil
}

func (s *AdminService) DeleteReport(ctx context.Context, id uuid.UUID) error {
	return s.store.InTx(ctx, func(tx *repository.Store) error {
		r, err := tx.Catalog().GetReport(ctx, id, false)
		if err != nil {
			return mapNotFound(err, ErrReportNotFound)
		}
		r.Active = false
		r.Deleted = true
		return tx.Catalog().SaveReport(ctx, r)
	})
}

// reportCategory loads the category a report is being attached to. Missing
// or deleted categories are a validation failure on category_id.
func (s *AdminService) reportCategory(ctx context.Context, tx *repository.Store, raw string) (*models.ReportCategory, error) {
	invalid := Invalid(map[string]string{"category_id": "Select a valid category."})

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, invalid
	}
	cat, err := tx.Catalog().GetCategory(ctx, id, false)
	if err != nil {
		return nil, mapNotFound(err, invalid)
	}
	if cat.Deleted {
		return nil, invalid
	}
	return cat, nil
}

// Ads

func (s *AdminService) ListAds(ctx context.Context, flags repository.FlagFilter) ([]dto.AdResponse, error) {
	ads, err := s.store.Ads().ListAds(ctx, flags)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdResponse, 0, len(ads))
	for i := range ads {
		out = append(out, toAdResponse(&ads[i], ""))
	}
	return out, nil
}

func (s *AdminService) GetAd(ctx context.Context, id uuid.UUID) (*dto.AdResponse, error) {
	ad, err := s.store.Ads().GetAd(ctx, id, false)
	if err != nil {
		return nil, mapNotFound(err, ErrAdNotFound)
	}
	resp := toAdResponse(ad, "")
	return &resp, nil
}

func (s *AdminService) CreateAd(ctx context.Context, req *dto.AdRequest) (*dto.AdResponse, error) {
	if errs := validation.Struct(req); errs != nil {
		return nil, Invalid(errs)
	}
	active, deleted, err := resolveFlags(req.IsActive, req.IsDeleted, true, false)
	if err != nil {
		return nil, err
	}

	ad := &models.Ad{
		Title:    strings.TrimSpace(req.Title),
		Video:    req.Video,
		Duration: req.Duration,
		Active:   active,
		Deleted:  deleted,
	}
	if err := s.store.Ads().CreateAd(ctx, ad); err != nil {
		return nil, err
	}
	resp := toAdResponse(ad, "")
	return &resp, nil
}

func (s *AdminService) UpdateAd(ctx context.Context, id uuid.UUID, req *dto.AdRequest) (*dto.AdResponse, error) {
	if errs := validation.Struct(req); errs != nil {
		return nil, Invalid(errs)
	}

	var ad *models.Ad
	err := s.store.InTx(ctx, func(tx *repository.Store) error {
		var err error
		ad, err = tx.Ads().GetAd(ctx, id, false)
		if err != nil {
			return mapNotFound(err, ErrAdNotFound)
		}
		active, deleted, err := resolveFlags(req.IsActive, req.IsDeleted, ad.Active, ad.Deleted)
		if err != nil {
			return err
		}
		ad.Title = strings.TrimSpace(req.Title)
		ad.Video = req.Video
		ad.Duration = req.Duration
		ad.Active = active
		ad.Deleted = deleted
		return tx.Ads().SaveAd(ctx, ad)
	})
	if err != nil {
		return nil, err
	}
	resp := toAdResponse(ad, "")
	return &resp, nil
}

func (s *AdminService) DeleteAd(ctx context.Context, id uuid.UUID) error {
	return s.store.InTx(ctx, func(tx *repository.Store) error {
		ad, err := tx.Ads().GetAd(ctx, id, false)
		if err != nil {
			return mapNotFound(err, ErrAdNotFound)
		}
		ad.Active = false
		ad.Deleted = true
		return tx.Ads().SaveAd(ctx, ad)
	})
}

// Users

// ListUsers pages through active users. limit is clamped to 1..200 with a
// default of 50.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) (*dto.UserListResponse, error) {
	if limit <= 0 {
		limit = defaultUserPageSize
	}
	if limit > maxUserPageSize {
		limit = maxUserPageSize
	}
	if offset < 0 {
		offset = 0
	}

	users, total, err := s.store.Users().ListActive(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return &dto.UserListResponse{Users: out, Total: total, Limit: limit, Offset: offset}, nil
}
