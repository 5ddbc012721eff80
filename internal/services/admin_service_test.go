package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestAdminService_CategoryLifecycle(t *testing.T) {
	_, store := newStore(t)
	admin := NewAdminService(store)
	catalog := NewCatalogService(store, testConfig())
	ctx := context.Background()

	c, err := admin.CreateCategory(ctx, &dto.CategoryRequest{Name: "Vastu", ShortDesc: "Homes"})
	require.NoError(t, err)
	assert.True(t, c.IsActive)
	assert.False(t, c.IsDeleted)

	updated, err := admin.UpdateCategory(ctx, c.ID, &dto.CategoryRequest{Name: "Vastu Shastra"})
	require.NoError(t, err)
	assert.Equal(t, "Vastu Shastra", updated.Name)
	assert.True(t, updated.IsActive, "nil flags keep stored values")

	require.NoError(t, admin.DeleteCategory(ctx, c.ID))
	_, err = catalog.GetCategory(ctx, c.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	got, err := admin.GetCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
	assert.False(t, got.IsActive)

	deleted, err := admin.ListCategories(ctx, repository.FlagFilter{Deleted: boolPtr(true)})
	require.NoError(t, err)
	assert.Len(t, deleted, 1)
}

func TestAdminService_Validation(t *testing.T) {
	db, store := newStore(t)
	admin := NewAdminService(store)
	ctx := context.Background()

	_, err := admin.CreateCategory(ctx, &dto.CategoryRequest{Name: "x"})
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "name")

	_, err = admin.CreateCategory(ctx, &dto.CategoryRequest{Name: "Both", IsActive: boolPtr(true), IsDeleted: boolPtr(true)})
	assert.ErrorIs(t, err, ErrValidation)

	cat := testutil.SeedCategory(t, db, "Tarot")
	_, err = admin.CreateReport(ctx, &dto.ReportRequest{CategoryID: cat.ID.String(), Title: "ab", Price: decimal.NewFromInt(1)})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "title")

	_, err = admin.CreateReport(ctx, &dto.ReportRequest{CategoryID: cat.ID.String(), Title: "Yearly", Price: decimal.NewFromInt(-1)})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "price")

	_, err = admin.CreateReport(ctx, &dto.ReportRequest{CategoryID: uuid.NewString(), Title: "Yearly", Price: decimal.NewFromInt(1)})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "category_id")

	require.NoError(t, admin.DeleteCategory(ctx, cat.ID))
	_, err = admin.CreateReport(ctx, &dto.ReportRequest{CategoryID: cat.ID.String(), Title: "Yearly", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = admin.CreateAd(ctx, &dto.AdRequest{Title: "Zero", Duration: 0})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "duration")
}

func TestAdminService_ReportSoftDeleteHidesFromCatalog(t *testing.T) {
	db, store := newStore(t)
	admin := NewAdminService(store)
	catalog := NewCatalogService(store, testConfig())
	ctx := context.Background()
	cat := testutil.SeedCategory(t, db, "Tarot")

	r, err := admin.CreateReport(ctx, &dto.ReportRequest{CategoryID: cat.ID.String(), Title: "Yearly", File: "r/y.pdf", Price: decimal.RequireFromString("9.99")})
	require.NoError(t, err)
	assert.Equal(t, "Tarot", r.CategoryName)
	assert.Equal(t, "r/y.pdf", r.File, "admin sees raw media refs")

	listed, err := catalog.ListReports(ctx, &cat.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "https://cdn.example.com/media/r/y.pdf", listed[0].File)

	require.NoError(t, admin.DeleteReport(ctx, r.ID))

	listed, err = catalog.ListReports(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, listed)
	_, err = catalog.GetReport(ctx, r.ID)
	assert.ErrorIs(t, err, ErrReportNotFound)

	all, err := admin.ListReports(ctx, nil, repository.FlagFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.ErrorIs(t, admin.DeleteReport(ctx, uuid.New()), ErrReportNotFound)
}

func TestAdminService_AdsAndUsers(t *testing.T) {
	db, store := newStore(t)
	admin := NewAdminService(store)
	ctx := context.Background()

	ad, err := admin.CreateAd(ctx, &dto.AdRequest{Title: "Shoes", Video: "ads/s.mp4", Duration: 15})
	require.NoError(t, err)
	updated, err := admin.UpdateAd(ctx, ad.ID, &dto.AdRequest{Title: "Shoes v2", Duration: 20, IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, 20, updated.Duration)

	inactive, err := admin.ListAds(ctx, repository.FlagFilter{Active: boolPtr(false)})
	require.NoError(t, err)
	assert.Len(t, inactive, 1)

	testutil.SeedUser(t, db, "a@example.com")
	testutil.SeedUser(t, db, "b@example.com")
	page, err := admin.ListUsers(ctx, 1, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Len(t, page.Users, 1)
	assert.Equal(t, 1, page.Limit)

	page, err = admin.ListUsers(ctx, 0, -5)
	require.NoError(t, err)
	assert.Equal(t, 50, page.Limit)
	assert.Equal(t, 0, page.Offset)
}
