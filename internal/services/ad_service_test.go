package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type adFixture struct {
	db     *gorm.DB
	store  *repository.Store
	svc    *AdService
	user   *models.User
	report *models.Report
	ugr    *models.UserGeneratedReport
	ads    []*models.Ad
}

func newAdFixture(t *testing.T, adCount int) *adFixture {
	t.Helper()
	db, store := newStore(t)
	cfg := testConfig()
	f := &adFixture{
		db:    db,
		store: store,
		svc:   NewAdService(store, cfg, NewUnlockService(store, cfg)),
		user:  testutil.SeedUser(t, db, "viewer@example.com"),
	}
	cat := testutil.SeedCategory(t, db, "Tarot")
	f.report = testutil.SeedReport(t, db, cat.ID, "Yearly", "20")
	f.ugr = testutil.SeedGeneratedReport(t, db, f.user.ID, f.report)
	for i := 0; i < adCount; i++ {
		f.ads = append(f.ads, testutil.SeedAd(t, db, "ad-"+string(rune('a'+i)), 10+i))
	}
	return f
}

func (f *adFixture) reload(t *testing.T) *models.UserGeneratedReport {
	t.Helper()
	var g models.UserGeneratedReport
	require.NoError(t, f.db.First(&g, "id = ?", f.ugr.ID).Error)
	return &g
}

func TestAdService_OfferExcludesWatchedAndTruncates(t *testing.T) {
	f := newAdFixture(t, 5)
	ctx := context.Background()

	offer, err := f.svc.Offer(ctx, f.user.ID, f.report.ID)
	require.NoError(t, err)
	assert.True(t, offer.Locked)
	assert.Equal(t, 3, offer.AdsRequired)
	assert.Len(t, offer.Ads, 3)

	_, err = f.svc.RecordCompletion(ctx, f.user.ID, f.report.ID, f.ads[0].ID)
	require.NoError(t, err)
	_, err = f.svc.RecordCompletion(ctx, f.user.ID, f.report.ID, f.ads[1].ID)
	require.NoError(t, err)

	offer, err = f.svc.Offer(ctx, f.user.ID, f.report.ID)
	require.NoError(t, err)
	require.Len(t, offer.Ads, 3)
	for _, ad := range offer.Ads {
		assert.NotEqual(t, f.ads[0].ID, ad.ID)
		assert.NotEqual(t, f.ads[1].ID, ad.ID)
		assert.Contains(t, ad.Video, "https://cdn.example.com/media/ads/")
	}
}

func TestAdService_OfferWithNothingLeft(t *testing.T) {
	f := newAdFixture(t, 0)

	offer, err := f.svc.Offer(context.Background(), f.user.ID, f.report.ID)
	require.NoError(t, err)
	assert.True(t, offer.Locked)
	assert.Empty(t, offer.Ads)
	assert.Equal(t, "No ads available right now", offer.Message)
}

func TestAdService_OfferUnknownReport(t *testing.T) {
	f := newAdFixture(t, 1)
	_, err := f.svc.Offer(context.Background(), f.user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestAdService_RecordCompletionIsIdempotent(t *testing.T) {
	f := newAdFixture(t, 3)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		resp, err := f.svc.RecordCompletion(ctx, f.user.ID, f.report.ID, f.ads[0].ID)
		require.NoError(t, err)
		assert.True(t, resp.AdCompleted)
		assert.Equal(t, 1, resp.AdsCompletedCount)
		assert.False(t, resp.ReportUnlocked)
	}

	var watches []models.AdWatch
	require.NoError(t, f.db.Find(&watches).Error)
	require.Len(t, watches, 1)
	assert.True(t, watches[0].Completed)
	assert.Equal(t, f.ads[0].Duration, watches[0].WatchedSeconds)

	g := f.reload(t)
	assert.True(t, g.IsLocked)
	assert.Equal(t, 1, g.AdsCount)
}

func TestAdService_UnlocksAtThreshold(t *testing.T) {
	f := newAdFixture(t, 4)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		resp, err := f.svc.RecordCompletion(ctx, f.user.ID, f.report.ID, f.ads[i].ID)
		require.NoError(t, err)
		assert.False(t, resp.ReportUnlocked)
		assert.Equal(t, i+1, f.reload(t).AdsCount)
	}

	resp, err := f.svc.RecordCompletion(ctx, f.user.ID, f.report.ID, f.ads[2].ID)
	require.NoError(t, err)
	assert.True(t, resp.ReportUnlocked)
	assert.Equal(t, 3, resp.AdsCompletedCount)

	g := f.reload(t)
	assert.False(t, g.IsLocked)
	require.NotNil(t, g.UnlockedMode)
	assert.Equal(t, models.UnlockModeAds, *g.UnlockedMode)
	require.NotNil(t, g.UnlockedOn)
	assert.Equal(t, 3, g.AdsCount)
	assert.Equal(t, 9, g.CreditsUsed)
	assert.Equal(t, f.ads[0].Duration+f.ads[1].Duration+f.ads[2].Duration, g.AdsDuration)

	offer, err := f.svc.Offer(ctx, f.user.ID, f.report.ID)
	require.NoError(t, err)
	assert.False(t, offer.Locked)
	assert.Empty(t, offer.Ads)
}

func TestAdService_ReentryAfterUnlockChangesNothing(t *testing.T) {
	f := newAdFixture(t, 4)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.svc.RecordCompletion(ctx, f.user.ID, f.report.ID, f.ads[i].ID)
		require.NoError(t, err)
	}
	before := f.reload(t)

	f.svc.unlocks.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	resp, err := f.svc.RecordCompletion(ctx, f.user.ID, f.report.ID, f.ads[3].ID)
	require.NoError(t, err)
	assert.True(t, resp.ReportUnlocked)
	assert.Equal(t, 4, resp.AdsCompletedCount)

	after := f.reload(t)
	assert.False(t, after.IsLocked)
	assert.True(t, before.UnlockedOn.Equal(*after.UnlockedOn))
	assert.Equal(t, before.CreditsUsed, after.CreditsUsed)
	assert.Equal(t, before.AdsCount, after.AdsCount)
	assert.Equal(t, before.AdsDuration, after.AdsDuration)
}

func TestAdService_RecordCompletionNeedsLibraryEntry(t *testing.T) {
	f := newAdFixture(t, 1)
	ctx := context.Background()
	stranger := testutil.SeedUser(t, f.db, "stranger@example.com")

	_, err := f.svc.RecordCompletion(ctx, stranger.ID, f.report.ID, f.ads[0].ID)
	assert.ErrorIs(t, err, ErrGeneratedReportNotFound)

	var n int64
	require.NoError(t, f.db.Model(&models.AdWatch{}).Count(&n).Error)
	assert.Zero(t, n, "no ledger row is written without a library entry")
}

func TestAdService_RecordCompletionRejectsInactiveAd(t *testing.T) {
	f := newAdFixture(t, 1)
	f.ads[0].Active = false
	require.NoError(t, f.db.Save(f.ads[0]).Error)

	_, err := f.svc.RecordCompletion(context.Background(), f.user.ID, f.report.ID, f.ads[0].ID)
	assert.ErrorIs(t, err, ErrAdNotFound)

	_, err = f.svc.RecordCompletion(context.Background(), f.user.ID, uuid.New(), f.ads[0].ID)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestAdService_SeparateThresholdAndBatchSize(t *testing.T) {
	db, store := newStore(t)
	cfg := testConfig()
	cfg.AdsPerBatch = 1
	cfg.AdsRequiredForUnlock = 2
	svc := NewAdService(store, cfg, NewUnlockService(store, cfg))
	user := testutil.SeedUser(t, db, "cfg@example.com")
	cat := testutil.SeedCategory(t, db, "Tarot")
	rep := testutil.SeedReport(t, db, cat.ID, "Yearly", "20")
	testutil.SeedGeneratedReport(t, db, user.ID, rep)
	a1 := testutil.SeedAd(t, db, "one", 5)
	a2 := testutil.SeedAd(t, db, "two", 5)
	ctx := context.Background()

	offer, err := svc.Offer(ctx, user.ID, rep.ID)
	require.NoError(t, err)
	assert.Len(t, offer.Ads, 1)
	assert.Equal(t, 2, offer.AdsRequired)

	_, err = svc.RecordCompletion(ctx, user.ID, rep.ID, a1.ID)
	require.NoError(t, err)
	resp, err := svc.RecordCompletion(ctx, user.ID, rep.ID, a2.ID)
	require.NoError(t, err)
	assert.True(t, resp.ReportUnlocked)
}
