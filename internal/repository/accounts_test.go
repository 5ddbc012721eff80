package repository

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepo_FindByEmailIgnoresCase(t *testing.T) {
	db := testutil.DB(t)
	store := NewStore(db)
	u := testutil.SeedUser(t, db, "mixed@example.com")

	got, err := store.Users().FindByEmail(context.Background(), "  MIXED@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Ada Lovelace", got.FullName)
}

func TestUserRepo_DuplicateEmailIsTranslated(t *testing.T) {
	db := testutil.DB(t)
	store := NewStore(db)
	testutil.SeedUser(t, db, "dup@example.com")

	err := store.Users().Create(context.Background(), &models.User{Email: "dup@example.com", IsActive: true})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestOtpRepo_ValidAndMarkUsedOnce(t *testing.T) {
	db := testutil.DB(t)
	store := NewStore(db)
	ctx := context.Background()
	now := time.Now()

	valid := &models.OtpCode{Email: "otp@example.com", CodeHash: "h1", ExpiresAt: now.Add(10 * time.Minute)}
	expired := &models.OtpCode{Email: "otp@example.com", CodeHash: "h2", ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, store.OTPs().Create(ctx, valid))
	require.NoError(t, store.OTPs().Create(ctx, expired))

	codes, err := store.OTPs().ListValid(ctx, "OTP@example.com", now)
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, valid.ID, codes[0].ID)

	ok, err := store.OTPs().MarkUsed(ctx, valid.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.OTPs().MarkUsed(ctx, valid.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	codes, err = store.OTPs().ListValid(ctx, "otp@example.com", now)
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestTokenRepo_RevokeOnce(t *testing.T) {
	db := testutil.DB(t)
	store := NewStore(db)
	ctx := context.Background()
	u := testutil.SeedUser(t, db, "tok@example.com")

	tok := &models.RefreshToken{UserID: u.ID, TokenHash: "abc", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Tokens().Create(ctx, tok))

	found, err := store.Tokens().FindActive(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, tok.ID, found.ID)

	ok, err := store.Tokens().Revoke(ctx, tok.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = store.Tokens().Revoke(ctx, tok.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Tokens().FindActive(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}
