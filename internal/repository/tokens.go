package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TokenRepo struct {
	db *gorm.DB
}

func (r *TokenRepo) Create(ctx context.Context, t *models.RefreshToken) error {
	return r.db.WithContext(ctx).Omit("User").Create(t).Error
}

// FindActive looks up a non-revoked token by its hash. Expiry is checked by
// the caller.
func (r *TokenRepo) FindActive(ctx context.Context, hash string) (*models.RefreshToken, error) {
	var t models.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND revoked = ?", hash, false).
		First(&t).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// Revoke marks a token revoked and reports whether this call did it.
func (r *TokenRepo) Revoke(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("id = ? AND revoked = ?", id, false).
		Update("revoked", true)
	return res.RowsAffected == 1, res.Error
}

func (r *TokenRepo) RevokeByHash(ctx context.Context, hash string) error {
	return r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
}
