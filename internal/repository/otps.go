package repository

import (
	"context"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OtpRepo struct {
	db *gorm.DB
}

func (r *OtpRepo) Create(ctx context.Context, o *models.OtpCode) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// ListValid returns unused codes for email that have not expired at now,
// newest first.
func (r *OtpRepo) ListValid(ctx context.Context, email string, now time.Time) ([]models.OtpCode, error) {
	var out []models.OtpCode
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ? AND used = ? AND expires_at >= ?", strings.ToLower(strings.TrimSpace(email)), false, now).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// MarkUsed flips the used flag only if it is still unset, so two concurrent
// verifications cannot both consume the same code.
func (r *OtpRepo) MarkUsed(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.OtpCode{}).
		Where("id = ? AND used = ?", id, false).
		Updates(map[string]interface{}{"used": true, "updated_at": time.Now()})
	return res.RowsAffected == 1, res.Error
}
