package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepo struct {
	db *gorm.DB
}

// CartLine is a cart entry joined with the report and category columns shown
// to the user.
type CartLine struct {
	ID               uuid.UUID       `json:"id"`
	ReportID         uuid.UUID       `json:"report_id"`
	Title            string          `json:"title"`
	ShortDescription string          `json:"short_description"`
	Quantity         int             `json:"quantity"`
	Amount           decimal.Decimal `json:"amount"`
	Checked          bool            `json:"is_checked"`
	CreatedAt        time.Time       `json:"created_at"`
}

// AddOrIncrement inserts a checked entry or, when (user, report) already has
// one, adds qty to its quantity. The unique index turns concurrent inserts
// into increments instead of duplicate rows. amount only applies on insert.
func (r *CartRepo) AddOrIncrement(ctx context.Context, userID, reportID uuid.UUID, qty int, amount decimal.Decimal) (*models.CartEntry, error) {
	entry := models.CartEntry{
		UserID:   userID,
		ReportID: reportID,
		Quantity: qty,
		Amount:   amount,
		Checked:  true,
	}

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "report_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_entries.quantity + ?", qty),
				"updated_at": time.Now(),
			}),
		}).
		Create(&entry).Error
	if err != nil {
		return nil, err
	}

	var stored models.CartEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND report_id = ?", userID, reportID).
		First(&stored).Error; err != nil {
		return nil, notFound(err)
	}
	return &stored, nil
}

// ListForUser returns the user's cart in insertion order.
func (r *CartRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]CartLine, error) {
	lines := make([]CartLine, 0)
	err := r.db.WithContext(ctx).
		Table("cart_entries").
		Select("cart_entries.id, cart_entries.report_id, reports.title, " +
			"report_categories.short_desc AS short_description, cart_entries.quantity, " +
			"cart_entries.amount, cart_entries.checked, cart_entries.created_at").
		Joins("JOIN reports ON reports.id = cart_entries.report_id").
		Joins("JOIN report_categories ON report_categories.id = reports.category_id").
		Where("cart_entries.user_id = ?", userID).
		Order("cart_entries.created_at ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// GetOwned loads an entry only if it belongs to userID.
func (r *CartRepo) GetOwned(ctx context.Context, userID, entryID uuid.UUID) (*models.CartEntry, error) {
	var e models.CartEntry
	err := r.db.WithContext(ctx).
		Scopes(ForUser("cart_entries", userID)).
		Where("cart_entries.id = ?", entryID).
		First(&e).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (r *CartRepo) SetChecked(ctx context.Context, entryID uuid.UUID, checked bool) error {
	return r.db.WithContext(ctx).
		Model(&models.CartEntry{}).
		Where("id = ?", entryID).
		Updates(map[string]interface{}{"checked": checked, "updated_at": time.Now()}).Error
}

// ListChecked returns the user's checked entries with their reports loaded.
func (r *CartRepo) ListChecked(ctx context.Context, userID uuid.UUID) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	err := r.db.WithContext(ctx).
		Preload("Report").
		Scopes(ForUser("cart_entries", userID)).
		Where("cart_entries.checked = ?", true).
		Order("cart_entries.created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteOwned removes the given entries of userID and returns how many rows
// went away.
func (r *CartRepo) DeleteOwned(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Scopes(ForUser("cart_entries", userID)).
		Where("cart_entries.id IN ?", ids).
		Delete(&models.CartEntry{})
	return res.RowsAffected, res.Error
}

func (r *CartRepo) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.CartEntry{}).
		Scopes(ForUser("cart_entries", userID)).
		Count(&n).Error
	return n, err
}
