package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/repository"
	"github.com/google/uuid"
)

type CartService struct {
	store *repository.Store
}

func NewCartService(store *repository.Store) *CartService {
	return &CartService{store: store}
}

// CartItem is one requested addition.
type CartItem struct {
	ReportID uuid.UUID
	Quantity int
}

// CartItemResult is the outcome of adding one CartItem. Exactly one of Entry
// and Err is set.
type CartItemResult struct {
	ReportID uuid.UUID
	Entry    *models.CartEntry
	Err      error
}

// Add puts quantity copies of an available report in the user's cart. A
// second add of the same report increments the existing entry; the amount
// recorded on first add is kept.
func (s *CartService) Add(ctx context.Context, userID, reportID uuid.UUID, quantity int) (*models.CartEntry, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var entry *models.CartEntry
	err := s.store.InTx(ctx, func(tx *repository.Store) error {
		report, err := tx.Catalog().GetReport(ctx, reportID, true)
		if err != nil {
			return mapNotFound(err, ErrReportNotFound)
		}

		entry, err = tx.Carts().AddOrIncrement(ctx, userID, report.ID, quantity, report.Price)
		if err != nil {
			return fmt.Errorf("add to cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// AddBatch adds each item in its own transaction so one bad item does not
// undo the others. Results keep the input order.
func (s *CartService) AddBatch(ctx context.Context, userID uuid.UUID, items []CartItem) []CartItemResult {
	results := make([]CartItemResult, 0, len(items))
	for _, it := range items {
		entry, err := s.Add(ctx, userID, it.ReportID, it.Quantity)
		if err != nil && !isClientError(err) {
			slog.Error("cart add failed", "user_id", userID.String(), "report_id", it.ReportID.String(), "action", "cart_add", "error", err)
		}
		results = append(results, CartItemResult{ReportID: it.ReportID, Entry: entry, Err: err})
	}
	return results
}

func (s *CartService) List(ctx context.Context, userID uuid.UUID) ([]repository.CartLine, error) {
	return s.store.Carts().ListForUser(ctx, userID)
}

// Toggle flips the checked flag of an owned entry and returns the new value.
func (s *CartService) Toggle(ctx context.Context, userID, entryID uuid.UUID) (bool, error) {
	var checked bool
	err := s.store.InTx(ctx, func(tx *repository.Store) error {
		entry, err := tx.Carts().GetOwned(ctx, userID, entryID)
		if err != nil {
			return mapNotFound(err, ErrCartEntryNotFound)
		}
		checked = !entry.Checked
		return tx.Carts().SetChecked(ctx, entry.ID, checked)
	})
	return checked, err
}

func (s *CartService) Remove(ctx context.Context, userID, entryID uuid.UUID) error {
	n, err := s.store.Carts().DeleteOwned(ctx, userID, []uuid.UUID{entryID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCartEntryNotFound
	}
	return nil
}

// isClientError reports whether err is one of the typed service errors.
func isClientError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
