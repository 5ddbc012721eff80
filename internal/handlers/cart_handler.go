package handlers

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartService    *services.CartService
	libraryService *services.LibraryService
}

func NewCartHandler(cartService *services.CartService, libraryService *services.LibraryService) *CartHandler {
	return &CartHandler{cartService: cartService, libraryService: libraryService}
}

// Add accepts a single {report_id, quantity} object or an array of them.
// Each item is validated and applied on its own; the response carries one
// result per item plus the updated cart.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return reject(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	items, err := parseCartItems(c.Body())
	if err != nil {
		return badBody(c)
	}
	if len(items) == 0 {
		return invalid(c, map[string]string{"items": "At least one item is required."})
	}

	results := make([]dto.CartAddResult, len(items))
	var (
		pending []services.CartItem
		slots   []int
	)
	for i, it := range items {
		results[i].ReportID = it.ReportID
		if fields := validation.Struct(&it); fields != nil {
			results[i].Error = "Validation failed"
			results[i].Fields = fields
			continue
		}
		qty := 1
		if it.Quantity != nil {
			qty = *it.Quantity
		}
		pending = append(pending, services.CartItem{ReportID: uuid.MustParse(it.ReportID), Quantity: qty})
		slots = append(slots, i)
	}

	added := 0
	for j, res := range h.cartService.AddBatch(c.UserContext(), userID, pending) {
		out := &results[slots[j]]
		if res.Err != nil {
			var se *services.Error
			if errors.As(res.Err, &se) {
				out.Error = se.Message
				out.Fields = se.Fields
			} else {
				out.Error = "Internal server error"
			}
			continue
		}
		id := res.Entry.ID
		out.Added = true
		out.EntryID = &id
		out.Quantity = res.Entry.Quantity
		added++
	}

	cart, err := h.cartService.List(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}

	resp := dto.CartAddResponse{Results: results, Cart: cart}
	if added == 0 {
		return reject(c, fiber.StatusBadRequest, "No items were added to the cart", resp)
	}
	return ok(c, fiber.StatusCreated, "Item(s) added to cart", resp)
}

func parseCartItems(body []byte) ([]dto.CartAddItem, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errors.New("empty body")
	}
	if body[0] == '[' {
		var items []dto.CartAddItem
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var item dto.CartAddItem
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, err
	}
	return []dto.CartAddItem{item}, nil
}

func (h *CartHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return reject(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	cart, err := h.cartService.List(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Cart fetched successfully", cart)
}

func (h *CartHandler) Toggle(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return reject(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	var req dto.CartToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if fields := validation.Struct(&req); fields != nil {
		return invalid(c, fields)
	}

	entryID := uuid.MustParse(req.CartEntryID)
	checked, err := h.cartService.Toggle(c.UserContext(), userID, entryID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Cart item updated", dto.CartToggleResponse{
		CartEntryID: entryID,
		IsChecked:   checked,
	})
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return reject(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}
	entryID, valid := paramID(c)
	if !valid {
		return fail(c, services.ErrCartEntryNotFound)
	}

	if err := h.cartService.Remove(c.UserContext(), userID, entryID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Cart item removed", nil)
}

// Convert moves every checked cart entry into the user's library.
func (h *CartHandler) Convert(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return reject(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	n, err := h.libraryService.ConvertCheckedCart(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}
	if n == 0 {
		return ok(c, fiber.StatusOK, "No checked items in cart", dto.ConvertResponse{})
	}
	return ok(c, fiber.StatusCreated, "Cart converted to reports", dto.ConvertResponse{ReportsAdded: n})
}
