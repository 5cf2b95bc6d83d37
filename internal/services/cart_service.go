// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tokosini/storefront/internal/models"
)

type CartService struct {
	db              *gorm.DB
	maxLineQuantity int
}

func NewCartService(db *gorm.DB, maxLineQuantity int) *CartService {
	if maxLineQuantity <= 0 {
		maxLineQuantity = 99
	}
	return &CartService{db: db, maxLineQuantity: maxLineQuantity}
}

// AddItem upserts a cart line. Adding a product already in the cart bumps
// the quantity; the combined quantity is checked against current stock and
// against the per-line cap.
func (s *CartService) AddItem(userID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var item models.CartItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	switch {
	case err == nil:
		newQuantity := item.Quantity + quantity
		if newQuantity > s.maxLineQuantity {
			return nil, fmt.Errorf("%w: at most %d units per product", ErrValidation, s.maxLineQuantity)
		}
		if newQuantity > product.Stock {
			return nil, &InsufficientStockError{ProductName: product.Name}
		}
		if err := s.db.Model(&item).Update("quantity", newQuantity).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
		item.Quantity = newQuantity
	case errors.Is(err, gorm.ErrRecordNotFound):
		if quantity > s.maxLineQuantity {
			return nil, fmt.Errorf("%w: at most %d units per product", ErrValidation, s.maxLineQuantity)
		}
		if quantity > product.Stock {
			return nil, &InsufficientStockError{ProductName: product.Name}
		}
		item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	default:
		return nil, fmt.Errorf("database error: %w", err)
	}

	item.Product = product
	return &item, nil
}

// SetQuantity overwrites a line's quantity. Zero or negative removes the
// line, matching the cart page's update semantics.
func (s *CartService) SetQuantity(userID, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(userID, productID)
	}
	if quantity > s.maxLineQuantity {
		return fmt.Errorf("%w: at most %d units per product", ErrValidation, s.maxLineQuantity)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if quantity > product.Stock {
		return &InsufficientStockError{ProductName: product.Name}
	}

	res := s.db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveItem hard-deletes the line. Cart rows are ephemeral; keeping
// tombstones would trip the (user, product) unique index on re-add.
func (s *CartService) RemoveItem(userID, productID uuid.UUID) error {
	res := s.db.Unscoped().
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListItems returns the user's lines joined against current product rows.
// Price, name and stock are live catalog values, not snapshots.
func (s *CartService) ListItems(userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.db.Preload("Product").Preload("Product.Category").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart items: %w", err)
	}
	return items, nil
}

func (s *CartService) Subtotal(userID uuid.UUID) (float64, error) {
	items, err := s.ListItems(userID)
	if err != nil {
		return 0, err
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.Subtotal()
	}
	return subtotal, nil
}

// Clear empties the user's cart. Order placement passes its transaction
// handle so the clear commits or rolls back with the rest of the checkout;
// outside a transaction callers pass s.db via ClearAll.
func (s *CartService) Clear(tx *gorm.DB, userID uuid.UUID) error {
	if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *CartService) ClearAll(userID uuid.UUID) error {
	return s.Clear(s.db, userID)
}
