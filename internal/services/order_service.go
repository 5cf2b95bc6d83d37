// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tokosini/storefront/internal/models"
)

type OrderService struct {
	db        *gorm.DB
	catalog   *CatalogService
	cart      *CartService
	addresses *AddressService

	// Flat-rate shipping; the storefront does not compute weight- or
	// distance-based pricing.
	shippingFlatRate float64
}

func NewOrderService(db *gorm.DB, catalog *CatalogService, cart *CartService, addresses *AddressService, shippingFlatRate float64) *OrderService {
	return &OrderService{
		db:               db,
		catalog:          catalog,
		cart:             cart,
		addresses:        addresses,
		shippingFlatRate: shippingFlatRate,
	}
}

// PlaceOrder converts the user's cart into a persisted order.
//
// The cart-empty check and address ownership check run before the
// transaction; everything else is one atomic unit: stock is re-validated
// against current rows (not the stock at add-to-cart time), the order and
// its items are written with prices captured at this instant, stock is
// decremented conditionally, and the cart is cleared. Any failure rolls the
// whole sequence back: no partial order, no partial decrement, no orphaned
// cart clear. A lost stock race is not retried here; the caller re-fetches
// the cart and retries explicitly.
func (s *OrderService) PlaceOrder(userID, addressID uuid.UUID) (*models.Order, error) {
	cartItems, err := s.cart.ListItems(userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	if _, err := s.addresses.GetAddress(addressID, userID); err != nil {
		return nil, err
	}

	var order *models.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Re-validate every line against current stock and capture current
		// prices. Cart rows carry stale product data by design; the rows
		// read here inside the transaction are authoritative.
		type pricedLine struct {
			productID uuid.UUID
			name      string
			quantity  int
			price     float64
		}
		lines := make([]pricedLine, 0, len(cartItems))
		var subtotal float64

		for _, item := range cartItems {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %s no longer exists", item.ProductID)
				}
				return err
			}
			if item.Quantity > product.Stock {
				return &InsufficientStockError{ProductName: product.Name}
			}
			lines = append(lines, pricedLine{
				productID: product.ID,
				name:      product.Name,
				quantity:  item.Quantity,
				price:     product.Price,
			})
			subtotal += product.Price * float64(item.Quantity)
		}

		order = &models.Order{
			UserID:            userID,
			ShippingAddressID: addressID,
			TotalAmount:       subtotal + s.shippingFlatRate,
			ShippingCost:      s.shippingFlatRate,
			Status:            models.OrderStatusPending,
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, line := range lines {
			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: line.productID,
				Quantity:  line.quantity,
				Price:     line.price, // captured now; later catalog edits must not touch it
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}

			// Conditional decrement: under concurrent checkouts the
			// re-validation above is not enough on its own.
			if err := s.catalog.DecrementStock(tx, line.productID, line.name, line.quantity); err != nil {
				return err
			}
		}

		if err := s.cart.Clear(tx, userID); err != nil {
			return err
		}
		return nil
	})

	if err != nil {
		if IsInsufficientStock(err) {
			return nil, err
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"address_id": addressID,
		}).WithError(err).Error("Order placement rolled back")
		return nil, fmt.Errorf("%w: %v", ErrOrderFailed, err)
	}

	items, err := s.GetOrderItems(order.ID)
	if err != nil {
		// The order is committed; only the response enrichment failed.
		logrus.WithField("order_id", order.ID).WithError(err).
			Error("Failed to load items for placed order")
		return order, nil
	}
	order.Items = items
	return order, nil
}

// GetOrder loads an order with its shipping address joined live by
// reference. Editing the address later changes what this returns for
// historical orders; that is the storefront's documented behavior.
func (s *OrderService) GetOrder(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("ShippingAddress").Preload("User").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// GetUserOrder is GetOrder with an ownership guard; a mismatch reads as
// NotFound.
func (s *OrderService) GetUserOrder(id, userID uuid.UUID) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotFound
	}
	return order, nil
}

// GetOrderItems returns the order's lines with product name and image
// joined. Products are loaded unscoped so history survives a product being
// retired from the catalog; the captured price always comes from the line
// itself.
func (s *OrderService) GetOrderItems(orderID uuid.UUID) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := s.db.Preload("Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}
	return items, nil
}

// ListUserOrders returns the user's orders newest-first, optionally
// filtered by status.
func (s *OrderService) ListUserOrders(userID uuid.UUID, status *models.OrderStatus) ([]models.Order, error) {
	query := s.db.Preload("ShippingAddress").Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}
