// internal/models/cart.go
package models

import "github.com/google/uuid"

// CartItem holds one (user, product) line. The pair is unique: adding an
// already-present product bumps the quantity instead of inserting a row.
type CartItem struct {
	BaseModel
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null"`

	// Relationships
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// Subtotal uses the product's current price, not a snapshot. The cart total
// can move if an admin edits a price between add-to-cart and checkout.
func (c *CartItem) Subtotal() float64 {
	return c.Product.Price * float64(c.Quantity)
}
