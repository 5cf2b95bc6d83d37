// internal/models/order.go
package models

import "github.com/google/uuid"

// Order is immutable once placed, except Status. The shipping address is a
// reference, not a snapshot: editing the address later changes what
// historical orders display. That matches the storefront's documented
// behavior.
type Order struct {
	BaseModel
	UserID            uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	ShippingAddressID uuid.UUID   `json:"shipping_address_id" gorm:"type:uuid;not null"`
	TotalAmount       float64     `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	ShippingCost      float64     `json:"shipping_cost" gorm:"type:decimal(10,2);not null"`
	Status            OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	// Relationships
	User            User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ShippingAddress *ShippingAddress `json:"shipping_address,omitempty" gorm:"foreignKey:ShippingAddressID"`
	Items           []OrderItem      `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem captures the unit price at placement time. Catalog price changes
// must never alter a placed order's total.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2);not null"`

	// Relationships
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
