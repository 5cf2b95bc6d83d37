// internal/models/address.go
package models

import "github.com/google/uuid"

// ShippingAddress belongs to exactly one user. At most one address per user
// carries IsDefault=true; the write path keeps that invariant, not the
// schema.
type ShippingAddress struct {
	BaseModel
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Name       string    `json:"name" gorm:"size:100;not null"`
	Phone      string    `json:"phone" gorm:"size:30;not null"`
	Address    string    `json:"address" gorm:"type:text;not null"`
	City       string    `json:"city" gorm:"size:100;not null"`
	PostalCode string    `json:"postal_code" gorm:"size:20;not null"`
	IsDefault  bool      `json:"is_default" gorm:"default:false"`
}
