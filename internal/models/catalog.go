// internal/models/catalog.go
package models

import "github.com/google/uuid"

type Category struct {
	BaseModel
	Name        string `json:"name" gorm:"size:100;not null"`
	Description string `json:"description" gorm:"type:text"`
}

type Product struct {
	BaseModel
	Name        string     `json:"name" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Price       float64    `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int        `json:"stock" gorm:"not null;default:0"`
	CategoryID  *uuid.UUID `json:"category_id" gorm:"type:uuid;index"`
	ImageURL    string     `json:"image_url" gorm:"size:500"`

	// Weak reference: the category row may outlive or predate the product,
	// but the store rejects deleting a category that products still point at.
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

// CategoryName is what listings display; orphaned products fall back to
// "Uncategorized".
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return "Uncategorized"
	}
	return p.Category.Name
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}
