// internal/handlers/cart_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tokosini/storefront/internal/services"
	"github.com/tokosini/storefront/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

type setCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart returns the cart lines with live product data and the subtotal.
// GET /api/v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.cartService.ListItems(userID)
	if err != nil {
		respondServiceError(c, err, "Cart")
		return
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.Subtotal()
	}

	utils.SuccessResponse(c, gin.H{
		"items":    items,
		"subtotal": subtotal,
	})
}

// AddItem adds a product to the cart, merging into an existing line.
// POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.cartService.AddItem(userID, req.ProductID, req.Quantity)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}

	utils.CreatedResponse(c, item)
}

// SetQuantity overwrites a line's quantity; zero removes the line.
// PUT /api/v1/cart/items/:product_id
func (h *CartHandler) SetQuantity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	var req setCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := h.cartService.SetQuantity(userID, productID, req.Quantity); err != nil {
		respondServiceError(c, err, "Cart item")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Cart updated"})
}

// RemoveItem deletes one line.
// DELETE /api/v1/cart/items/:product_id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	if err := h.cartService.RemoveItem(userID, productID); err != nil {
		respondServiceError(c, err, "Cart item")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Item removed"})
}

// ClearCart empties the cart.
// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.cartService.ClearAll(userID); err != nil {
		respondServiceError(c, err, "Cart")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Cart cleared"})
}
