// internal/handlers/order_handler.go
package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tokosini/storefront/internal/models"
	"github.com/tokosini/storefront/internal/services"
	"github.com/tokosini/storefront/internal/utils"
)

type OrderHandler struct {
	orderService   *services.OrderService
	addressService *services.AddressService
}

type checkoutRequest struct {
	// Optional; when omitted the default address is used.
	ShippingAddressID *uuid.UUID `json:"shipping_address_id"`
}

func NewOrderHandler(orderService *services.OrderService, addressService *services.AddressService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		addressService: addressService,
	}
}

// Checkout places the order from the current cart.
// POST /api/v1/orders
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// Body is optional; an empty body means "ship to the default address".
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	addressID := uuid.Nil
	if req.ShippingAddressID != nil {
		addressID = *req.ShippingAddressID
	} else {
		def, err := h.addressService.GetDefault(userID)
		if err != nil {
			respondServiceError(c, err, "Address")
			return
		}
		if def == nil {
			utils.BadRequestResponse(c, "No shipping address selected and no default address set", nil)
			return
		}
		addressID = def.ID
	}

	order, err := h.orderService.PlaceOrder(userID, addressID)
	if err != nil {
		respondServiceError(c, err, "Address")
		return
	}

	utils.CreatedResponse(c, order)
}

// ListOrders returns the user's order history, newest first.
// GET /api/v1/orders?status=
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var status *models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		s := models.OrderStatus(raw)
		if !models.ValidOrderStatus(s) {
			utils.BadRequestResponse(c, "Unknown order status", nil)
			return
		}
		status = &s
	}

	orders, err := h.orderService.ListUserOrders(userID, status)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}

	utils.SuccessResponse(c, orders)
}

// GetOrder returns one of the user's orders with its lines.
// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetUserOrder(id, userID)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}

	items, err := h.orderService.GetOrderItems(order.ID)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}
	order.Items = items

	utils.SuccessResponse(c, order)
}
