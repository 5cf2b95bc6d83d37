// internal/handlers/address_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tokosini/storefront/internal/services"
	"github.com/tokosini/storefront/internal/utils"
)

type AddressHandler struct {
	addressService *services.AddressService
}

func NewAddressHandler(addressService *services.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// ListAddresses returns the user's address book, default first.
// GET /api/v1/addresses
func (h *AddressHandler) ListAddresses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	addresses, err := h.addressService.ListAddresses(userID)
	if err != nil {
		respondServiceError(c, err, "Address")
		return
	}

	utils.SuccessResponse(c, addresses)
}

// AddAddress creates an address, optionally as the new default.
// POST /api/v1/addresses
func (h *AddressHandler) AddAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	address, err := h.addressService.AddAddress(userID, &req)
	if err != nil {
		respondServiceError(c, err, "Address")
		return
	}

	utils.CreatedResponse(c, address)
}

// UpdateAddress edits an owned address.
// PUT /api/v1/addresses/:id
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	address, err := h.addressService.UpdateAddress(id, userID, &req)
	if err != nil {
		respondServiceError(c, err, "Address")
		return
	}

	utils.SuccessResponse(c, address)
}

// SetDefault promotes one address to default.
// PUT /api/v1/addresses/:id/default
func (h *AddressHandler) SetDefault(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.addressService.SetDefault(id, userID); err != nil {
		respondServiceError(c, err, "Address")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Default address updated"})
}

// DeleteAddress removes an owned address.
// DELETE /api/v1/addresses/:id
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.addressService.DeleteAddress(id, userID); err != nil {
		respondServiceError(c, err, "Address")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Address deleted"})
}
