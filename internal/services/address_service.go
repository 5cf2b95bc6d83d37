// internal/services/address_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tokosini/storefront/internal/models"
	"github.com/tokosini/storefront/internal/utils"
)

type AddressService struct {
	db *gorm.DB
}

type SaveAddressRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Phone      string `json:"phone" validate:"required,phone"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	IsDefault  bool   `json:"is_default"`
}

func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

// AddAddress creates an address. When the new address is marked default,
// clearing the previous default and inserting the new one happen in one
// transaction, so no interleaving leaves two defaults visible.
func (s *AddressService) AddAddress(userID uuid.UUID, req *SaveAddressRequest) (*models.ShippingAddress, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	address := &models.ShippingAddress{
		UserID:     userID,
		Name:       req.Name,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&models.ShippingAddress{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return fmt.Errorf("failed to clear default flags: %w", err)
			}
		}
		if err := tx.Create(address).Error; err != nil {
			return fmt.Errorf("failed to create address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

// UpdateAddress edits an address the user owns. An ownership mismatch reads
// as NotFound so the caller cannot probe other users' address IDs.
func (s *AddressService) UpdateAddress(id, userID uuid.UUID, req *SaveAddressRequest) (*models.ShippingAddress, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var address models.ShippingAddress
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&models.ShippingAddress{}).
				Where("user_id = ? AND id != ?", userID, id).
				Update("is_default", false).Error; err != nil {
				return fmt.Errorf("failed to clear default flags: %w", err)
			}
		}

		updates := map[string]interface{}{
			"name":        req.Name,
			"phone":       req.Phone,
			"address":     req.Address,
			"city":        req.City,
			"postal_code": req.PostalCode,
			"is_default":  req.IsDefault,
		}
		if err := tx.Model(&address).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &address, nil
}

// SetDefault promotes one address to default, demoting any other, in a
// single transaction.
func (s *AddressService) SetDefault(id, userID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ShippingAddress{}).
			Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			return fmt.Errorf("failed to clear default flags: %w", err)
		}

		res := tx.Model(&models.ShippingAddress{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_default", true)
		if res.Error != nil {
			return fmt.Errorf("failed to set default address: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// DeleteAddress removes an owned address. Deleting the current default
// leaves the user with no default; nothing is auto-promoted.
func (s *AddressService) DeleteAddress(id, userID uuid.UUID) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.ShippingAddress{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAddresses orders the default address first, then newest first.
func (s *AddressService) ListAddresses(userID uuid.UUID) ([]models.ShippingAddress, error) {
	var addresses []models.ShippingAddress
	if err := s.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch addresses: %w", err)
	}
	return addresses, nil
}

// GetDefault returns (nil, nil) when the user has no default address; that
// is a normal state at checkout, not an error.
func (s *AddressService) GetDefault(userID uuid.UUID) (*models.ShippingAddress, error) {
	var address models.ShippingAddress
	err := s.db.Where("user_id = ? AND is_default = ?", userID, true).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &address, nil
}

// GetAddress resolves an address owned by the user; used by checkout to
// validate the selected shipping address.
func (s *AddressService) GetAddress(id, userID uuid.UUID) (*models.ShippingAddress, error) {
	var address models.ShippingAddress
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &address, nil
}
