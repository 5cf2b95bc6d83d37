// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

// Error taxonomy exposed to handlers. Store-level failures never cross a
// service boundary raw; they are mapped to one of these kinds.
var (
	// ErrNotFound covers both missing rows and ownership mismatches, so a
	// caller cannot tell whether another user's record exists.
	ErrNotFound = errors.New("record not found")

	// ErrValidation marks missing or malformed input fields.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyCart rejects checkout before any transaction begins.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrOrderFailed is the catch-all for a rolled-back order placement.
	// Retry-safe: no order, stock mutation or cart clear persists.
	ErrOrderFailed = errors.New("order could not be processed")

	// ErrConflict marks state the store refused to change, e.g. deleting a
	// category that products still reference, or a lost default-address race.
	ErrConflict = errors.New("conflicting state")
)

// InsufficientStockError names the product that ran short so the caller can
// tell the user which cart line to fix.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q", e.ProductName)
}

func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}
