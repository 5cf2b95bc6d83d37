// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokosini/storefront/internal/models"
)

func TestAddItemCreatesLine(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, 99)
	user := createTestUser(t, db, "shopper")
	product := createTestProduct(t, db, "Notebook", 45000, 10)

	item, err := svc.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "Notebook", item.Product.Name)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, 99)
	user := createTestUser(t, db, "shopper")
	product := createTestProduct(t, db, "Notebook", 45000, 10)

	_, err := svc.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)
	item, err := svc.AddItem(user.ID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	// Still one row for the pair.
	items, err := svc.ListItems(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAddItemRejectsBeyondStock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, 99)
	user := createTestUser(t, db, "shopper")
	product := createTestProduct(t, db, "Rare", 99000, 3)

	_, err := svc.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)

	// 2 in cart + 2 more exceeds the 3 in stock.
	_, err = svc.AddItem(user.ID, product.ID, 2)
	assert.True(t, IsInsufficientStock(err))
}

func TestAddItemRespectsLineCap(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, 5)
	user := createTestUser(t, db, "shopper")
	product := createTestProduct(t, db, "Bulk", 1000, 1000)

	_, err := svc.AddItem(user.ID, product.ID, 6)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddItem(user.ID, product.ID, 4)
	require.NoError(t, err)
	_, err = svc.AddItem(user.ID, product.ID, 2)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, 99)
	user := createTestUser(t, db, "shopper")

	_, err := svc.AddItem(user.ID, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, 99)
	user := createTestUser(t, db, "shopper")
	product := createTestProduct(t, db, "Pen", 5000, 10)

	_, err := svc.AddItem(user.ID, product.ID, 3)
	require.NoError(t, err)

	require.NoError(t, svc.SetQuantity(user.ID, product.ID, 0))

	items, err := svc.ListItems(user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// And the product can be re-added afterwards.
	_, err = svc.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)
}

func TestSetQuantityChecksStock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, 99)
	user := createTestUser(t, db, "shopper")
	product := createTestProduct(t, db, "Pen", 5000, 4)

	_, err := svc.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)

	err = svc.SetQuantity(user.ID, product.ID, 5)
	assert.True(t, IsInsufficientStock(err))

	require.NoError(t, svc.SetQuantity(user.ID, product.ID, 4))
}

func TestSetQuantityMissingLine(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, 99)
	user := createTestUser(t, db, "shopper")
	product := createTestProduct(t, db, "Pen", 5000, 4)

	err := svc.SetQuantity(user.ID, product.ID, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubtotalUsesLivePrice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, 99)
	user := createTestUser(t, db, "shopper")
	product := createTestProduct(t, db, "Monitor", 100000, 10)

	_, err := svc.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)

	subtotal, err := svc.Subtotal(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 200000.0, subtotal)

	// Admin reprices; the cart follows the live catalog.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price", 150000).Error)

	subtotal, err = svc.Subtotal(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 300000.0, subtotal)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, 99)
	alice := createTestUser(t, db, "alice2")
	bob := createTestUser(t, db, "bob2")
	product := createTestProduct(t, db, "Cable", 15000, 50)

	_, err := svc.AddItem(alice.ID, product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.ClearAll(bob.ID))

	items, err := svc.ListItems(alice.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	err = svc.RemoveItem(bob.ID, product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
