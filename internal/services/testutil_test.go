// internal/services/testutil_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tokosini/storefront/internal/models"
)

// setupTestDB opens a fresh in-memory store per test. Foreign keys are
// switched on so the category RESTRICT behavior under test matches the real
// database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.ShippingAddress{},
		&models.Order{},
		&models.OrderItem{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     models.UserRoleCustomer,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:  name,
		Price: price,
		Stock: stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func createTestAddress(t *testing.T, db *gorm.DB, userID uuid.UUID, isDefault bool) *models.ShippingAddress {
	t.Helper()

	address := &models.ShippingAddress{
		UserID:     userID,
		Name:       "Test Recipient",
		Phone:      "081234567890",
		Address:    "Jl. Example No. 1",
		City:       "Jakarta",
		PostalCode: "12345",
		IsDefault:  isDefault,
	}
	require.NoError(t, db.Create(address).Error)
	return address
}
