// internal/services/admin_service_test.go
package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tokosini/storefront/internal/models"
	"github.com/tokosini/storefront/internal/utils"
)

func placeTestOrder(t *testing.T, db *gorm.DB, user *models.User, total float64, status models.OrderStatus) *models.Order {
	t.Helper()

	address := createTestAddress(t, db, user.ID, false)
	order := &models.Order{
		UserID:            user.ID,
		ShippingAddressID: address.ID,
		TotalAmount:       total,
		ShippingCost:      20000,
		Status:            status,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func adminSearchParams() OrderSearchParams {
	return OrderSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"},
	}
}

func TestSearchOrdersFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminService(db, 10)

	alice := createTestUser(t, db, "alice3")
	bob := createTestUser(t, db, "bob3")

	placeTestOrder(t, db, alice, 100000, models.OrderStatusPending)
	placeTestOrder(t, db, alice, 200000, models.OrderStatusShipped)
	placeTestOrder(t, db, bob, 300000, models.OrderStatusPending)

	orders, total, err := svc.SearchOrders(adminSearchParams())
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, orders, 3)

	// Status filter
	params := adminSearchParams()
	shipped := models.OrderStatusShipped
	params.Status = &shipped
	orders, total, err = svc.SearchOrders(params)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusShipped, orders[0].Status)

	// Customer search joins on username/email
	params = adminSearchParams()
	params.Search = "bob3"
	_, total, err = svc.SearchOrders(params)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	// Date window excluding everything
	params = adminSearchParams()
	past := time.Now().Add(-48 * time.Hour)
	pastEnd := time.Now().Add(-24 * time.Hour)
	params.DateFrom = &past
	params.DateTo = &pastEnd
	_, total, err = svc.SearchOrders(params)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminService(db, 10)
	user := createTestUser(t, db, "carol3")
	order := placeTestOrder(t, db, user, 150000, models.OrderStatusPending)

	require.NoError(t, svc.UpdateOrderStatus(order.ID, models.OrderStatusProcessing))

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusProcessing, reloaded.Status)

	// Transitions are free-form; jumping straight to delivered is allowed.
	require.NoError(t, svc.UpdateOrderStatus(order.ID, models.OrderStatusDelivered))

	err := svc.UpdateOrderStatus(order.ID, models.OrderStatus("lost_in_transit"))
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.UpdateOrderStatus(uuid.New(), models.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBulkUpdateOrderStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminService(db, 10)
	user := createTestUser(t, db, "dan3")

	a := placeTestOrder(t, db, user, 100000, models.OrderStatusPending)
	b := placeTestOrder(t, db, user, 200000, models.OrderStatusPending)
	c := placeTestOrder(t, db, user, 300000, models.OrderStatusPending)

	updated, err := svc.BulkUpdateOrderStatus([]uuid.UUID{a.ID, b.ID, uuid.New()}, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)

	var untouched models.Order
	require.NoError(t, db.First(&untouched, "id = ?", c.ID).Error)
	assert.Equal(t, models.OrderStatusPending, untouched.Status)

	_, err = svc.BulkUpdateOrderStatus(nil, models.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.BulkUpdateOrderStatus([]uuid.UUID{a.ID}, models.OrderStatus("bogus"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrderStatsExcludeCancelledRevenue(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminService(db, 10)
	user := createTestUser(t, db, "erin3")

	placeTestOrder(t, db, user, 100000, models.OrderStatusPending)
	placeTestOrder(t, db, user, 200000, models.OrderStatusDelivered)
	placeTestOrder(t, db, user, 999999, models.OrderStatusCancelled)

	stats, err := svc.GetOrderStats()
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalOrders)
	assert.Equal(t, 300000.0, stats.TotalRevenue)
	assert.EqualValues(t, 1, stats.ByStatus[models.OrderStatusCancelled])
	assert.EqualValues(t, 1, stats.ByStatus[models.OrderStatusDelivered])
}

func TestExportOrdersCSV(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminService(db, 10)
	user := createTestUser(t, db, "frank3")

	order := placeTestOrder(t, db, user, 120000, models.OrderStatusPending)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportOrdersCSV(adminSearchParams(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "order_id,date,customer,email,items,total,status", lines[0])
	assert.Contains(t, lines[1], order.ID.String())
	assert.Contains(t, lines[1], "frank3")
	assert.Contains(t, lines[1], "pending")
}

func TestDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminService(db, 10)
	user := createTestUser(t, db, "gina3")

	createTestCategory(t, db, "Misc")
	healthy := createTestProduct(t, db, "Healthy Stock", 10000, 50)
	low := createTestProduct(t, db, "Low Stock", 20000, 2)

	order := placeTestOrder(t, db, user, 240000, models.OrderStatusDelivered)
	require.NoError(t, db.Create(&models.OrderItem{
		OrderID:   order.ID,
		ProductID: low.ID,
		Quantity:  2,
		Price:     20000,
	}).Error)

	stats, err := svc.GetDashboardStats()
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.ProductCount)
	assert.EqualValues(t, 1, stats.CategoryCount)
	assert.EqualValues(t, 1, stats.OrderCount)
	assert.EqualValues(t, 1, stats.CustomerCount)
	assert.Equal(t, 240000.0, stats.TotalRevenue)
	assert.Equal(t, 240000.0, stats.AvgOrderValue)

	require.Len(t, stats.LowStock, 1)
	assert.Equal(t, low.ID, stats.LowStock[0].ID)
	assert.NotEqual(t, healthy.ID, stats.LowStock[0].ID)

	require.Len(t, stats.TopProducts, 1)
	assert.Equal(t, low.ID, stats.TopProducts[0].ProductID)
	assert.EqualValues(t, 2, stats.TopProducts[0].TotalSold)
	assert.Equal(t, 40000.0, stats.TopProducts[0].Revenue)

	require.Len(t, stats.RecentOrders, 1)
	assert.Equal(t, order.ID, stats.RecentOrders[0].ID)
}
