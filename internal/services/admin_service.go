// internal/services/admin_service.go
package services

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tokosini/storefront/internal/models"
	"github.com/tokosini/storefront/internal/utils"
)

// AdminService backs the order side of the back office: paginated and
// filtered order search, single and bulk status updates, aggregate
// statistics and the CSV export.
type AdminService struct {
	db                *gorm.DB
	lowStockThreshold int
}

type OrderSearchParams struct {
	utils.PaginationParams
	Status   *models.OrderStatus `json:"status,omitempty"`
	DateFrom *time.Time          `json:"date_from,omitempty"`
	DateTo   *time.Time          `json:"date_to,omitempty"`
}

type OrderStats struct {
	TotalOrders  int64                        `json:"total_orders"`
	TotalRevenue float64                      `json:"total_revenue"`
	ByStatus     map[models.OrderStatus]int64 `json:"by_status"`
}

type TopProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	TotalSold int64     `json:"total_sold"`
	Revenue   float64   `json:"revenue"`
}

type DashboardStats struct {
	ProductCount   int64                        `json:"product_count"`
	CategoryCount  int64                        `json:"category_count"`
	OrderCount     int64                        `json:"order_count"`
	CustomerCount  int64                        `json:"customer_count"`
	TotalRevenue   float64                      `json:"total_revenue"`
	AvgOrderValue  float64                      `json:"avg_order_value"`
	OrdersByStatus map[models.OrderStatus]int64 `json:"orders_by_status"`
	RecentOrders   []models.Order               `json:"recent_orders"`
	LowStock       []models.Product             `json:"low_stock"`
	TopProducts    []TopProduct                 `json:"top_products"`
}

// orderExportRow is one line of the admin CSV export.
type orderExportRow struct {
	OrderID  string  `csv:"order_id"`
	Date     string  `csv:"date"`
	Customer string  `csv:"customer"`
	Email    string  `csv:"email"`
	Items    int     `csv:"items"`
	Total    float64 `csv:"total"`
	Status   string  `csv:"status"`
}

func NewAdminService(db *gorm.DB, lowStockThreshold int) *AdminService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 10
	}
	return &AdminService{db: db, lowStockThreshold: lowStockThreshold}
}

func (s *AdminService) orderQuery(params OrderSearchParams) *gorm.DB {
	query := s.db.Model(&models.Order{}).
		Joins("JOIN users ON users.id = orders.user_id")

	if params.Status != nil {
		query = query.Where("orders.status = ?", *params.Status)
	}
	if params.DateFrom != nil {
		query = query.Where("orders.created_at >= ?", *params.DateFrom)
	}
	if params.DateTo != nil {
		query = query.Where("orders.created_at <= ?", *params.DateTo)
	}
	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("users.username LIKE ? OR users.email LIKE ?", searchTerm, searchTerm)
	}

	return query
}

// SearchOrders pages through orders with status/date/customer filters.
func (s *AdminService) SearchOrders(params OrderSearchParams) ([]models.Order, int64, error) {
	query := s.orderQuery(params)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "total_amount", "status"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var orders []models.Order
	if err := query.Preload("User").Preload("ShippingAddress").Preload("Items").
		Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// UpdateOrderStatus sets a single order's status. Transitions are
// free-form; only unknown status names are rejected.
func (s *AdminService) UpdateOrderStatus(id uuid.UUID, status models.OrderStatus) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}

	res := s.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkUpdateOrderStatus applies one status to a set of orders and reports
// how many rows changed.
func (s *AdminService) BulkUpdateOrderStatus(ids []uuid.UUID, status models.OrderStatus) (int64, error) {
	if !models.ValidOrderStatus(status) {
		return 0, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no order ids given", ErrValidation)
	}

	res := s.db.Model(&models.Order{}).Where("id IN ?", ids).Update("status", status)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to bulk update orders: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// GetOrderStats aggregates counts per status and revenue over all orders
// (cancelled orders excluded from revenue).
func (s *AdminService) GetOrderStats() (*OrderStats, error) {
	stats := &OrderStats{ByStatus: make(map[models.OrderStatus]int64)}

	if err := s.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var rows []struct {
		Status models.OrderStatus
		Count  int64
	}
	if err := s.db.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to group orders by status: %w", err)
	}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
	}

	if err := s.db.Model(&models.Order{}).
		Where("status != ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return stats, nil
}

// ExportOrdersCSV writes the full filtered set (no pagination) as CSV.
func (s *AdminService) ExportOrdersCSV(params OrderSearchParams, w io.Writer) error {
	var orders []models.Order
	query := s.orderQuery(params).Order("orders.created_at DESC")
	if err := query.Preload("User").Preload("Items").Find(&orders).Error; err != nil {
		return fmt.Errorf("failed to fetch orders for export: %w", err)
	}

	rows := make([]orderExportRow, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, orderExportRow{
			OrderID:  order.ID.String(),
			Date:     order.CreatedAt.Format(time.RFC3339),
			Customer: order.User.Username,
			Email:    order.User.Email,
			Items:    len(order.Items),
			Total:    order.TotalAmount,
			Status:   string(order.Status),
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// GetDashboardStats collects the admin landing page numbers.
func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{OrdersByStatus: make(map[models.OrderStatus]int64)}

	s.db.Model(&models.Product{}).Count(&stats.ProductCount)
	s.db.Model(&models.Category{}).Count(&stats.CategoryCount)
	s.db.Model(&models.Order{}).Count(&stats.OrderCount)
	s.db.Model(&models.Order{}).Distinct("user_id").Count(&stats.CustomerCount)

	orderStats, err := s.GetOrderStats()
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = orderStats.TotalRevenue
	stats.OrdersByStatus = orderStats.ByStatus

	var nonCancelled int64
	s.db.Model(&models.Order{}).Where("status != ?", models.OrderStatusCancelled).Count(&nonCancelled)
	if nonCancelled > 0 {
		stats.AvgOrderValue = stats.TotalRevenue / float64(nonCancelled)
	}

	if err := s.db.Preload("User").
		Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent orders: %w", err)
	}

	if err := s.db.Preload("Category").
		Where("stock < ?", s.lowStockThreshold).
		Order("stock ASC").
		Limit(5).
		Find(&stats.LowStock).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch low stock products: %w", err)
	}

	if err := s.db.Model(&models.OrderItem{}).
		Select("order_items.product_id, products.name, products.image_url, SUM(order_items.quantity) as total_sold, SUM(order_items.quantity * order_items.price) as revenue").
		Joins("JOIN products ON products.id = order_items.product_id").
		Group("order_items.product_id, products.name, products.image_url").
		Order("total_sold DESC").
		Limit(5).
		Scan(&stats.TopProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch top products: %w", err)
	}

	return stats, nil
}
