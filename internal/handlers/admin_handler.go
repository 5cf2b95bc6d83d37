// internal/handlers/admin_handler.go
package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tokosini/storefront/internal/models"
	"github.com/tokosini/storefront/internal/services"
	"github.com/tokosini/storefront/internal/utils"
)

// AdminHandler is the back office: product and category management, order
// search and status updates, the CSV export and the dashboard.
type AdminHandler struct {
	adminService   *services.AdminService
	catalogService *services.CatalogService
	orderService   *services.OrderService
	storageService *services.StorageService
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

type bulkStatusRequest struct {
	OrderIDs []uuid.UUID        `json:"order_ids" binding:"required"`
	Status   models.OrderStatus `json:"status" binding:"required"`
}

func NewAdminHandler(adminService *services.AdminService, catalogService *services.CatalogService, orderService *services.OrderService, storageService *services.StorageService) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		catalogService: catalogService,
		orderService:   orderService,
		storageService: storageService,
	}
}

// Dashboard returns the landing page aggregates.
// GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		respondServiceError(c, err, "Dashboard")
		return
	}
	utils.SuccessResponse(c, stats)
}

// orderSearchParams parses the shared filter set for order search and CSV
// export: status, date range, and customer name/email search.
func orderSearchParams(c *gin.Context) (services.OrderSearchParams, error) {
	params := services.OrderSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if raw := c.Query("status"); raw != "" {
		s := models.OrderStatus(raw)
		if !models.ValidOrderStatus(s) {
			return params, fmt.Errorf("unknown order status %q", raw)
		}
		params.Status = &s
	}
	if raw := c.Query("date_from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return params, fmt.Errorf("invalid date_from")
		}
		params.DateFrom = &t
	}
	if raw := c.Query("date_to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return params, fmt.Errorf("invalid date_to")
		}
		// Inclusive end of day
		end := t.Add(24*time.Hour - time.Nanosecond)
		params.DateTo = &end
	}

	return params, nil
}

// SearchOrders pages through all orders with filters.
// GET /api/v1/admin/orders?status=&date_from=&date_to=&search=&page=&limit=&sort=&order=
func (h *AdminHandler) SearchOrders(c *gin.Context) {
	params, err := orderSearchParams(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	orders, total, err := h.adminService.SearchOrders(params)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(orders, total, params.PaginationParams))
}

// GetOrder returns any order with its lines, no ownership guard.
// GET /api/v1/admin/orders/:id
func (h *AdminHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(id)
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

// UpdateOrderStatus sets a single order's status.
// PUT /api/v1/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := h.adminService.UpdateOrderStatus(id, req.Status); err != nil {
		respondServiceError(c, err, "Order")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Order status updated"})
}

// BulkUpdateOrderStatus applies one status to many orders.
// PUT /api/v1/admin/orders/status
func (h *AdminHandler) BulkUpdateOrderStatus(c *gin.Context) {
	var req bulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	updated, err := h.adminService.BulkUpdateOrderStatus(req.OrderIDs, req.Status)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}

	utils.SuccessResponse(c, gin.H{"updated": updated})
}

// ExportOrdersCSV streams the filtered order set as a CSV download.
// GET /api/v1/admin/orders/export?status=&date_from=&date_to=&search=
func (h *AdminHandler) ExportOrdersCSV(c *gin.Context) {
	params, err := orderSearchParams(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	filename := fmt.Sprintf("orders_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.adminService.ExportOrdersCSV(params, c.Writer); err != nil {
		// Headers may already be out; log and abort the stream.
		_ = c.Error(err)
	}
}

// OrderStats returns counts per status and total revenue.
// GET /api/v1/admin/orders/stats
func (h *AdminHandler) OrderStats(c *gin.Context) {
	stats, err := h.adminService.GetOrderStats()
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}
	utils.SuccessResponse(c, stats)
}

// Product management

// CreateProduct adds a catalog product.
// POST /api/v1/admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req services.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	product, err := h.catalogService.CreateProduct(&req)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}

	utils.CreatedResponse(c, product)
}

// UpdateProduct edits a catalog product.
// PUT /api/v1/admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	product, err := h.catalogService.UpdateProduct(id, &req)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}

	utils.SuccessResponse(c, product)
}

// DeleteProduct retires a product from the catalog. Past order lines keep
// their captured data.
// DELETE /api/v1/admin/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(id); err != nil {
		respondServiceError(c, err, "Product")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Product deleted"})
}

// UploadProductImage stores an image and returns its URL for the product
// form.
// POST /api/v1/admin/products/image
func (h *AdminHandler) UploadProductImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "Image file is required", nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadProductImage(file, header)
	if err != nil {
		respondServiceError(c, err, "Image")
		return
	}

	utils.CreatedResponse(c, result)
}

// Category management

// CreateCategory adds a category.
// POST /api/v1/admin/categories
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req services.SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	category, err := h.catalogService.CreateCategory(&req)
	if err != nil {
		respondServiceError(c, err, "Category")
		return
	}

	utils.CreatedResponse(c, category)
}

// UpdateCategory edits a category.
// PUT /api/v1/admin/categories/:id
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	category, err := h.catalogService.UpdateCategory(id, &req)
	if err != nil {
		respondServiceError(c, err, "Category")
		return
	}

	utils.SuccessResponse(c, category)
}

// DeleteCategory removes a category; refused with 409 while products still
// reference it.
// DELETE /api/v1/admin/categories/:id
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(id); err != nil {
		respondServiceError(c, err, "Category")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Category deleted"})
}
