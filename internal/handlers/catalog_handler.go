// internal/handlers/catalog_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tokosini/storefront/internal/services"
	"github.com/tokosini/storefront/internal/utils"
)

// CatalogHandler serves the public storefront catalog: product listing with
// search, sort and category filter, product detail, and the category list.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts answers the shop page.
// GET /api/v1/products?search=&category_id=&sort=&page=&limit=
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	params := services.ProductSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}
	// The catalog has its own sort vocabulary (newest, price_asc, ...)
	// instead of raw column names.
	params.Sort = c.DefaultQuery("sort", services.SortNewest)

	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid category_id", nil)
			return
		}
		params.CategoryID = &categoryID
	}

	products, total, err := h.catalogService.SearchProducts(params)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, params.PaginationParams))
}

// GetProduct answers the product detail page.
// GET /api/v1/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}

	utils.SuccessResponse(c, product)
}

// ListCategories returns all categories for the shop sidebar.
// GET /api/v1/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		respondServiceError(c, err, "Category")
		return
	}

	utils.SuccessResponse(c, categories)
}

// GetCategory answers a single category.
// GET /api/v1/categories/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.catalogService.GetCategory(id)
	if err != nil {
		respondServiceError(c, err, "Category")
		return
	}

	utils.SuccessResponse(c, category)
}
