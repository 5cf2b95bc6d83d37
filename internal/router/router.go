// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tokosini/storefront/internal/config"
	"github.com/tokosini/storefront/internal/handlers"
	"github.com/tokosini/storefront/internal/middleware"
	"github.com/tokosini/storefront/internal/services"
)

func SetupRouter(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Services
	authService := services.NewAuthService(db, cfg)
	catalogService := services.NewCatalogService(db)
	cartService := services.NewCartService(db, cfg.Shop.MaxCartQuantity)
	addressService := services.NewAddressService(db)
	orderService := services.NewOrderService(db, catalogService, cartService, addressService, cfg.Shop.ShippingFlatRate)
	adminService := services.NewAdminService(db, cfg.Shop.LowStockThreshold)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	addressHandler := handlers.NewAddressHandler(addressService)
	orderHandler := handlers.NewOrderHandler(orderService, addressService)
	adminHandler := handlers.NewAdminHandler(adminService, catalogService, orderService, storageService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Locally stored product images
	r.Static("/uploads", cfg.Shop.UploadDir)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
		})
	})

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", middleware.AuthRateLimit(), authHandler.Register)
			auth.POST("/login", middleware.AuthRateLimit(), authHandler.Login)
			auth.GET("/profile", middleware.AuthRequired(), authHandler.Profile)
			auth.PUT("/profile", middleware.AuthRequired(), authHandler.UpdateProfile)
			auth.PUT("/password", middleware.AuthRequired(), authHandler.ChangePassword)
		}

		// Public catalog; a token is optional but attributes request logs
		v1.GET("/products", middleware.OptionalAuth(), catalogHandler.ListProducts)
		v1.GET("/products/:id", middleware.OptionalAuth(), catalogHandler.GetProduct)
		v1.GET("/categories", middleware.OptionalAuth(), catalogHandler.ListCategories)
		v1.GET("/categories/:id", middleware.OptionalAuth(), catalogHandler.GetCategory)

		// Customer routes
		customer := v1.Group("")
		customer.Use(middleware.AuthRequired())
		{
			cart := customer.Group("/cart")
			{
				cart.GET("", cartHandler.GetCart)
				cart.DELETE("", cartHandler.ClearCart)
				cart.POST("/items", cartHandler.AddItem)
				cart.PUT("/items/:product_id", cartHandler.SetQuantity)
				cart.DELETE("/items/:product_id", cartHandler.RemoveItem)
			}

			addresses := customer.Group("/addresses")
			{
				addresses.GET("", addressHandler.ListAddresses)
				addresses.POST("", addressHandler.AddAddress)
				addresses.PUT("/:id", addressHandler.UpdateAddress)
				addresses.PUT("/:id/default", addressHandler.SetDefault)
				addresses.DELETE("/:id", addressHandler.DeleteAddress)
			}

			orders := customer.Group("/orders")
			{
				orders.POST("", middleware.CheckoutRateLimit(), orderHandler.Checkout)
				orders.GET("", orderHandler.ListOrders)
				orders.GET("/:id", orderHandler.GetOrder)
			}
		}

		// Back office
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.Dashboard)

			admin.GET("/orders", adminHandler.SearchOrders)
			admin.GET("/orders/stats", adminHandler.OrderStats)
			admin.GET("/orders/export", adminHandler.ExportOrdersCSV)
			admin.PUT("/orders/status", adminHandler.BulkUpdateOrderStatus)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)

			admin.POST("/products", adminHandler.CreateProduct)
			admin.POST("/products/image", adminHandler.UploadProductImage)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)
		}
	}

	return r, nil
}
