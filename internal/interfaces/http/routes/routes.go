// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pitstop-performance/backend/internal/config"
	"github.com/pitstop-performance/backend/internal/interfaces/http/handlers"
	"github.com/pitstop-performance/backend/internal/interfaces/http/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupRoutes wires every route group under the given API group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupAuthRoutes(rg, db, redisClient, cfg)
	SetupUserRoutes(rg, db, redisClient, cfg)
	SetupCatalogRoutes(rg, db, redisClient, cfg)
	SetupCartRoutes(rg, db, redisClient, cfg)
	SetupCheckoutRoutes(rg, db, redisClient, cfg)
	SetupOrderRoutes(rg, db, redisClient, cfg)
	SetupSupportRoutes(rg, db, redisClient, cfg)
	SetupAdminRoutes(rg, db, redisClient, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.GET("/verify", authHandler.VerifyEmail)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
		}
	}
}

// SetupUserRoutes sets up user address routes
func SetupUserRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	addressHandler := handlers.NewAddressHandler(db, cfg)

	addresses := rg.Group("/addresses")
	addresses.Use(middleware.AuthMiddleware(cfg)) // All address routes require authentication
	{
		addresses.GET("", addressHandler.GetAddresses)
		addresses.GET("/:id", addressHandler.GetAddress)
		addresses.POST("", addressHandler.CreateAddress)
		addresses.PUT("/:id", addressHandler.UpdateAddress)
		addresses.DELETE("/:id", addressHandler.DeleteAddress)
	}
}

// SetupCatalogRoutes sets up product and category browsing routes
func SetupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)
	categoryHandler := handlers.NewCategoryHandler(db, cfg)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/search", productHandler.SearchProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("/parts", categoryHandler.GetPartCategories)
		categories.GET("/brands", categoryHandler.GetBrandCategories)
		categories.GET("/models", categoryHandler.GetModelCategories)
	}
}

// SetupCartRoutes sets up cart routes
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(cfg)) // Carts are always bound to a user
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:product_id", cartHandler.UpdateItem)
		cart.DELETE("/items/:product_id", cartHandler.RemoveItem)
		cart.DELETE("", cartHandler.ClearCart)
	}
}

// SetupCheckoutRoutes sets up the checkout flow routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	checkoutHandler := handlers.NewCheckoutHandler(db, cfg)

	checkout := rg.Group("/checkout")
	checkout.Use(middleware.AuthMiddleware(cfg))
	{
		checkout.POST("", checkoutHandler.StartCheckout)
		checkout.POST("/address", checkoutHandler.AddAddress)
		checkout.POST("/address/setshipping", checkoutHandler.SetShippingAddress)
		checkout.POST("/address/setbilling", checkoutHandler.SetBillingAddress)
		checkout.POST("/shipping-method", checkoutHandler.SetShippingMethod)
		checkout.POST("/payment-method", checkoutHandler.SetPaymentMethod)
		checkout.POST("/complete", checkoutHandler.Complete)
		checkout.GET("/order-summary", checkoutHandler.OrderSummary)
	}
}

// SetupOrderRoutes sets up order history routes
func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg)) // All order routes require authentication
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/invoice", orderHandler.GetInvoice)
	}
}

// SetupSupportRoutes sets up support ticket routes
func SetupSupportRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	supportHandler := handlers.NewSupportHandler(db, cfg)

	support := rg.Group("/support")
	support.Use(middleware.AuthMiddleware(cfg))
	{
		support.POST("/tickets", supportHandler.CreateTicket)
		support.GET("/tickets", supportHandler.GetTickets)
		support.GET("/tickets/:id", supportHandler.GetTicket)
		support.POST("/tickets/:id/replies", supportHandler.ReplyToTicket)
		support.DELETE("/tickets/:id", supportHandler.CloseTicket)
	}
}

// SetupAdminRoutes sets up admin related routes
func SetupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)
	categoryHandler := handlers.NewCategoryHandler(db, cfg)
	uploadHandler := handlers.NewUploadHandler(db, cfg)
	supportHandler := handlers.NewSupportHandler(db, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg)) // Require authentication
	admin.Use(middleware.AdminMiddleware())   // Require admin privileges
	{
		// Product management
		products := admin.Group("/products")
		{
			products.POST("", productHandler.CreateProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		// Category management
		categories := admin.Group("/categories")
		{
			categories.POST("/parts", categoryHandler.CreatePartCategory)
			categories.DELETE("/parts/:id", categoryHandler.DeletePartCategory)
			categories.POST("/brands", categoryHandler.CreateBrandCategory)
			categories.DELETE("/brands/:id", categoryHandler.DeleteBrandCategory)
			categories.POST("/models", categoryHandler.CreateModelCategory)
			categories.DELETE("/models/:id", categoryHandler.DeleteModelCategory)
		}

		// Image uploads for product thumbnails and brand logos
		uploads := admin.Group("/uploads")
		{
			uploads.POST("", uploadHandler.UploadImage)
			uploads.DELETE("/:id", uploadHandler.DeleteImage)
		}

		// Support ticket oversight
		support := admin.Group("/support")
		{
			support.GET("/tickets", supportHandler.GetAllTickets)
		}
	}
}
