package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/patramstore/storefront-api/internal/api/handlers"
	"github.com/patramstore/storefront-api/internal/api/middleware"
	"github.com/patramstore/storefront-api/internal/cart"
	"github.com/patramstore/storefront-api/internal/config"
	"github.com/patramstore/storefront-api/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, cartStore cart.Store, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Catalog
		api.GET("/products", handlers.HandleListProducts(repos, logger))
		api.GET("/products/:id", handlers.HandleGetProduct(repos, logger))

		// Cart
		api.GET("/cart/:session", handlers.HandleGetCart(cartStore, logger))
		api.POST("/cart/:session", handlers.HandleReplaceCart(cartStore, logger))
		api.DELETE("/cart/:session", handlers.HandleClearCart(cartStore, logger))
		api.POST("/cart/:session/items", handlers.HandleAddCartItem(cartStore, logger))
		api.PATCH("/cart/:session/items/:productID", handlers.HandleUpdateCartItem(cartStore, logger))
		api.DELETE("/cart/:session/items/:productID", handlers.HandleRemoveCartItem(cartStore, logger))

		// Checkout and orders
		api.POST("/checkout", handlers.HandleCheckout(cfg, repos, cartStore, logger))
		api.GET("/orders/:token", handlers.HandleGetOrder(repos, logger))
		api.GET("/check-order/:id", handlers.HandleCheckOrder(repos, logger))
		api.PUT("/orders", handlers.HandleUpdateOrderPayment(repos, logger))

		// Payments
		api.POST("/razorpay/create-order", handlers.HandleCreatePaymentIntent(cfg, logger))
		api.POST("/razorpay/verify", handlers.HandleVerifyPayment(cfg, repos, logger))

		// Notifications
		api.POST("/whatsapp", handlers.HandleSendWhatsApp(cfg, logger))
		api.GET("/whatsapp", handlers.HandleWhatsAppLink(cfg, logger))

		// Customers
		api.POST("/customers/register", handlers.HandleRegisterCustomer(repos, logger))
		api.POST("/customers/login", handlers.HandleLoginCustomer(repos, logger))
		api.GET("/clients/search", handlers.HandleSearchClient(repos, logger))

		// Admin routes (operator-only)
		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware(cfg, logger))
		{
			admin.GET("/orders", handlers.HandleListOrders(repos, logger))
			admin.POST("/orders/:id/status", handlers.HandleUpdateOrderStatus(cfg, repos, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
