package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/printhaus/storefront/internal/api/handlers"
	"github.com/printhaus/storefront/internal/api/middleware"
	"github.com/printhaus/storefront/internal/cart"
	"github.com/printhaus/storefront/internal/config"
	"github.com/printhaus/storefront/internal/payment"
	"github.com/printhaus/storefront/internal/repository"
	"github.com/printhaus/storefront/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, processor payment.Processor, carts *cart.Manager, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	userService := service.NewUserService(repos, logger)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "payment_mock": processor.IsMock()})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Catalog (public)
		v1.GET("/products", handlers.HandleListProducts(repos, logger))
		v1.GET("/products/:id", handlers.HandleGetProduct(repos, logger))

		// Identity
		v1.POST("/auth/register", handlers.HandleRegister(repos, logger))
		v1.POST("/auth/login", handlers.HandleLogin(repos, logger))
		v1.POST("/auth/logout", handlers.HandleLogout(repos, logger))

		// Cart (session-scoped, works for guests)
		cartRoutes := v1.Group("")
		cartRoutes.Use(middleware.CartSession(carts))
		{
			cartRoutes.GET("/cart", handlers.HandleGetCart(carts, logger))
			cartRoutes.POST("/cart/items", handlers.HandleAddCartItem(carts, logger))
			cartRoutes.PATCH("/cart/items/:id", handlers.HandleUpdateCartItem(carts, logger))
			cartRoutes.DELETE("/cart/items/:id", handlers.HandleRemoveCartItem(carts, logger))
			cartRoutes.DELETE("/cart", handlers.HandleClearCart(carts, logger))

			// Checkout rides the cart session; auth is optional for guests
			checkoutRoutes := cartRoutes.Group("/checkout")
			checkoutRoutes.Use(middleware.OptionalAuth(userService, logger))
			{
				checkoutRoutes.POST("/payment-intent", handlers.HandleCreatePaymentIntent(processor, carts, repos, logger))
				checkoutRoutes.POST("/confirm", handlers.HandleConfirmPayment(processor, carts, repos, logger))
			}
		}

		// Account routes (require authentication)
		accountRoutes := v1.Group("")
		accountRoutes.Use(middleware.AuthMiddleware(userService, logger))
		{
			accountRoutes.GET("/auth/me", handlers.HandleMe(logger))
			accountRoutes.GET("/orders", handlers.HandleListOrders(repos, logger))
			accountRoutes.GET("/orders/:id", handlers.HandleGetOrder(repos, logger))
		}

		// Admin routes
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(userService, logger))
		adminRoutes.Use(middleware.AdminOnly())
		{
			adminRoutes.GET("/stats", handlers.HandleDashboardStats(repos, logger))
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
