package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/printhaus/storefront/internal/repository"
)

// HandleDashboardStats handles GET /v1/admin/stats
func HandleDashboardStats(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := repos.Order.Stats(c.Request.Context())
		if err != nil {
			logger.Error("Failed to compute dashboard stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order_count":   stats.OrderCount,
			"paid_count":    stats.PaidCount,
			"pending_count": stats.PendingCount,
			"revenue":       stats.Revenue,
			"items_sold":    stats.ItemsSold,
		})
	}
}
