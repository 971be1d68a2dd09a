package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/printhaus/storefront/internal/api/middleware"
	"github.com/printhaus/storefront/internal/domain"
	"github.com/printhaus/storefront/internal/repository"
	"github.com/printhaus/storefront/pkg/errors"
)

// OrderResponse is the order projection served to customers
type OrderResponse struct {
	ID              string              `json:"id"`
	PaymentIntentID string              `json:"payment_intent_id"`
	Status          domain.OrderStatus  `json:"status"`
	Currency        string              `json:"currency"`
	Total           float64             `json:"total"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       string              `json:"created_at"`
}

type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Frame     string  `json:"frame,omitempty"`
}

// HandleGetOrder handles GET /v1/orders/:id
func HandleGetOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		order, err := repos.Order.GetByID(c.Request.Context(), orderID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to get order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		// Customers only see their own orders
		if order.UserID == nil || *order.UserID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		items, err := repos.Order.GetItems(c.Request.Context(), orderID)
		if err != nil {
			logger.Error("Failed to get order items", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, toOrderResponse(order, items))
	}
}

// HandleListOrders handles GET /v1/orders for the authenticated user
func HandleListOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if err != nil || limit < 1 || limit > 100 {
			limit = 50
		}
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		orders, err := repos.Order.ListByUserID(c.Request.Context(), user.ID, limit, offset)
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]gin.H, len(orders))
		for i, order := range orders {
			responses[i] = gin.H{
				"id":         order.ID.String(),
				"status":     order.Status,
				"currency":   order.Currency,
				"total":      order.Total,
				"created_at": order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": responses,
			"limit":  limit,
			"offset": offset,
		})
	}
}

func toOrderResponse(order *domain.Order, items []*domain.OrderItem) OrderResponse {
	itemResponses := make([]OrderItemResponse, len(items))
	for i, item := range items {
		itemResponses[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Frame:     item.Frame,
		}
	}

	return OrderResponse{
		ID:              order.ID.String(),
		PaymentIntentID: order.PaymentIntentID,
		Status:          order.Status,
		Currency:        order.Currency,
		Total:           order.Total,
		Items:           itemResponses,
		CreatedAt:       order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
