package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/printhaus/storefront/internal/api/middleware"
	"github.com/printhaus/storefront/internal/cart"
)

// AddCartItemRequest is the add-to-cart payload. ID is optional: the server
// mints a line ID when the client does not supply one.
type AddCartItemRequest struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"required,min=0"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Frame     string  `json:"frame"`
}

// UpdateQuantityRequest sets a line's quantity; zero or less removes the line
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleGetCart handles GET /v1/cart
func HandleGetCart(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetCartSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}
		c.JSON(http.StatusOK, carts.Get(sessionID).Snapshot())
	}
}

// HandleAddCartItem handles POST /v1/cart/items
func HandleAddCartItem(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetCartSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}

		var req AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if req.ID == "" {
			req.ID = uuid.New().String()
		}
		if req.Quantity < 1 {
			req.Quantity = 1
		}

		state := carts.Get(sessionID).AddItem(cart.Item{
			ID:        req.ID,
			ProductID: req.ProductID,
			Name:      req.Name,
			Price:     req.Price,
			Image:     req.Image,
			Quantity:  req.Quantity,
			Size:      req.Size,
			Frame:     req.Frame,
		})

		logger.Info("Cart item added",
			zap.String("session_id", sessionID),
			zap.String("product_id", req.ProductID),
			zap.Int("item_count", state.ItemCount),
		)

		c.JSON(http.StatusOK, state)
	}
}

// HandleUpdateCartItem handles PATCH /v1/cart/items/:id
func HandleUpdateCartItem(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetCartSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}

		var req UpdateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		state := carts.Get(sessionID).UpdateQuantity(c.Param("id"), req.Quantity)
		c.JSON(http.StatusOK, state)
	}
}

// HandleRemoveCartItem handles DELETE /v1/cart/items/:id
func HandleRemoveCartItem(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetCartSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}

		state := carts.Get(sessionID).RemoveItem(c.Param("id"))
		c.JSON(http.StatusOK, state)
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetCartSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}

		state := carts.Get(sessionID).Clear()
		c.JSON(http.StatusOK, state)
	}
}
