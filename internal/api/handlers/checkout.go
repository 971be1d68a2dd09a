package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/printhaus/storefront/internal/api/middleware"
	"github.com/printhaus/storefront/internal/cart"
	"github.com/printhaus/storefront/internal/payment"
	"github.com/printhaus/storefront/internal/repository"
	"github.com/printhaus/storefront/internal/service"
)

// HandleCreatePaymentIntent handles POST /v1/checkout/payment-intent.
// When the request omits the amount, the session cart's total is charged.
func HandleCreatePaymentIntent(processor payment.Processor, carts *cart.Manager, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if req.Amount == 0 {
			if sessionID, ok := middleware.GetCartSessionID(c); ok {
				req.Amount = carts.Get(sessionID).Snapshot().Total
			}
		}

		if req.Metadata == nil {
			req.Metadata = make(map[string]string)
		}
		if user, ok := middleware.GetUserFromContext(c); ok {
			req.Metadata["userId"] = user.ID.String()
		}

		checkoutService := service.NewCheckoutService(processor, repos, logger)
		resp, err := checkoutService.CreateIntent(c.Request.Context(), req)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// HandleConfirmPayment handles POST /v1/checkout/confirm. On settlement the
// session cart becomes an order and is cleared.
func HandleConfirmPayment(processor payment.Processor, carts *cart.Manager, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ConfirmPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		params := service.ConfirmParams{PaymentIntentID: req.PaymentIntentID}

		sessionID, hasSession := middleware.GetCartSessionID(c)
		if hasSession {
			params.Snapshot = carts.Get(sessionID).Snapshot()
		}
		if user, ok := middleware.GetUserFromContext(c); ok {
			params.UserID = &user.ID
			params.CustomerEmail = user.Email
		}

		checkoutService := service.NewCheckoutService(processor, repos, logger)
		resp, err := checkoutService.Confirm(c.Request.Context(), params)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		if hasSession {
			carts.Get(sessionID).Clear()
			carts.Drop(sessionID)
		}

		c.JSON(http.StatusOK, resp)
	}
}
