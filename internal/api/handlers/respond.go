package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/printhaus/storefront/pkg/errors"
)

// writeError maps the error taxonomy to HTTP statuses. Payment-not-completed
// stays a 400 so clients know to retry after the customer finishes paying;
// processor failures are 502 so they know to contact support instead.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case *errors.ErrValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
	case *errors.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": e.Error()})
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *errors.ErrConflict:
		c.JSON(http.StatusConflict, gin.H{"error": e.Error()})
	case *errors.ErrPaymentNotCompleted:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Error(), "retryable": true})
	case *errors.ErrInvalidStateTransition:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
	case *errors.ErrProcessor:
		c.JSON(http.StatusBadGateway, gin.H{"error": e.Error()})
	default:
		logger.Error("Unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
