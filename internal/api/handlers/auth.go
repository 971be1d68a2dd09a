package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/printhaus/storefront/internal/api/middleware"
	"github.com/printhaus/storefront/internal/repository"
	"github.com/printhaus/storefront/internal/service"
)

// HandleRegister handles POST /v1/auth/register
func HandleRegister(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		userService := service.NewUserService(repos, logger)
		resp, err := userService.Register(c.Request.Context(), req)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// HandleLogin handles POST /v1/auth/login
func HandleLogin(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		userService := service.NewUserService(repos, logger)
		resp, err := userService.Login(c.Request.Context(), req)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// HandleLogout handles POST /v1/auth/logout
func HandleLogout(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		userService := service.NewUserService(repos, logger)
		if err := userService.Logout(c.Request.Context(), token); err != nil {
			writeError(c, logger, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// HandleMe handles GET /v1/auth/me
func HandleMe(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.JSON(http.StatusOK, service.UserInfo{
			ID:    user.ID.String(),
			Email: user.Email,
			Name:  user.Name,
		})
	}
}
