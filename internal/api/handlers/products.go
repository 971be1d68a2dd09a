package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/printhaus/storefront/internal/domain"
	"github.com/printhaus/storefront/internal/repository"
)

// ProductResponse is the catalog projection served to the storefront
type ProductResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Image       string   `json:"image,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Frames      []string `json:"frames,omitempty"`
}

// HandleListProducts handles GET /v1/products
func HandleListProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limitStr := c.DefaultQuery("limit", "50")
		offsetStr := c.DefaultQuery("offset", "0")

		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			limit = 50
		}

		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			offset = 0
		}

		products, err := repos.Product.List(c.Request.Context(), limit, offset)
		if err != nil {
			logger.Error("Failed to list products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]ProductResponse, len(products))
		for i, p := range products {
			responses[i] = toProductResponse(p)
		}

		c.JSON(http.StatusOK, gin.H{
			"products": responses,
			"limit":    limit,
			"offset":   offset,
		})
	}
}

// HandleGetProduct handles GET /v1/products/:id, accepting either a product
// ID or a slug
func HandleGetProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("id")

		var product *domain.Product
		var err error
		if id, parseErr := uuid.Parse(key); parseErr == nil {
			product, err = repos.Product.GetByID(c.Request.Context(), id)
		} else {
			product, err = repos.Product.GetBySlug(c.Request.Context(), key)
		}
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, toProductResponse(product))
	}
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Sizes:       p.Sizes,
		Frames:      p.Frames,
	}
}
