package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/patramstore/storefront-api/internal/repository"
	"github.com/patramstore/storefront-api/pkg/errors"
)

// HandleListProducts handles GET /api/products
func HandleListProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := intQuery(c, "limit", 12, 1, 100)
		offset := intQuery(c, "offset", 0, 0, 1<<30)

		products, err := repos.Product.List(c.Request.Context(), limit, offset)
		if err != nil {
			logger.Error("Failed to list products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]gin.H, len(products))
		for i, p := range products {
			responses[i] = gin.H{
				"id":          p.ID.String(),
				"name":        p.Name,
				"price":       p.Price,
				"mrp":         p.MRP,
				"category":    p.Category,
				"description": p.Description,
				"photo":       p.PhotoURL,
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"products": responses,
			"limit":    limit,
			"offset":   offset,
		})
	}
}

// HandleGetProduct handles GET /api/products/:id
func HandleGetProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		product, err := repos.Product.GetByID(c.Request.Context(), productID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to get product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":          product.ID.String(),
			"name":        product.Name,
			"price":       product.Price,
			"mrp":         product.MRP,
			"category":    product.Category,
			"description": product.Description,
			"photo":       product.PhotoURL,
		})
	}
}
