package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/patramstore/storefront-api/internal/cart"
)

// CartLineRequest is one line in an add-to-cart call
type CartLineRequest struct {
	ProductID string  `json:"id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"min=0"`
	Quantity  int     `json:"qty"`
	PhotoRef  *string `json:"photo,omitempty"`
}

// UpdateQuantityRequest sets a line's quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"qty" binding:"required"`
}

// ReplaceCartRequest is a full cart snapshot submitted by the client
type ReplaceCartRequest struct {
	Lines []CartLineRequest `json:"lines"`
}

func cartResponse(c *cart.Cart) gin.H {
	return gin.H{
		"lines": c.Lines,
		"total": c.Total(),
		"count": c.Count(),
	}
}

// HandleGetCart handles GET /api/cart/:session
func HandleGetCart(store cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot, err := store.Load(c.Request.Context(), c.Param("session"))
		if err != nil {
			logger.Error("Failed to load cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(snapshot))
	}
}

// HandleReplaceCart handles POST /api/cart/:session. Replaces the
// session's snapshot wholesale; merge and clamp rules still apply, so
// duplicate product ids collapse into one line.
func HandleReplaceCart(store cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReplaceCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		snapshot := cart.New()
		for _, line := range req.Lines {
			snapshot.Add(cart.Line{
				ProductID: line.ProductID,
				Name:      line.Name,
				UnitPrice: line.Price,
				Quantity:  line.Quantity,
				PhotoRef:  line.PhotoRef,
			})
		}

		if err := store.Save(c.Request.Context(), c.Param("session"), snapshot); err != nil {
			logger.Error("Failed to save cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(snapshot))
	}
}

// HandleAddCartItem handles POST /api/cart/:session/items
func HandleAddCartItem(store cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CartLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		sessionID := c.Param("session")
		snapshot, err := store.Load(c.Request.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to load cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		snapshot.Add(cart.Line{
			ProductID: req.ProductID,
			Name:      req.Name,
			UnitPrice: req.Price,
			Quantity:  req.Quantity,
			PhotoRef:  req.PhotoRef,
		})

		if err := store.Save(c.Request.Context(), sessionID, snapshot); err != nil {
			logger.Error("Failed to save cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(snapshot))
	}
}

// HandleUpdateCartItem handles PATCH /api/cart/:session/items/:productID
func HandleUpdateCartItem(store cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		sessionID := c.Param("session")
		snapshot, err := store.Load(c.Request.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to load cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		snapshot.UpdateQuantity(c.Param("productID"), req.Quantity)

		if err := store.Save(c.Request.Context(), sessionID, snapshot); err != nil {
			logger.Error("Failed to save cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(snapshot))
	}
}

// HandleRemoveCartItem handles DELETE /api/cart/:session/items/:productID
func HandleRemoveCartItem(store cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("session")
		snapshot, err := store.Load(c.Request.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to load cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		snapshot.Remove(c.Param("productID"))

		if err := store.Save(c.Request.Context(), sessionID, snapshot); err != nil {
			logger.Error("Failed to save cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(snapshot))
	}
}

// HandleClearCart handles DELETE /api/cart/:session
func HandleClearCart(store cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Delete(c.Request.Context(), c.Param("session")); err != nil {
			logger.Error("Failed to clear cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(cart.New()))
	}
}
