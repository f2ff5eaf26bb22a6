package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/patramstore/storefront-api/internal/cart"
	"github.com/patramstore/storefront-api/internal/config"
	"github.com/patramstore/storefront-api/internal/domain"
	"github.com/patramstore/storefront-api/internal/repository"
	"github.com/patramstore/storefront-api/internal/service"
	"github.com/patramstore/storefront-api/internal/whatsapp"
)

// HandleCheckout handles POST /api/checkout. Assembles the cart and
// shipping form into an order draft, creates the order in Pending, and
// clears the cart only after the creation call succeeds. A failed
// checkout keeps the cart intact so the user can retry.
func HandleCheckout(cfg *config.Config, repos *repository.Repositories, store cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		snapshot, err := store.Load(c.Request.Context(), req.SessionID)
		if err != nil {
			logger.Error("Failed to load cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		draft, fieldErrors := service.AssembleOrder(
			snapshot,
			req.ShippingAddress,
			req.CustomerEmail,
			domain.PaymentMethod(req.PaymentMethod),
		)
		if fieldErrors != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "validation failed",
				"fields": fieldErrors,
			})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		order, err := orderService.CreateOrderFromDraft(c.Request.Context(), draft)
		if err != nil {
			logger.Error("Failed to create order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
			return
		}

		// Clear the cart exactly once, only after a confirmed
		// successful creation.
		if err := store.Delete(c.Request.Context(), req.SessionID); err != nil {
			logger.Warn("Failed to clear cart after checkout", zap.Error(err))
		}

		items, err := orderService.Items(c.Request.Context(), order.ID)
		if err != nil {
			logger.Warn("Failed to load items for confirmation message", zap.Error(err))
		}

		notifier := service.NewNotifyService(whatsapp.NewDispatcher(cfg.WhatsApp), logger)
		link := notifier.NotifyOrderConfirmation(c.Request.Context(), order, items)

		c.JSON(http.StatusOK, service.CheckoutResult{
			OrderID:      order.ID.String(),
			OrderNumber:  order.DisplayNumber(),
			Status:       order.Status,
			Total:        order.Total,
			WhatsAppLink: link,
		})
	}
}
