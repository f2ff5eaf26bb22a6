package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/patramstore/storefront-api/internal/config"
	"github.com/patramstore/storefront-api/internal/domain"
	"github.com/patramstore/storefront-api/internal/repository"
	"github.com/patramstore/storefront-api/internal/service"
	"github.com/patramstore/storefront-api/internal/whatsapp"
	"github.com/patramstore/storefront-api/pkg/errors"
)

// OrderResponse represents the order response
type OrderResponse struct {
	ID              string                 `json:"id"`
	OrderNumber     string                 `json:"order_number,omitempty"`
	DisplayNumber   string                 `json:"display_number"`
	Client          string                 `json:"client"`
	Status          domain.OrderStatus     `json:"status"`
	Total           float64                `json:"total"`
	Discount        float64                `json:"discount"`
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
	PaymentMethod   domain.PaymentMethod   `json:"payment_method"`
	PaymentID       *string                `json:"payment_id,omitempty"`
	Items           []OrderItemResponse    `json:"items"`
	CreatedAt       string                 `json:"created_at"`
	UpdatedAt       string                 `json:"updated_at"`
}

type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	PhotoRef  *string `json:"photo,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
}

// UpdateStatusRequest advances an order's status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// HandleGetOrder handles GET /api/orders/:token
func HandleGetOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")

		orderService := service.NewOrderService(repos, logger)
		order, err := orderService.GetByToken(c.Request.Context(), token)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to get order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		items, err := orderService.Items(c.Request.Context(), order.ID)
		if err != nil {
			logger.Error("Failed to get order items", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, buildOrderResponse(order, items))
	}
}

// HandleCheckOrder handles GET /api/check-order/:id, a diagnostic
// endpoint reporting whether an order carries a human order number.
func HandleCheckOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
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
			logger.Error("Failed to check order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		hasNumber := order.OrderNumber != nil && *order.OrderNumber != ""
		c.JSON(http.StatusOK, gin.H{
			"id":               order.ID.String(),
			"has_order_number": hasNumber,
			"order_number":     order.OrderNumber,
			"display_number":   order.DisplayNumber(),
			"status":           order.Status,
			"total":            order.Total,
		})
	}
}

// HandleUpdateOrderStatus handles POST /api/admin/orders/:id/status.
// Operator-only; this is how COD orders advance past Pending.
func HandleUpdateOrderStatus(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		newStatus := domain.OrderStatus(req.Status)
		if !newStatus.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		order, err := orderService.UpdateStatus(c.Request.Context(), orderID, newStatus)
		if err != nil {
			if _, ok := err.(*errors.ErrInvalidStateTransition); ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to update order status", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}

		notifier := service.NewNotifyService(whatsapp.NewDispatcher(cfg.WhatsApp), logger)
		link := notifier.NotifyStatusUpdate(c.Request.Context(), order)

		c.JSON(http.StatusOK, gin.H{
			"id":            order.ID.String(),
			"status":        order.Status,
			"whatsapp_link": link,
		})
	}
}

// HandleListOrders handles GET /api/admin/orders
func HandleListOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		statusStr := c.DefaultQuery("status", string(domain.OrderStatusPending))
		limit := intQuery(c, "limit", 50, 1, 100)
		offset := intQuery(c, "offset", 0, 0, 1<<30)

		status := domain.OrderStatus(statusStr)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		orders, err := repos.Order.ListByStatus(c.Request.Context(), status, limit, offset)
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		orderResponses := make([]gin.H, len(orders))
		for i, order := range orders {
			orderResponses[i] = gin.H{
				"id":             order.ID.String(),
				"display_number": order.DisplayNumber(),
				"client":         order.Client,
				"status":         order.Status,
				"total":          order.Total,
				"payment_method": order.PaymentMethod,
				"created_at":     order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orderResponses,
			"limit":  limit,
			"offset": offset,
		})
	}
}

func buildOrderResponse(order *domain.Order, items []*domain.OrderItem) OrderResponse {
	itemResponses := make([]OrderItemResponse, len(items))
	for i, item := range items {
		itemResponses[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			PhotoRef:  item.PhotoRef,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	response := OrderResponse{
		ID:              order.ID.String(),
		DisplayNumber:   order.DisplayNumber(),
		Client:          order.Client,
		Status:          order.Status,
		Total:           order.Total,
		Discount:        order.Discount,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		PaymentID:       order.PaymentID,
		Items:           itemResponses,
		CreatedAt:       order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       order.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	if order.OrderNumber != nil {
		response.OrderNumber = *order.OrderNumber
	}

	return response
}

func intQuery(c *gin.Context, key string, def, min, max int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < min || val > max {
		return def
	}
	return val
}
