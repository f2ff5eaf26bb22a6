package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/patramstore/storefront-api/internal/config"
	"github.com/patramstore/storefront-api/internal/razorpay"
	"github.com/patramstore/storefront-api/internal/repository"
	"github.com/patramstore/storefront-api/internal/service"
	"github.com/patramstore/storefront-api/pkg/errors"
)

// CreatePaymentRequest asks the gateway for a payment intent
type CreatePaymentRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency"`
	OrderID  string  `json:"orderId" binding:"required"`
}

// VerifyPaymentRequest carries the checkout callback signature fields
type VerifyPaymentRequest struct {
	OrderID           string `json:"orderId" binding:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// UpdatePaymentInfoRequest attaches gateway identifiers to an order
type UpdatePaymentInfoRequest struct {
	OrderID         string `json:"orderId" binding:"required"`
	PaymentID       string `json:"paymentId" binding:"required"`
	RazorpayOrderID string `json:"razorpayOrderId" binding:"required"`
}

// HandleUpdateOrderPayment handles PUT /api/orders. Records payment
// identifiers and requests the Processing transition.
func HandleUpdateOrderPayment(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdatePaymentInfoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderId, paymentId, and razorpayOrderId are required"})
			return
		}

		orderID, err := uuid.Parse(req.OrderID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		order, err := orderService.AttachPaymentInfo(c.Request.Context(), orderID, req.PaymentID, req.RazorpayOrderID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			if _, ok := err.(*errors.ErrInvalidStateTransition); ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Failed to update order payment info", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"id":      order.ID.String(),
			"status":  order.Status,
		})
	}
}

// HandleCreatePaymentIntent handles POST /api/razorpay/create-order
func HandleCreatePaymentIntent(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	client := razorpay.NewClient(cfg.Razorpay, logger)

	return func(c *gin.Context) {
		var req CreatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount and orderId are required"})
			return
		}

		intent, err := client.CreateOrder(req.Amount, req.Currency, req.OrderID)
		if err != nil {
			logger.Error("Razorpay order creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payment order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orderId":  intent.GatewayOrderID,
			"amount":   intent.Amount,
			"currency": intent.Currency,
		})
	}
}

// HandleVerifyPayment handles POST /api/razorpay/verify. A verified
// payment attaches the payment info and requests the Processing
// transition; a bad signature never touches the order.
func HandleVerifyPayment(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	client := razorpay.NewClient(cfg.Razorpay, logger)

	return func(c *gin.Context) {
		var req VerifyPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if !client.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
			logger.Warn("Rejected payment with invalid signature",
				zap.String("order_id", req.OrderID),
			)
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment verification failed"})
			return
		}

		orderID, err := uuid.Parse(req.OrderID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		order, err := orderService.AttachPaymentInfo(c.Request.Context(), orderID, req.RazorpayPaymentID, req.RazorpayOrderID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			if _, ok := err.(*errors.ErrInvalidStateTransition); ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Failed to attach payment info", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"verified": true,
			"id":       order.ID.String(),
			"status":   order.Status,
		})
	}
}
