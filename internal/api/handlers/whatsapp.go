package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/patramstore/storefront-api/internal/config"
	"github.com/patramstore/storefront-api/internal/domain"
	"github.com/patramstore/storefront-api/internal/whatsapp"
)

// WhatsAppRequest builds either a status update (when the order fields
// are set) or a custom message link.
type WhatsAppRequest struct {
	Phone        string `json:"phone" binding:"required"`
	Message      string `json:"message"`
	OrderNumber  string `json:"orderNumber"`
	CustomerName string `json:"customerName"`
	Status       string `json:"status"`
}

// HandleSendWhatsApp handles POST /api/whatsapp
func HandleSendWhatsApp(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	dispatcher := whatsapp.NewDispatcher(cfg.WhatsApp)

	return func(c *gin.Context) {
		var req WhatsAppRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		var message string
		switch {
		case req.OrderNumber != "" && req.CustomerName != "" && req.Status != "":
			message = dispatcher.BuildStatusMessage(req.OrderNumber, req.CustomerName, domain.OrderStatus(req.Status))
		case req.Message != "":
			message = req.Message
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "either message or order details are required"})
			return
		}

		link := whatsapp.WebURL(req.Phone, message)
		if link == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phone number"})
			return
		}

		logger.Info("WhatsApp message built",
			zap.String("phone", whatsapp.FormatPhoneNumber(req.Phone)),
		)

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"whatsappURL": link,
		})
	}
}

// HandleWhatsAppLink handles GET /api/whatsapp?phone=&message=
func HandleWhatsAppLink(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		phone := c.Query("phone")
		if phone == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phone number is required"})
			return
		}

		message := c.DefaultQuery("message", "Test message from "+cfg.WhatsApp.StoreName)

		link := whatsapp.WebURL(phone, message)
		if link == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phone number"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"whatsappURL": link,
		})
	}
}
