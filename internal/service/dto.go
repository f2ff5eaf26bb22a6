package service

import (
	"github.com/patramstore/storefront-api/internal/cart"
	"github.com/patramstore/storefront-api/internal/domain"
)

// OrderDraft is a validated, assembled payload ready for submission to
// order creation. Built fresh per checkout attempt, never persisted.
type OrderDraft struct {
	Items           []cart.Line            `json:"items"`
	Total           float64                `json:"total"`
	CustomerEmail   string                 `json:"customerEmail"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   domain.PaymentMethod   `json:"paymentMethod"`
}

// CheckoutRequest is the checkout submission payload
type CheckoutRequest struct {
	SessionID       string                 `json:"session_id" binding:"required"`
	CustomerEmail   string                 `json:"customer_email"`
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
}

// CheckoutResult is what a successful order creation returns
type CheckoutResult struct {
	OrderID      string             `json:"order_id"`
	OrderNumber  string             `json:"order_number"`
	Status       domain.OrderStatus `json:"status"`
	Total        float64            `json:"total"`
	WhatsAppLink string             `json:"whatsapp_link,omitempty"`
}
