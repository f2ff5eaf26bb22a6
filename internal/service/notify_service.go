package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/patramstore/storefront-api/internal/domain"
	"github.com/patramstore/storefront-api/internal/whatsapp"
)

type notifyService struct {
	dispatcher *whatsapp.Dispatcher
	logger     *zap.Logger
}

// NewNotifyService creates a notification service over the WhatsApp
// dispatcher. Delivery is link generation plus logging; there is no
// server-to-server send, no retry, no delivery receipt.
func NewNotifyService(dispatcher *whatsapp.Dispatcher, logger *zap.Logger) *notifyService {
	return &notifyService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// NotifyOrderConfirmation builds the confirmation message and wa.me
// link for a freshly created order. Returns "" when the customer phone
// cannot be normalized; that means cannot-notify, not failure.
func (s *notifyService) NotifyOrderConfirmation(ctx context.Context, order *domain.Order, items []*domain.OrderItem) string {
	snapshot := whatsapp.OrderSnapshot{
		OrderNumber:     order.DisplayNumber(),
		CustomerName:    order.Client,
		Total:           order.Total,
		Status:          order.Status,
		ShippingAddress: order.ShippingAddress.FormattedAddress(),
	}
	for _, item := range items {
		snapshot.Items = append(snapshot.Items, whatsapp.ItemSnapshot{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	message := s.dispatcher.BuildConfirmationMessage(snapshot)
	link := whatsapp.WebURL(order.ShippingAddress.Phone, message)
	if link == "" {
		s.logger.Warn("Cannot notify: unparseable phone number",
			zap.String("order_id", order.ID.String()),
		)
		return ""
	}

	s.logger.Info("Order confirmation message built",
		zap.String("order_id", order.ID.String()),
		zap.String("phone", whatsapp.FormatPhoneNumber(order.ShippingAddress.Phone)),
	)

	return link
}

// NotifyStatusUpdate builds the status update message and link
func (s *notifyService) NotifyStatusUpdate(ctx context.Context, order *domain.Order) string {
	message := s.dispatcher.BuildStatusMessage(order.DisplayNumber(), order.Client, order.Status)
	link := whatsapp.WebURL(order.ShippingAddress.Phone, message)
	if link == "" {
		s.logger.Warn("Cannot notify: unparseable phone number",
			zap.String("order_id", order.ID.String()),
		)
		return ""
	}

	s.logger.Info("Status update message built",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)),
	)

	return link
}
