package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/patramstore/storefront-api/internal/domain"
	"github.com/patramstore/storefront-api/internal/repository"
	"github.com/patramstore/storefront-api/pkg/errors"
)

type orderService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, logger *zap.Logger) *orderService {
	return &orderService{
		repos:  repos,
		logger: logger,
	}
}

// CreateOrderFromDraft persists an assembled order. Every order starts
// Pending regardless of payment method; online orders move to
// Processing only after payment verification.
func (s *orderService) CreateOrderFromDraft(ctx context.Context, draft *OrderDraft) (*domain.Order, error) {
	orderNumber := domain.GenerateOrderNumber(time.Now())

	order := &domain.Order{
		OrderNumber:     &orderNumber,
		Client:          draft.ShippingAddress.Name,
		CustomerEmail:   draft.CustomerEmail,
		Status:          domain.OrderStatusPending,
		Total:           draft.Total,
		Discount:        0,
		ShippingAddress: draft.ShippingAddress,
		PaymentMethod:   draft.PaymentMethod,
	}
	if order.Client == "" {
		order.Client = "Guest Customer"
	}

	items := make([]*domain.OrderItem, 0, len(draft.Items))
	for _, line := range draft.Items {
		items = append(items, &domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			PhotoRef:  line.PhotoRef,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	// Order and items persist in one transaction; a failure leaves
	// nothing behind for a retry to duplicate.
	if err := s.repos.Order.Create(ctx, order, items); err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", orderNumber),
		zap.String("payment_method", string(order.PaymentMethod)),
	)

	return order, nil
}

// GetByToken fetches an order by a user-supplied token. The token is
// classified exactly once: order-number-shaped tokens query the
// order_number column, everything else queries id. One lookup per
// classification; there is no cross-field fallback.
func (s *orderService) GetByToken(ctx context.Context, token string) (*domain.Order, error) {
	lookup := domain.ResolveToken(token)

	if lookup.Field == domain.LookupByOrderNumber {
		return s.repos.Order.GetByOrderNumber(ctx, lookup.Value)
	}

	id, err := uuid.Parse(token)
	if err != nil {
		return nil, &errors.ErrNotFound{Resource: "order", ID: token}
	}

	return s.repos.Order.GetByID(ctx, id)
}

// UpdateStatus requests an advisory status transition. A rejected
// transition is surfaced to the caller; there is no automatic retry.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus domain.OrderStatus) (*domain.Order, error) {
	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(newStatus) {
		return nil, &errors.ErrInvalidStateTransition{
			From: order.Status,
			To:   newStatus,
		}
	}

	if err := s.repos.Order.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("from", string(order.Status)),
		zap.String("to", string(newStatus)),
	)

	order.Status = newStatus
	return order, nil
}

// AttachPaymentInfo records a verified online payment and requests the
// Pending -> Processing transition (Confirmed is skipped on purpose for
// paid orders).
func (s *orderService) AttachPaymentInfo(ctx context.Context, orderID uuid.UUID, paymentID, gatewayOrderID string) (*domain.Order, error) {
	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(domain.OrderStatusProcessing) {
		return nil, &errors.ErrInvalidStateTransition{
			From: order.Status,
			To:   domain.OrderStatusProcessing,
		}
	}

	if err := s.repos.Order.UpdatePaymentInfo(ctx, orderID, paymentID, gatewayOrderID, domain.OrderStatusProcessing); err != nil {
		return nil, err
	}

	s.logger.Info("Payment attached to order",
		zap.String("order_id", orderID.String()),
		zap.String("payment_id", paymentID),
	)

	order.Status = domain.OrderStatusProcessing
	order.PaymentID = &paymentID
	order.GatewayOrderID = &gatewayOrderID
	return order, nil
}

// Items returns the line snapshots for an order
func (s *orderService) Items(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	return s.repos.OrderItem.GetByOrderID(ctx, orderID)
}
