package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/patramstore/storefront-api/internal/domain"
)

// OrderRepository persists orders in the external store. Create writes
// the order and its item snapshots in a single transaction; a failed
// item insert leaves no orphaned order behind.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	UpdatePaymentInfo(ctx context.Context, id uuid.UUID, paymentID, gatewayOrderID string, status domain.OrderStatus) error
	ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
	ListMissingOrderNumbers(ctx context.Context, limit int) ([]*domain.Order, error)
	SetOrderNumber(ctx context.Context, id uuid.UUID, orderNumber string) error
}

// OrderItemRepository reads order line snapshots
type OrderItemRepository interface {
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error)
}

// ProductRepository reads the catalog
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
}

// CustomerRepository persists registered customers
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	SearchByPhone(ctx context.Context, phone string) (*domain.Customer, error)
}

// Repositories bundles all repository implementations
type Repositories struct {
	Order     OrderRepository
	OrderItem OrderItemRepository
	Product   ProductRepository
	Customer  CustomerRepository
}
